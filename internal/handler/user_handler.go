package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fortresslabs/garrison/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type createUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
	BaseID   string `json:"base_id"`
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	BaseID   *string `json:"base_id"`
}

func (h *UserHandler) List(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		return
	}

	users, err := h.svc.List(c.Request.Context(), p)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, ListResponse{Items: users})
}

func (h *UserHandler) Create(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.svc.Create(c.Request.Context(), p, service.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
		BaseID:   req.BaseID,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.svc.Update(c.Request.Context(), p, c.Param("id"), service.UpdateUserInput{
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
		BaseID:   req.BaseID,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	Success(c, nil)
}
