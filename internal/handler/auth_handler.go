package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fortresslabs/garrison/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	token, user, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		Fail(c, err)
		return
	}

	Success(c, gin.H{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		return
	}

	user, err := h.svc.Me(c.Request.Context(), p)
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, user)
}
