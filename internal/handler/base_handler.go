package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fortresslabs/garrison/internal/service"
)

type BaseHandler struct {
	svc *service.BaseService
}

func NewBaseHandler(svc *service.BaseService) *BaseHandler {
	return &BaseHandler{svc: svc}
}

type createBaseRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (h *BaseHandler) List(c *gin.Context) {
	bases, err := h.svc.List(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, ListResponse{Items: bases})
}

func (h *BaseHandler) Create(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		return
	}

	var req createBaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	base, err := h.svc.Create(c.Request.Context(), p, req.Name, req.Location)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, base)
}
