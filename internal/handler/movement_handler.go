package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fortresslabs/garrison/internal/service"
)

type MovementHandler struct {
	svc *service.MovementService
}

func NewMovementHandler(svc *service.MovementService) *MovementHandler {
	return &MovementHandler{svc: svc}
}

func (h *MovementHandler) List(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		return
	}

	records, err := h.svc.List(c.Request.Context(), p, service.MovementQuery{
		BaseID:     c.Query("base_id"),
		ActionType: c.Query("action_type"),
		From:       c.Query("from"),
		To:         c.Query("to"),
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, ListResponse{Items: records})
}
