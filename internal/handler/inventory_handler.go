package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fortresslabs/garrison/internal/service"
)

type InventoryHandler struct {
	svc *service.InventoryService
}

func NewInventoryHandler(svc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Overview returns the ledger rows visible to the caller, enriched with
// lifetime movement sums per (base, equipment) key.
func (h *InventoryHandler) Overview(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		return
	}

	rows, err := h.svc.Overview(c.Request.Context(), p, c.Query("base_id"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, ListResponse{Items: rows})
}
