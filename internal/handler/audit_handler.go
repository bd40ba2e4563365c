package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fortresslabs/garrison/internal/service"
)

type AuditHandler struct {
	svc *service.AuditService
}

func NewAuditHandler(svc *service.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

func (h *AuditHandler) List(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		return
	}

	page, pageSize := GetPagination(c)
	logs, total, err := h.svc.List(c.Request.Context(), p, page, pageSize)
	if err != nil {
		Fail(c, err)
		return
	}

	totalPages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPages++
	}
	Success(c, ListResponse{
		Items: logs,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}
