package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fortresslabs/garrison/internal/service"
)

type MetricsHandler struct {
	svc *service.MetricsService
}

func NewMetricsHandler(svc *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{svc: svc}
}

func (h *MetricsHandler) Get(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		return
	}

	metrics, err := h.svc.Compute(c.Request.Context(), p, service.MetricsQuery{
		From:      c.Query("from"),
		To:        c.Query("to"),
		Equipment: c.Query("equipment"),
		BaseID:    c.Query("base_id"),
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, metrics)
}
