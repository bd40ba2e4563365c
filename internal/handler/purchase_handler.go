package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fortresslabs/garrison/internal/service"
)

type PurchaseHandler struct {
	svc *service.PurchaseService
}

func NewPurchaseHandler(svc *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{svc: svc}
}

// createPurchaseRequest keeps quantity and date as strings; the service
// layer owns their validation.
type createPurchaseRequest struct {
	BaseID        string `json:"base_id"`
	EquipmentName string `json:"equipment_name"`
	Quantity      string `json:"quantity"`
	Date          string `json:"date"`
}

func (h *PurchaseHandler) Create(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		return
	}

	var req createPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	purchase, err := h.svc.Create(c.Request.Context(), p, service.CreatePurchaseInput{
		BaseID:        req.BaseID,
		EquipmentName: req.EquipmentName,
		Quantity:      req.Quantity,
		Date:          req.Date,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, purchase)
}

func (h *PurchaseHandler) List(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		return
	}

	purchases, err := h.svc.List(c.Request.Context(), p, c.Query("base_id"), c.Query("equipment"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, ListResponse{Items: purchases})
}
