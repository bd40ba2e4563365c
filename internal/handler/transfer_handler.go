package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fortresslabs/garrison/internal/service"
)

type TransferHandler struct {
	svc *service.TransferService
}

func NewTransferHandler(svc *service.TransferService) *TransferHandler {
	return &TransferHandler{svc: svc}
}

type createTransferRequest struct {
	FromBaseID    string `json:"from_base_id"`
	ToBaseID      string `json:"to_base_id"`
	EquipmentName string `json:"equipment_name"`
	Quantity      string `json:"quantity"`
	Date          string `json:"date"`
}

func (h *TransferHandler) Create(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		return
	}

	var req createTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	transfer, err := h.svc.Create(c.Request.Context(), p, service.CreateTransferInput{
		FromBaseID:    req.FromBaseID,
		ToBaseID:      req.ToBaseID,
		EquipmentName: req.EquipmentName,
		Quantity:      req.Quantity,
		Date:          req.Date,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, transfer)
}

func (h *TransferHandler) List(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		return
	}

	transfers, err := h.svc.List(c.Request.Context(), p, c.Query("base_id"), c.Query("equipment"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, ListResponse{Items: transfers})
}
