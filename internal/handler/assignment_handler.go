package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fortresslabs/garrison/internal/service"
)

type AssignmentHandler struct {
	svc *service.AssignmentService
}

func NewAssignmentHandler(svc *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{svc: svc}
}

type createAssignmentRequest struct {
	BaseID        string `json:"base_id"`
	EquipmentName string `json:"equipment_name"`
	Quantity      string `json:"quantity"`
	Type          string `json:"type"`
	PersonnelName string `json:"personnel_name"`
	Reason        string `json:"reason"`
	Date          string `json:"date"`
}

func (h *AssignmentHandler) Create(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		return
	}

	var req createAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	assignment, err := h.svc.Create(c.Request.Context(), p, service.CreateAssignmentInput{
		BaseID:        req.BaseID,
		EquipmentName: req.EquipmentName,
		Quantity:      req.Quantity,
		Type:          req.Type,
		PersonnelName: req.PersonnelName,
		Reason:        req.Reason,
		Date:          req.Date,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, assignment)
}

func (h *AssignmentHandler) List(c *gin.Context) {
	p, ok := GetPrincipal(c)
	if !ok {
		return
	}

	assignments, err := h.svc.List(c.Request.Context(), p, c.Query("base_id"), c.Query("equipment"), c.Query("type"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, ListResponse{Items: assignments})
}
