package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fortresslabs/garrison/internal/entity"
	"github.com/fortresslabs/garrison/internal/middleware"
	"github.com/fortresslabs/garrison/internal/service"
)

// Handlers is the handler collection.
type Handlers struct {
	Auth       *AuthHandler
	User       *UserHandler
	Base       *BaseHandler
	Purchase   *PurchaseHandler
	Transfer   *TransferHandler
	Assignment *AssignmentHandler
	Inventory  *InventoryHandler
	Metrics    *MetricsHandler
	Movement   *MovementHandler
	Audit      *AuditHandler
}

// NewHandlers wires the handler collection.
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(svc.Auth),
		User:       NewUserHandler(svc.User),
		Base:       NewBaseHandler(svc.Base),
		Purchase:   NewPurchaseHandler(svc.Purchase),
		Transfer:   NewTransferHandler(svc.Transfer),
		Assignment: NewAssignmentHandler(svc.Assignment),
		Inventory:  NewInventoryHandler(svc.Inventory),
		Metrics:    NewMetricsHandler(svc.Metrics),
		Movement:   NewMovementHandler(svc.Movement),
		Audit:      NewAuditHandler(svc.Audit),
	}
}

// Response is the uniform response envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse wraps paginated list payloads.
type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes code and message; the HTTP status is code/100.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// Fail maps a service error to the response envelope by its taxonomy kind.
func Fail(c *gin.Context, err error) {
	switch service.KindOf(err) {
	case service.KindValidation:
		BadRequest(c, err.Error())
	case service.KindPermissionDenied:
		Forbidden(c, err.Error())
	case service.KindNotFound:
		NotFound(c, err.Error())
	case service.KindInsufficientInventory:
		Error(c, 40001, err.Error())
	case service.KindConflict:
		Conflict(c, err.Error())
	default:
		if errors.Is(err, service.ErrInvalidCredentials) {
			Unauthorized(c, err.Error())
			return
		}
		InternalError(c, "internal error")
	}
}

// GetPrincipal returns the authenticated caller, failing the request when
// the auth middleware did not run.
func GetPrincipal(c *gin.Context) (entity.Principal, bool) {
	p, ok := middleware.Principal(c)
	if !ok {
		Unauthorized(c, "Authorization is required")
	}
	return p, ok
}

// GetPagination reads page/page_size query parameters with sane bounds.
func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}
	return page, pageSize
}
