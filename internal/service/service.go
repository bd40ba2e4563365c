package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fortresslabs/garrison/internal/config"
	"github.com/fortresslabs/garrison/internal/repository"
)

// Services is the service collection.
type Services struct {
	Auth       *AuthService
	User       *UserService
	Base       *BaseService
	Purchase   *PurchaseService
	Transfer   *TransferService
	Assignment *AssignmentService
	Inventory  *InventoryService
	Metrics    *MetricsService
	Movement   *MovementService
	Audit      *AuditService
}

// NewServices wires the service collection. rdb may be nil; the metrics
// cache is then disabled.
func NewServices(db *gorm.DB, repos *repository.Repositories, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *Services {
	return &Services{
		Auth:       NewAuthService(repos.User, cfg.JWT),
		User:       NewUserService(db, repos),
		Base:       NewBaseService(db, repos),
		Purchase:   NewPurchaseService(db, repos),
		Transfer:   NewTransferService(db, repos),
		Assignment: NewAssignmentService(db, repos),
		Inventory:  NewInventoryService(repos),
		Metrics:    NewMetricsService(repos, rdb, cfg.Redis.CacheTTL, logger),
		Movement:   NewMovementService(repos),
		Audit:      NewAuditService(repos),
	}
}

// parseQuantity parses a raw quantity form value. The presentation layer
// passes fields verbatim; the core owns numeric validation.
func parseQuantity(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, Errorf(KindValidation, "quantity is required")
	}
	qty, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, Errorf(KindValidation, "quantity %q is not a whole number", raw)
	}
	if qty <= 0 {
		return 0, Errorf(KindValidation, "quantity must be positive")
	}
	return qty, nil
}

var dateFormats = []string{time.RFC3339, "2006-01-02"}

// parseDate parses a raw date form value, accepting RFC 3339 timestamps and
// plain dates.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, Errorf(KindValidation, "date is required")
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, Errorf(KindValidation, "date %q is not a valid date", raw)
}

// parseOptionalDate is parseDate for filter fields, where empty means
// unbounded.
func parseOptionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
