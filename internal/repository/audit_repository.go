package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fortresslabs/garrison/internal/entity"
)

// AuditRepository is append-only. Nothing updates or deletes audit rows.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) WithTx(tx *gorm.DB) *AuditRepository {
	return &AuditRepository{db: tx}
}

// Append writes one audit entry. Callers run this inside the owning atomic
// unit; a failure here aborts the whole operation.
func (r *AuditRepository) Append(ctx context.Context, log *entity.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(log).Error
}

// List returns audit entries newest first, paginated.
func (r *AuditRepository) List(ctx context.Context, page, pageSize int) ([]entity.AuditLog, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []entity.AuditLog
	err := r.db.WithContext(ctx).Model(&entity.AuditLog{}).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	return items, total, err
}
