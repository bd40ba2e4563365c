package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fortresslabs/garrison/internal/entity"
)

// SumFilter scopes a quantity aggregation. Zero-valued fields mean "all".
// Before is a strict upper bound (date < Before); From/To are inclusive.
type SumFilter struct {
	BaseID      string
	EquipmentID string
	Before      *time.Time
	From        *time.Time
	To          *time.Time
	Type        string
}

// ListFilter scopes a transaction listing.
type ListFilter struct {
	BaseID        string
	EquipmentName string
	From          *time.Time
	To            *time.Time
	Type          string
}

// KeySum is one (base, equipment) group of a bulk aggregation.
type KeySum struct {
	BaseID      string
	EquipmentID string
	Total       int64
}

func applyDateBounds(query *gorm.DB, f SumFilter) *gorm.DB {
	if f.Before != nil {
		query = query.Where("date < ?", *f.Before)
	}
	if f.From != nil {
		query = query.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("date <= ?", *f.To)
	}
	return query
}

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) WithTx(tx *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: tx}
}

func (r *PurchaseRepository) Create(ctx context.Context, p *entity.Purchase) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PurchaseRepository) List(ctx context.Context, f ListFilter) ([]entity.Purchase, error) {
	query := r.db.WithContext(ctx).Model(&entity.Purchase{}).
		Preload("Base").Preload("Equipment").Preload("User")
	if f.BaseID != "" {
		query = query.Where("purchases.base_id = ?", f.BaseID)
	}
	if f.EquipmentName != "" {
		query = query.Joins("JOIN equipment ON equipment.id = purchases.equipment_id").
			Where("equipment.name = ?", f.EquipmentName)
	}
	if f.From != nil {
		query = query.Where("purchases.date >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("purchases.date <= ?", *f.To)
	}
	var purchases []entity.Purchase
	err := query.Order("purchases.date DESC").Find(&purchases).Error
	return purchases, err
}

// Sum aggregates purchased quantity within the filter scope.
func (r *PurchaseRepository) Sum(ctx context.Context, f SumFilter) (int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Purchase{})
	if f.BaseID != "" {
		query = query.Where("base_id = ?", f.BaseID)
	}
	if f.EquipmentID != "" {
		query = query.Where("equipment_id = ?", f.EquipmentID)
	}
	query = applyDateBounds(query, f)

	var total *int64
	if err := query.Select("SUM(quantity)").Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// SumsByKey aggregates lifetime purchased quantity per (base, equipment).
func (r *PurchaseRepository) SumsByKey(ctx context.Context) ([]KeySum, error) {
	var sums []KeySum
	err := r.db.WithContext(ctx).Model(&entity.Purchase{}).
		Select("base_id, equipment_id, SUM(quantity) AS total").
		Group("base_id, equipment_id").
		Scan(&sums).Error
	return sums, err
}
