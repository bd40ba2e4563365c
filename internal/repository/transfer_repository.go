package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fortresslabs/garrison/internal/entity"
)

type TransferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) WithTx(tx *gorm.DB) *TransferRepository {
	return &TransferRepository{db: tx}
}

func (r *TransferRepository) Create(ctx context.Context, t *entity.Transfer) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(t).Error
}

// List returns transfers touching the given base (as source or destination)
// when BaseID is set, newest first.
func (r *TransferRepository) List(ctx context.Context, f ListFilter) ([]entity.Transfer, error) {
	query := r.db.WithContext(ctx).Model(&entity.Transfer{}).
		Preload("FromBase").Preload("ToBase").Preload("Equipment")
	if f.BaseID != "" {
		query = query.Where("transfers.from_base_id = ? OR transfers.to_base_id = ?", f.BaseID, f.BaseID)
	}
	if f.EquipmentName != "" {
		query = query.Joins("JOIN equipment ON equipment.id = transfers.equipment_id").
			Where("equipment.name = ?", f.EquipmentName)
	}
	if f.From != nil {
		query = query.Where("transfers.date >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("transfers.date <= ?", *f.To)
	}
	var transfers []entity.Transfer
	err := query.Order("transfers.date DESC").Find(&transfers).Error
	return transfers, err
}

// SumIn aggregates COMPLETED transfer quantity into the scoped base.
func (r *TransferRepository) SumIn(ctx context.Context, f SumFilter) (int64, error) {
	return r.sum(ctx, f, "to_base_id")
}

// SumOut aggregates COMPLETED transfer quantity out of the scoped base.
func (r *TransferRepository) SumOut(ctx context.Context, f SumFilter) (int64, error) {
	return r.sum(ctx, f, "from_base_id")
}

func (r *TransferRepository) sum(ctx context.Context, f SumFilter, baseColumn string) (int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Transfer{}).
		Where("status = ?", entity.TransferCompleted)
	if f.BaseID != "" {
		query = query.Where(baseColumn+" = ?", f.BaseID)
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

// SumsInByKey aggregates lifetime COMPLETED inbound quantity per
// (destination base, equipment).
func (r *TransferRepository) SumsInByKey(ctx context.Context) ([]KeySum, error) {
	var sums []KeySum
	err := r.db.WithContext(ctx).Model(&entity.Transfer{}).
		Select("to_base_id AS base_id, equipment_id, SUM(quantity) AS total").
		Where("status = ?", entity.TransferCompleted).
		Group("to_base_id, equipment_id").
		Scan(&sums).Error
	return sums, err
}

// SumsOutByKey aggregates lifetime COMPLETED outbound quantity per
// (source base, equipment).
func (r *TransferRepository) SumsOutByKey(ctx context.Context) ([]KeySum, error) {
	var sums []KeySum
	err := r.db.WithContext(ctx).Model(&entity.Transfer{}).
		Select("from_base_id AS base_id, equipment_id, SUM(quantity) AS total").
		Where("status = ?", entity.TransferCompleted).
		Group("from_base_id, equipment_id").
		Scan(&sums).Error
	return sums, err
}
