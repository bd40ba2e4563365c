package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fortresslabs/garrison/internal/entity"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) WithTx(tx *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: tx}
}

func (r *AssignmentRepository) Create(ctx context.Context, a *entity.Assignment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AssignmentRepository) List(ctx context.Context, f ListFilter) ([]entity.Assignment, error) {
	query := r.db.WithContext(ctx).Model(&entity.Assignment{}).
		Preload("Base").Preload("Equipment").Preload("User")
	if f.BaseID != "" {
		query = query.Where("assignments.base_id = ?", f.BaseID)
	}
	if f.EquipmentName != "" {
		query = query.Joins("JOIN equipment ON equipment.id = assignments.equipment_id").
			Where("equipment.name = ?", f.EquipmentName)
	}
	if f.Type != "" {
		query = query.Where("assignments.type = ?", f.Type)
	}
	if f.From != nil {
		query = query.Where("assignments.date >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("assignments.date <= ?", *f.To)
	}
	var assignments []entity.Assignment
	err := query.Order("assignments.date DESC").Find(&assignments).Error
	return assignments, err
}

// Sum aggregates assigned or expended quantity within the filter scope.
// SumFilter.Type selects ASSIGNED or EXPENDED; empty covers both.
func (r *AssignmentRepository) Sum(ctx context.Context, f SumFilter) (int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Assignment{})
	if f.BaseID != "" {
		query = query.Where("base_id = ?", f.BaseID)
	}
	if f.EquipmentID != "" {
		query = query.Where("equipment_id = ?", f.EquipmentID)
	}
	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
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

// SumsByKey aggregates lifetime quantity per (base, equipment) for one
// assignment type.
func (r *AssignmentRepository) SumsByKey(ctx context.Context, assignmentType string) ([]KeySum, error) {
	var sums []KeySum
	err := r.db.WithContext(ctx).Model(&entity.Assignment{}).
		Select("base_id, equipment_id, SUM(quantity) AS total").
		Where("type = ?", assignmentType).
		Group("base_id, equipment_id").
		Scan(&sums).Error
	return sums, err
}
