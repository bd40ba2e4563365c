package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fortresslabs/garrison/internal/entity"
)

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) WithTx(tx *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: tx}
}

// FindByName looks up equipment by exact name.
func (r *EquipmentRepository) FindByName(ctx context.Context, name string) (*entity.Equipment, error) {
	var eq entity.Equipment
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&eq).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &eq, nil
}

// ResolveOrCreate returns the equipment with the given name, creating it if
// absent. A uniqueness violation on create means a concurrent first-use won
// the race; it is resolved as a fetch, bounded to one retry.
func (r *EquipmentRepository) ResolveOrCreate(ctx context.Context, name string) (*entity.Equipment, error) {
	eq, err := r.FindByName(ctx, name)
	if err == nil {
		return eq, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	created := &entity.Equipment{
		ID:   uuid.New().String(),
		Name: name,
	}
	err = r.db.WithContext(ctx).Create(created).Error
	if err == nil {
		return created, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return r.FindByName(ctx, name)
	}
	return nil, err
}
