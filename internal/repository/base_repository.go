package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fortresslabs/garrison/internal/entity"
)

type BaseRepository struct {
	db *gorm.DB
}

func NewBaseRepository(db *gorm.DB) *BaseRepository {
	return &BaseRepository{db: db}
}

func (r *BaseRepository) WithTx(tx *gorm.DB) *BaseRepository {
	return &BaseRepository{db: tx}
}

func (r *BaseRepository) FindByID(ctx context.Context, id string) (*entity.Base, error) {
	var base entity.Base
	err := r.db.WithContext(ctx).First(&base, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &base, nil
}

func (r *BaseRepository) List(ctx context.Context) ([]entity.Base, error) {
	var bases []entity.Base
	err := r.db.WithContext(ctx).Order("name ASC").Find(&bases).Error
	return bases, err
}

func (r *BaseRepository) Create(ctx context.Context, base *entity.Base) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(base).Error
}
