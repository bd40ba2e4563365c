package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/fortresslabs/garrison/internal/entity"
	"github.com/fortresslabs/garrison/internal/repository"
)

// BaseService manages the installation catalog. Bases are created by admins
// and never mutated afterwards; every role may list them so that forms can
// render base pickers.
type BaseService struct {
	db    *gorm.DB
	repos *repository.Repositories
}

func NewBaseService(db *gorm.DB, repos *repository.Repositories) *BaseService {
	return &BaseService{db: db, repos: repos}
}

func (s *BaseService) List(ctx context.Context) ([]entity.Base, error) {
	return s.repos.Base.List(ctx)
}

func (s *BaseService) Create(ctx context.Context, p entity.Principal, name, location string) (*entity.Base, error) {
	if p.Role != entity.RoleAdmin {
		return nil, Errorf(KindPermissionDenied, "only admins can create bases")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Errorf(KindValidation, "base name is required")
	}

	base := &entity.Base{Name: name, Location: strings.TrimSpace(location)}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repos.Base.WithTx(tx).Create(ctx, base); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return Errorf(KindConflict, "base %q already exists", name)
			}
			return err
		}
		return s.repos.Audit.WithTx(tx).Append(ctx, &entity.AuditLog{
			Action:   "CREATE_BASE",
			Entity:   "Base",
			EntityID: base.ID,
			UserID:   p.ID,
			Details:  fmt.Sprintf("Created base %s", name),
		})
	})
	if err != nil {
		return nil, err
	}
	return base, nil
}
