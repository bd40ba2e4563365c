package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fortresslabs/garrison/internal/entity"
	"github.com/fortresslabs/garrison/internal/repository"
)

// UserService is admin-only account management. Role and base assignments
// made here are what the scope resolver later enforces on every read and
// write, so the base rules are checked at creation time, not at use time.
type UserService struct {
	db    *gorm.DB
	repos *repository.Repositories
}

func NewUserService(db *gorm.DB, repos *repository.Repositories) *UserService {
	return &UserService{db: db, repos: repos}
}

// CreateUserInput carries the raw form fields of an account request.
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	Role     string
	BaseID   string
}

// UpdateUserInput carries optional fields; nil means leave unchanged.
type UpdateUserInput struct {
	Name     *string
	Password *string
	Role     *string
	BaseID   *string
}

func (s *UserService) Create(ctx context.Context, p entity.Principal, in CreateUserInput) (*entity.User, error) {
	if p.Role != entity.RoleAdmin {
		return nil, Errorf(KindPermissionDenied, "only admins can manage users")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, Errorf(KindValidation, "a valid email is required")
	}
	if len(in.Password) < 6 {
		return nil, Errorf(KindValidation, "password must be at least 6 characters")
	}
	if !entity.ValidRole(in.Role) {
		return nil, Errorf(KindValidation, "unknown role %q", in.Role)
	}

	baseID, err := s.resolveBase(ctx, in.Role, in.BaseID)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:    email,
		Name:     strings.TrimSpace(in.Name),
		Password: string(hash),
		Role:     in.Role,
		BaseID:   baseID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repos.User.WithTx(tx).Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return Errorf(KindConflict, "email %s is already registered", email)
			}
			return err
		}
		return s.repos.Audit.WithTx(tx).Append(ctx, &entity.AuditLog{
			Action:   "CREATE_USER",
			Entity:   "User",
			EntityID: user.ID,
			UserID:   p.ID,
			Details:  fmt.Sprintf("Created %s account for %s", user.Role, email),
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, p entity.Principal, id string, in UpdateUserInput) (*entity.User, error) {
	if p.Role != entity.RoleAdmin {
		return nil, Errorf(KindPermissionDenied, "only admins can manage users")
	}

	user, err := s.repos.User.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Errorf(KindNotFound, "user %s not found", id)
		}
		return nil, err
	}

	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Password != nil {
		if len(*in.Password) < 6 {
			return nil, Errorf(KindValidation, "password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, Errorf(KindValidation, "unknown role %q", *in.Role)
		}
		user.Role = *in.Role
	}
	if in.BaseID != nil || in.Role != nil {
		requested := ""
		if in.BaseID != nil {
			requested = *in.BaseID
		} else if user.BaseID != nil {
			requested = *user.BaseID
		}
		baseID, err := s.resolveBase(ctx, user.Role, requested)
		if err != nil {
			return nil, err
		}
		user.BaseID = baseID
	}
	user.Base = nil

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repos.User.WithTx(tx).Update(ctx, user); err != nil {
			return err
		}
		return s.repos.Audit.WithTx(tx).Append(ctx, &entity.AuditLog{
			Action:   "UPDATE_USER",
			Entity:   "User",
			EntityID: user.ID,
			UserID:   p.ID,
			Details:  fmt.Sprintf("Updated account %s", user.Email),
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, p entity.Principal, id string) error {
	if p.Role != entity.RoleAdmin {
		return Errorf(KindPermissionDenied, "only admins can manage users")
	}
	if id == p.ID {
		return Errorf(KindValidation, "cannot delete your own account")
	}

	user, err := s.repos.User.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Errorf(KindNotFound, "user %s not found", id)
		}
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repos.User.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		return s.repos.Audit.WithTx(tx).Append(ctx, &entity.AuditLog{
			Action:   "DELETE_USER",
			Entity:   "User",
			EntityID: id,
			UserID:   p.ID,
			Details:  fmt.Sprintf("Deleted account %s", user.Email),
		})
	})
}

func (s *UserService) List(ctx context.Context, p entity.Principal) ([]entity.User, error) {
	if p.Role != entity.RoleAdmin {
		return nil, Errorf(KindPermissionDenied, "only admins can manage users")
	}
	return s.repos.User.List(ctx)
}

// resolveBase enforces the role/base pairing: admins are not pinned to a
// base, everyone else must be.
func (s *UserService) resolveBase(ctx context.Context, role, baseID string) (*string, error) {
	if role == entity.RoleAdmin {
		if baseID != "" {
			return nil, Errorf(KindValidation, "admins are not assigned to a base")
		}
		return nil, nil
	}
	if baseID == "" {
		return nil, Errorf(KindValidation, "role %s requires a base assignment", role)
	}
	if _, err := s.repos.Base.FindByID(ctx, baseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Errorf(KindNotFound, "base %s not found", baseID)
		}
		return nil, err
	}
	return &baseID, nil
}
