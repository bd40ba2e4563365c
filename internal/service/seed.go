package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fortresslabs/garrison/internal/config"
	"github.com/fortresslabs/garrison/internal/entity"
	"github.com/fortresslabs/garrison/internal/repository"
)

// Seed creates the bootstrap admin account and a few demo bases. It only
// fires when the users table is empty, so a restarted deployment never
// duplicates or resets anything.
func Seed(ctx context.Context, db *gorm.DB, repos *repository.Repositories, cfg config.SeedConfig) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.AdminPassword == "" {
		return fmt.Errorf("seed enabled but seed.admin_password is not set")
	}

	count, err := repos.User.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bases := []entity.Base{
			{Name: "Fort Benning", Location: "Georgia"},
			{Name: "Fort Jackson", Location: "South Carolina"},
			{Name: "Fort Bragg", Location: "North Carolina"},
		}
		for i := range bases {
			if err := repos.Base.WithTx(tx).Create(ctx, &bases[i]); err != nil {
				return fmt.Errorf("seed: create base %s: %w", bases[i].Name, err)
			}
		}

		admin := &entity.User{
			Email:    cfg.AdminEmail,
			Name:     "System Administrator",
			Password: string(hash),
			Role:     entity.RoleAdmin,
		}
		if err := repos.User.WithTx(tx).Create(ctx, admin); err != nil {
			return fmt.Errorf("seed: create admin: %w", err)
		}
		return nil
	})
}
