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

// PurchaseService owns the purchase write path and RBAC-scoped reads.
type PurchaseService struct {
	db    *gorm.DB
	repos *repository.Repositories
}

func NewPurchaseService(db *gorm.DB, repos *repository.Repositories) *PurchaseService {
	return &PurchaseService{db: db, repos: repos}
}

// CreatePurchaseInput carries the raw form fields of a purchase request.
type CreatePurchaseInput struct {
	BaseID        string
	EquipmentName string
	Quantity      string
	Date          string
}

// Create records a purchase and credits the ledger at (base, equipment) in
// one atomic unit: resolve equipment, write the record, adjust the ledger,
// append the audit entry. Any failure rolls back all of it.
func (s *PurchaseService) Create(ctx context.Context, p entity.Principal, in CreatePurchaseInput) (*entity.Purchase, error) {
	if p.Role == entity.RoleBaseCommander {
		return nil, Errorf(KindPermissionDenied, "base commander cannot create purchases")
	}

	name := strings.TrimSpace(in.EquipmentName)
	if name == "" {
		return nil, Errorf(KindValidation, "equipment name is required")
	}
	if in.BaseID == "" {
		return nil, Errorf(KindValidation, "base is required")
	}
	qty, err := parseQuantity(in.Quantity)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	if _, err := s.repos.Base.FindByID(ctx, in.BaseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Errorf(KindNotFound, "base %s not found", in.BaseID)
		}
		return nil, err
	}

	var purchase *entity.Purchase
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		equipment, err := s.repos.Equipment.WithTx(tx).ResolveOrCreate(ctx, name)
		if err != nil {
			return err
		}

		purchase = &entity.Purchase{
			BaseID:      in.BaseID,
			EquipmentID: equipment.ID,
			UserID:      p.ID,
			Quantity:    qty,
			Date:        date,
		}
		if err := s.repos.Purchase.WithTx(tx).Create(ctx, purchase); err != nil {
			return err
		}

		if err := s.repos.Inventory.WithTx(tx).Apply(ctx, repository.Adjustment{
			BaseID:      in.BaseID,
			EquipmentID: equipment.ID,
			Delta:       qty,
		}); err != nil {
			return err
		}

		return s.repos.Audit.WithTx(tx).Append(ctx, &entity.AuditLog{
			Action:   entity.ActionPurchase,
			Entity:   "Purchase",
			EntityID: purchase.ID,
			UserID:   p.ID,
			Details:  fmt.Sprintf("Purchased %d %s for base %s", qty, name, in.BaseID),
		})
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

// List returns purchases visible to the caller, newest first.
func (s *PurchaseService) List(ctx context.Context, p entity.Principal, requestedBaseID, equipmentName string) ([]entity.Purchase, error) {
	return s.repos.Purchase.List(ctx, repository.ListFilter{
		BaseID:        ReadScope(p, requestedBaseID),
		EquipmentName: equipmentName,
	})
}
