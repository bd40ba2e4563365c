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

// TransferService owns the transfer write path and RBAC-scoped reads.
type TransferService struct {
	db    *gorm.DB
	repos *repository.Repositories
}

func NewTransferService(db *gorm.DB, repos *repository.Repositories) *TransferService {
	return &TransferService{db: db, repos: repos}
}

// CreateTransferInput carries the raw form fields of a transfer request.
type CreateTransferInput struct {
	FromBaseID    string
	ToBaseID      string
	EquipmentName string
	Quantity      string
	Date          string
}

// Create moves stock between two bases. Transfers never auto-create
// equipment: they only move stock that already exists somewhere. The source
// sufficiency check, both ledger adjustments, the record and the audit entry
// commit together or not at all.
func (s *TransferService) Create(ctx context.Context, p entity.Principal, in CreateTransferInput) (*entity.Transfer, error) {
	if p.Role == entity.RoleBaseCommander {
		return nil, Errorf(KindPermissionDenied, "base commander cannot create transfers")
	}
	if p.Role == entity.RoleLogisticsOfficer && in.FromBaseID != p.BaseID {
		return nil, Errorf(KindPermissionDenied, "cannot transfer from another base")
	}

	name := strings.TrimSpace(in.EquipmentName)
	if name == "" {
		return nil, Errorf(KindValidation, "equipment name is required")
	}
	if in.FromBaseID == "" || in.ToBaseID == "" {
		return nil, Errorf(KindValidation, "source and destination bases are required")
	}
	if in.FromBaseID == in.ToBaseID {
		return nil, Errorf(KindValidation, "source and destination bases must differ")
	}
	qty, err := parseQuantity(in.Quantity)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	for _, baseID := range []string{in.FromBaseID, in.ToBaseID} {
		if _, err := s.repos.Base.FindByID(ctx, baseID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, Errorf(KindNotFound, "base %s not found", baseID)
			}
			return nil, err
		}
	}

	var transfer *entity.Transfer
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		equipment, err := s.repos.Equipment.WithTx(tx).FindByName(ctx, name)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return Errorf(KindNotFound, "equipment %q not found", name)
			}
			return err
		}

		inventory := s.repos.Inventory.WithTx(tx)
		available, err := inventory.GetQuantity(ctx, in.FromBaseID, equipment.ID)
		if err != nil {
			return err
		}
		if available < qty {
			return Errorf(KindInsufficientInventory,
				"insufficient inventory: requested %d, available %d", qty, available)
		}

		transfer = &entity.Transfer{
			FromBaseID:  in.FromBaseID,
			ToBaseID:    in.ToBaseID,
			EquipmentID: equipment.ID,
			Quantity:    qty,
			Date:        date,
			Status:      entity.TransferCompleted,
		}
		if err := s.repos.Transfer.WithTx(tx).Create(ctx, transfer); err != nil {
			return err
		}

		err = inventory.Apply(ctx,
			repository.Adjustment{BaseID: in.FromBaseID, EquipmentID: equipment.ID, Delta: -qty},
			repository.Adjustment{BaseID: in.ToBaseID, EquipmentID: equipment.ID, Delta: qty},
		)
		if err != nil {
			if errors.Is(err, repository.ErrInsufficientStock) {
				// A concurrent decrement consumed the stock between the
				// sufficiency read and the guarded update.
				return Errorf(KindInsufficientInventory,
					"insufficient inventory: requested %d", qty)
			}
			return err
		}

		return s.repos.Audit.WithTx(tx).Append(ctx, &entity.AuditLog{
			Action:   entity.ActionTransfer,
			Entity:   "Transfer",
			EntityID: transfer.ID,
			UserID:   p.ID,
			Details:  fmt.Sprintf("Transferred %d %s from %s to %s", qty, name, in.FromBaseID, in.ToBaseID),
		})
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}

// List returns transfers touching the caller's visible bases, newest first.
func (s *TransferService) List(ctx context.Context, p entity.Principal, requestedBaseID, equipmentName string) ([]entity.Transfer, error) {
	return s.repos.Transfer.List(ctx, repository.ListFilter{
		BaseID:        ReadScope(p, requestedBaseID),
		EquipmentName: equipmentName,
	})
}
