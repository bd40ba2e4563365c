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

// AssignmentService owns assignments and expenditures: both remove stock
// from the operational pool.
type AssignmentService struct {
	db    *gorm.DB
	repos *repository.Repositories
}

func NewAssignmentService(db *gorm.DB, repos *repository.Repositories) *AssignmentService {
	return &AssignmentService{db: db, repos: repos}
}

// CreateAssignmentInput carries the raw form fields of an assignment or
// expenditure request.
type CreateAssignmentInput struct {
	BaseID        string
	EquipmentName string
	Quantity      string
	Type          string
	PersonnelName string
	Reason        string
	Date          string
}

// Create records an assignment or expenditure and debits the ledger. The
// effective base is always the actor's own base when the actor has one; a
// baseless actor (an admin) must name a target base explicitly.
func (s *AssignmentService) Create(ctx context.Context, p entity.Principal, in CreateAssignmentInput) (*entity.Assignment, error) {
	if p.Role == entity.RoleBaseCommander {
		return nil, Errorf(KindPermissionDenied, "base commander cannot create assignments")
	}

	baseID := p.BaseID
	if baseID == "" {
		baseID = in.BaseID
	}
	if baseID == "" {
		return nil, Errorf(KindValidation, "base is required")
	}

	if in.Type != entity.AssignmentAssigned && in.Type != entity.AssignmentExpended {
		return nil, Errorf(KindValidation, "type must be %s or %s",
			entity.AssignmentAssigned, entity.AssignmentExpended)
	}
	if in.Type == entity.AssignmentAssigned && strings.TrimSpace(in.PersonnelName) == "" {
		return nil, Errorf(KindValidation, "personnel name is required for assignments")
	}

	name := strings.TrimSpace(in.EquipmentName)
	if name == "" {
		return nil, Errorf(KindValidation, "equipment name is required")
	}
	qty, err := parseQuantity(in.Quantity)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	if _, err := s.repos.Base.FindByID(ctx, baseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Errorf(KindNotFound, "base %s not found", baseID)
		}
		return nil, err
	}

	var assignment *entity.Assignment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		equipment, err := s.repos.Equipment.WithTx(tx).FindByName(ctx, name)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return Errorf(KindNotFound, "equipment %q not found", name)
			}
			return err
		}

		inventory := s.repos.Inventory.WithTx(tx)
		available, err := inventory.GetQuantity(ctx, baseID, equipment.ID)
		if err != nil {
			return err
		}
		if available < qty {
			return Errorf(KindInsufficientInventory,
				"insufficient inventory: requested %d, available %d", qty, available)
		}

		assignment = &entity.Assignment{
			UserID:        p.ID,
			BaseID:        baseID,
			EquipmentID:   equipment.ID,
			Quantity:      qty,
			Type:          in.Type,
			PersonnelName: strings.TrimSpace(in.PersonnelName),
			Reason:        strings.TrimSpace(in.Reason),
			Date:          date,
		}
		if err := s.repos.Assignment.WithTx(tx).Create(ctx, assignment); err != nil {
			return err
		}

		err = inventory.Apply(ctx, repository.Adjustment{
			BaseID:      baseID,
			EquipmentID: equipment.ID,
			Delta:       -qty,
		})
		if err != nil {
			if errors.Is(err, repository.ErrInsufficientStock) {
				return Errorf(KindInsufficientInventory,
					"insufficient inventory: requested %d", qty)
			}
			return err
		}

		return s.repos.Audit.WithTx(tx).Append(ctx, &entity.AuditLog{
			Action:   in.Type,
			Entity:   "Assignment",
			EntityID: assignment.ID,
			UserID:   p.ID,
			Details:  fmt.Sprintf("%s %d %s at base %s", in.Type, qty, name, baseID),
		})
	})
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

// List returns assignments visible to the caller, newest first. Type
// narrows to ASSIGNED or EXPENDED when set.
func (s *AssignmentService) List(ctx context.Context, p entity.Principal, requestedBaseID, equipmentName, assignmentType string) ([]entity.Assignment, error) {
	return s.repos.Assignment.List(ctx, repository.ListFilter{
		BaseID:        ReadScope(p, requestedBaseID),
		EquipmentName: equipmentName,
		Type:          assignmentType,
	})
}
