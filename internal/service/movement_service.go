package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/fortresslabs/garrison/internal/entity"
	"github.com/fortresslabs/garrison/internal/repository"
)

// MovementService serves the read-only union view over the four transaction
// types, consumed by reports.
type MovementService struct {
	repos *repository.Repositories
}

func NewMovementService(repos *repository.Repositories) *MovementService {
	return &MovementService{repos: repos}
}

// MovementQuery carries the raw filter fields of a movement-log request.
type MovementQuery struct {
	BaseID     string
	ActionType string
	From       string
	To         string
}

// List merges purchases, transfers, assignments and expenditures into one
// date-descending log. Transfers carry the synthetic "{from} → {to}" base
// label and are attributed to "System": no per-transfer actor exists in the
// source of truth, so none is invented here.
func (s *MovementService) List(ctx context.Context, p entity.Principal, q MovementQuery) ([]entity.MovementRecord, error) {
	switch q.ActionType {
	case "", entity.ActionPurchase, entity.ActionTransfer, entity.ActionAssignment, entity.ActionExpenditure:
	default:
		return nil, Errorf(KindValidation, "unknown action type %q", q.ActionType)
	}

	baseID := ReadScope(p, q.BaseID)
	from, err := parseOptionalDate(q.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate(q.To)
	if err != nil {
		return nil, err
	}
	filter := repository.ListFilter{BaseID: baseID, From: from, To: to}

	movements := []entity.MovementRecord{}

	if q.ActionType == "" || q.ActionType == entity.ActionPurchase {
		purchases, err := s.repos.Purchase.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, p := range purchases {
			movements = append(movements, entity.MovementRecord{
				ID:          p.ID,
				Date:        p.Date,
				ActionType:  entity.ActionPurchase,
				Equipment:   equipmentName(p.Equipment),
				Quantity:    p.Quantity,
				Base:        baseName(p.Base),
				PerformedBy: userLabel(p.User),
				Remarks:     fmt.Sprintf("Purchased %d %s", p.Quantity, equipmentName(p.Equipment)),
			})
		}
	}

	if q.ActionType == "" || q.ActionType == entity.ActionTransfer {
		transfers, err := s.repos.Transfer.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, t := range transfers {
			movements = append(movements, entity.MovementRecord{
				ID:          t.ID,
				Date:        t.Date,
				ActionType:  entity.ActionTransfer,
				Equipment:   equipmentName(t.Equipment),
				Quantity:    t.Quantity,
				Base:        fmt.Sprintf("%s → %s", baseName(t.FromBase), baseName(t.ToBase)),
				PerformedBy: "System",
				Remarks:     fmt.Sprintf("Transferred to %s", baseName(t.ToBase)),
			})
		}
	}

	if q.ActionType == "" || q.ActionType == entity.ActionAssignment {
		assigned := filter
		assigned.Type = entity.AssignmentAssigned
		records, err := s.repos.Assignment.List(ctx, assigned)
		if err != nil {
			return nil, err
		}
		for _, a := range records {
			remarks := a.Reason
			if a.PersonnelName != "" {
				remarks = fmt.Sprintf("Assigned to %s", a.PersonnelName)
			}
			movements = append(movements, entity.MovementRecord{
				ID:          a.ID,
				Date:        a.Date,
				ActionType:  entity.ActionAssignment,
				Equipment:   equipmentName(a.Equipment),
				Quantity:    a.Quantity,
				Base:        baseName(a.Base),
				PerformedBy: userLabel(a.User),
				Remarks:     remarks,
			})
		}
	}

	if q.ActionType == "" || q.ActionType == entity.ActionExpenditure {
		expended := filter
		expended.Type = entity.AssignmentExpended
		records, err := s.repos.Assignment.List(ctx, expended)
		if err != nil {
			return nil, err
		}
		for _, e := range records {
			movements = append(movements, entity.MovementRecord{
				ID:          e.ID,
				Date:        e.Date,
				ActionType:  entity.ActionExpenditure,
				Equipment:   equipmentName(e.Equipment),
				Quantity:    e.Quantity,
				Base:        baseName(e.Base),
				PerformedBy: userLabel(e.User),
				Remarks:     e.Reason,
			})
		}
	}

	sort.Slice(movements, func(i, j int) bool {
		return movements[i].Date.After(movements[j].Date)
	})
	return movements, nil
}

func equipmentName(eq *entity.Equipment) string {
	if eq == nil {
		return ""
	}
	return eq.Name
}

func baseName(b *entity.Base) string {
	if b == nil {
		return ""
	}
	return b.Name
}

func userLabel(u *entity.User) string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
