package service

import (
	"context"

	"github.com/fortresslabs/garrison/internal/entity"
	"github.com/fortresslabs/garrison/internal/repository"
)

// InventoryService serves ledger reads: the current-quantity overview and
// the replay check that ties the projection back to the transaction history.
type InventoryService struct {
	repos *repository.Repositories
}

func NewInventoryService(repos *repository.Repositories) *InventoryService {
	return &InventoryService{repos: repos}
}

// Overview returns the caller's visible ledger rows enriched with lifetime
// movement sums per key, computed from the transaction history in four bulk
// group-by queries.
func (s *InventoryService) Overview(ctx context.Context, p entity.Principal, requestedBaseID string) ([]entity.InventoryOverview, error) {
	baseID := ReadScope(p, requestedBaseID)

	rows, err := s.repos.Inventory.List(ctx, baseID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []entity.InventoryOverview{}, nil
	}

	purchased, err := keyMap(s.repos.Purchase.SumsByKey(ctx))
	if err != nil {
		return nil, err
	}
	transfersIn, err := keyMap(s.repos.Transfer.SumsInByKey(ctx))
	if err != nil {
		return nil, err
	}
	transfersOut, err := keyMap(s.repos.Transfer.SumsOutByKey(ctx))
	if err != nil {
		return nil, err
	}
	assigned, err := keyMap(s.repos.Assignment.SumsByKey(ctx, entity.AssignmentAssigned))
	if err != nil {
		return nil, err
	}
	expended, err := keyMap(s.repos.Assignment.SumsByKey(ctx, entity.AssignmentExpended))
	if err != nil {
		return nil, err
	}

	overview := make([]entity.InventoryOverview, 0, len(rows))
	for _, row := range rows {
		key := row.BaseID + "|" + row.EquipmentID
		overview = append(overview, entity.InventoryOverview{
			ID:             row.ID,
			Base:           row.Base,
			Equipment:      row.Equipment,
			Quantity:       row.Quantity,
			Purchased:      purchased[key],
			TransferredIn:  transfersIn[key],
			TransferredOut: transfersOut[key],
			Assigned:       assigned[key],
			Expended:       expended[key],
			UpdatedAt:      row.UpdatedAt,
		})
	}
	return overview, nil
}

// ReplayQuantity derives the quantity for one key purely from transaction
// history: purchases + transfersIn - transfersOut - assigned - expended.
// The ledger row must always equal this value; it is the identity the
// projection is checked against.
func (s *InventoryService) ReplayQuantity(ctx context.Context, baseID, equipmentID string) (int64, error) {
	f := repository.SumFilter{BaseID: baseID, EquipmentID: equipmentID}

	purchases, err := s.repos.Purchase.Sum(ctx, f)
	if err != nil {
		return 0, err
	}
	in, err := s.repos.Transfer.SumIn(ctx, f)
	if err != nil {
		return 0, err
	}
	out, err := s.repos.Transfer.SumOut(ctx, f)
	if err != nil {
		return 0, err
	}
	assigned, err := s.repos.Assignment.Sum(ctx, withType(f, entity.AssignmentAssigned))
	if err != nil {
		return 0, err
	}
	expended, err := s.repos.Assignment.Sum(ctx, withType(f, entity.AssignmentExpended))
	if err != nil {
		return 0, err
	}

	return purchases + in - out - assigned - expended, nil
}

// GetQuantity reads the cached projection for one key, zero when absent.
func (s *InventoryService) GetQuantity(ctx context.Context, baseID, equipmentID string) (int64, error) {
	return s.repos.Inventory.GetQuantity(ctx, baseID, equipmentID)
}

func keyMap(sums []repository.KeySum, err error) (map[string]int64, error) {
	if err != nil {
		return nil, err
	}
	m := make(map[string]int64, len(sums))
	for _, s := range sums {
		m[s.BaseID+"|"+s.EquipmentID] = s.Total
	}
	return m, nil
}
