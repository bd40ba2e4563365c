package repository

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fortresslabs/garrison/internal/entity"
)

// Adjustment is one signed delta against a ledger key.
type Adjustment struct {
	BaseID      string
	EquipmentID string
	Delta       int64
}

// InventoryRepository owns the current-quantity projection. All mutations
// must run on a transaction handle obtained via WithTx so they commit
// atomically with the transaction record that caused them.
type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// WithTx returns a copy bound to the given transaction handle.
func (r *InventoryRepository) WithTx(tx *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: tx}
}

// GetQuantity returns the current quantity for a key, zero when the row has
// never been touched.
func (r *InventoryRepository) GetQuantity(ctx context.Context, baseID, equipmentID string) (int64, error) {
	var inv entity.Inventory
	err := r.db.WithContext(ctx).
		Where("base_id = ? AND equipment_id = ?", baseID, equipmentID).
		First(&inv).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return inv.Quantity, nil
}

// Apply applies a set of signed adjustments. Keys are processed in
// lexicographic (baseID, equipmentID) order so two concurrent multi-key
// writers always take row locks in the same order.
func (r *InventoryRepository) Apply(ctx context.Context, adjustments ...Adjustment) error {
	sorted := make([]Adjustment, len(adjustments))
	copy(sorted, adjustments)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].BaseID != sorted[j].BaseID {
			return sorted[i].BaseID < sorted[j].BaseID
		}
		return sorted[i].EquipmentID < sorted[j].EquipmentID
	})

	for _, adj := range sorted {
		var err error
		if adj.Delta >= 0 {
			err = r.increase(ctx, adj.BaseID, adj.EquipmentID, adj.Delta)
		} else {
			err = r.decrease(ctx, adj.BaseID, adj.EquipmentID, -adj.Delta)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// increase upserts the row, adding qty to whatever is already there.
func (r *InventoryRepository) increase(ctx context.Context, baseID, equipmentID string, qty int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "base_id"}, {Name: "equipment_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("inventories.quantity + ?", qty),
			"updated_at": now,
		}),
	}).Create(&entity.Inventory{
		ID:          uuid.New().String(),
		BaseID:      baseID,
		EquipmentID: equipmentID,
		Quantity:    qty,
		CreatedAt:   now,
		UpdatedAt:   now,
	}).Error
}

// decrease is a conditional UPDATE guarded by the current quantity. The
// WHERE clause makes the read-then-write race harmless: a concurrent
// decrement that already consumed the stock leaves zero affected rows here,
// and the whole atomic unit rolls back with ErrInsufficientStock instead of
// driving the quantity negative.
func (r *InventoryRepository) decrease(ctx context.Context, baseID, equipmentID string, qty int64) error {
	res := r.db.WithContext(ctx).Model(&entity.Inventory{}).
		Where("base_id = ? AND equipment_id = ? AND quantity >= ?", baseID, equipmentID, qty).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity - ?", qty),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// List returns ledger rows with base and equipment loaded, optionally
// restricted to one base, ordered by base then equipment name.
func (r *InventoryRepository) List(ctx context.Context, baseID string) ([]entity.Inventory, error) {
	query := r.db.WithContext(ctx).Model(&entity.Inventory{}).
		Joins("JOIN bases ON bases.id = inventories.base_id").
		Joins("JOIN equipment ON equipment.id = inventories.equipment_id").
		Preload("Base").
		Preload("Equipment")
	if baseID != "" {
		query = query.Where("inventories.base_id = ?", baseID)
	}
	var items []entity.Inventory
	err := query.Order("bases.name, equipment.name").Find(&items).Error
	return items, err
}
