package entity

import (
	"time"
)

// Inventory is the current-quantity projection for one (base, equipment)
// key. It is a cached view of the transaction history, mutated only inside
// the atomic unit that writes the owning transaction record, and must always
// equal the replayed sum of that history.
type Inventory struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	BaseID      string    `json:"base_id" gorm:"size:36;not null;uniqueIndex:idx_inventory_key"`
	EquipmentID string    `json:"equipment_id" gorm:"size:36;not null;uniqueIndex:idx_inventory_key"`
	Quantity    int64     `json:"quantity" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Base      *Base      `json:"base,omitempty" gorm:"foreignKey:BaseID"`
	Equipment *Equipment `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
}

func (Inventory) TableName() string {
	return "inventories"
}

// InventoryOverview is an Inventory row enriched with the lifetime movement
// sums for its key, as served by the inventory read endpoint.
type InventoryOverview struct {
	ID             string     `json:"id"`
	Base           *Base      `json:"base"`
	Equipment      *Equipment `json:"equipment"`
	Quantity       int64      `json:"quantity"`
	Purchased      int64      `json:"purchased"`
	TransferredIn  int64      `json:"transferred_in"`
	TransferredOut int64      `json:"transferred_out"`
	Assigned       int64      `json:"assigned"`
	Expended       int64      `json:"expended"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
