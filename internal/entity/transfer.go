package entity

import (
	"time"
)

// Transfer statuses. Only COMPLETED transfers affect the ledger and metrics.
// PENDING and REJECTED exist for a future approval workflow; no current code
// path produces them.
const (
	TransferPending   = "PENDING"
	TransferCompleted = "COMPLETED"
	TransferRejected  = "REJECTED"
)

// Transfer moves stock between two bases. Immutable once created; a
// COMPLETED transfer decreases the ledger at the source key and increases it
// at the destination key in the same atomic unit.
type Transfer struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	FromBaseID  string    `json:"from_base_id" gorm:"size:36;not null;index"`
	ToBaseID    string    `json:"to_base_id" gorm:"size:36;not null;index"`
	EquipmentID string    `json:"equipment_id" gorm:"size:36;not null;index"`
	Quantity    int64     `json:"quantity" gorm:"not null"`
	Date        time.Time `json:"date" gorm:"not null;index"`
	Status      string    `json:"status" gorm:"size:16;not null;default:COMPLETED"`
	CreatedAt   time.Time `json:"created_at"`

	FromBase  *Base      `json:"from_base,omitempty" gorm:"foreignKey:FromBaseID"`
	ToBase    *Base      `json:"to_base,omitempty" gorm:"foreignKey:ToBaseID"`
	Equipment *Equipment `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
}

func (Transfer) TableName() string {
	return "transfers"
}
