package entity

import (
	"time"
)

// Purchase records stock entering a base from procurement. Immutable once
// created; increases the ledger at (BaseID, EquipmentID).
type Purchase struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	BaseID      string    `json:"base_id" gorm:"size:36;not null;index"`
	EquipmentID string    `json:"equipment_id" gorm:"size:36;not null;index"`
	UserID      string    `json:"user_id" gorm:"size:36;not null"`
	Quantity    int64     `json:"quantity" gorm:"not null"`
	Date        time.Time `json:"date" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`

	Base      *Base      `json:"base,omitempty" gorm:"foreignKey:BaseID"`
	Equipment *Equipment `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
	User      *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Purchase) TableName() string {
	return "purchases"
}
