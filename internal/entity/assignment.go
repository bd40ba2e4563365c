package entity

import (
	"time"
)

// Assignment types. Both remove stock from the operational pool; the
// distinction only matters for reporting.
const (
	AssignmentAssigned = "ASSIGNED"
	AssignmentExpended = "EXPENDED"
)

// Assignment records stock issued to personnel or expended. Immutable once
// created; decreases the ledger at (BaseID, EquipmentID) regardless of type.
type Assignment struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	UserID        string    `json:"user_id" gorm:"size:36;not null"`
	BaseID        string    `json:"base_id" gorm:"size:36;not null;index"`
	EquipmentID   string    `json:"equipment_id" gorm:"size:36;not null;index"`
	Quantity      int64     `json:"quantity" gorm:"not null"`
	Type          string    `json:"type" gorm:"size:16;not null"`
	PersonnelName string    `json:"personnel_name" gorm:"size:128"`
	Reason        string    `json:"reason" gorm:"size:256"`
	Date          time.Time `json:"date" gorm:"not null;index"`
	CreatedAt     time.Time `json:"created_at"`

	Base      *Base      `json:"base,omitempty" gorm:"foreignKey:BaseID"`
	Equipment *Equipment `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
	User      *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Assignment) TableName() string {
	return "assignments"
}
