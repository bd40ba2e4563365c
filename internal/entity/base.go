package entity

import (
	"time"
)

// Base is a physical installation holding its own inventory. Immutable
// after creation.
type Base struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"size:128;not null;uniqueIndex"`
	Location  string    `json:"location" gorm:"size:256"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Base) TableName() string {
	return "bases"
}
