package entity

import (
	"time"
)

// Equipment is the canonical name registry. Rows are auto-created the first
// time a purchase references an unknown name; the unique index on name is
// the backstop against concurrent first-use races.
type Equipment struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"size:128;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

func (Equipment) TableName() string {
	return "equipment"
}
