package entity

import (
	"time"
)

// AuditLog is an append-only record of every mutating operation. It is never
// read by ledger logic and never updated or deleted; a failed append aborts
// the operation that produced it.
type AuditLog struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Action    string    `json:"action" gorm:"size:32;not null;index"`
	Entity    string    `json:"entity" gorm:"size:32;not null"`
	EntityID  string    `json:"entity_id" gorm:"size:36;not null;index"`
	UserID    string    `json:"user_id" gorm:"size:36;not null;index"`
	Details   string    `json:"details" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
