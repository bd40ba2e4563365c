package entity

import (
	"time"
)

// Movement log action types.
const (
	ActionPurchase    = "PURCHASE"
	ActionTransfer    = "TRANSFER"
	ActionAssignment  = "ASSIGNMENT"
	ActionExpenditure = "EXPENDITURE"
)

// MovementRecord is the read-only union projection over the four transaction
// types, consumed by reports. Transfers carry a synthetic "{from} → {to}"
// base label and are attributed to "System" since no per-transfer actor is
// recorded.
type MovementRecord struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	ActionType  string    `json:"action_type"`
	Equipment   string    `json:"equipment"`
	Quantity    int64     `json:"quantity"`
	Base        string    `json:"base"`
	PerformedBy string    `json:"performed_by"`
	Remarks     string    `json:"remarks"`
}
