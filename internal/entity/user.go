package entity

import (
	"time"
)

// Roles understood by the access scope resolver. BASE_COMMANDER and
// LOGISTICS_OFFICER users always belong to a base; ADMIN users never do.
const (
	RoleAdmin            = "ADMIN"
	RoleBaseCommander    = "BASE_COMMANDER"
	RoleLogisticsOfficer = "LOGISTICS_OFFICER"
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleBaseCommander, RoleLogisticsOfficer:
		return true
	}
	return false
}

// User is an operator account. Admin accounts carry no base.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Email     string    `json:"email" gorm:"size:128;not null;uniqueIndex"`
	Password  string    `json:"-" gorm:"size:128;not null"`
	Name      string    `json:"name" gorm:"size:64"`
	Role      string    `json:"role" gorm:"size:32;not null"`
	BaseID    *string   `json:"base_id" gorm:"size:36;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Base *Base `json:"base,omitempty" gorm:"foreignKey:BaseID"`
}

func (User) TableName() string {
	return "users"
}

// Principal is the resolved caller identity attached by the JWT middleware
// and passed explicitly to every core operation. BaseID is empty for admins.
type Principal struct {
	ID     string
	Role   string
	BaseID string
}

// HasBase reports whether the principal is pinned to a base.
func (p Principal) HasBase() bool {
	return p.BaseID != ""
}
