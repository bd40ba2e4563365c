package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientStock is returned by the guarded ledger decrement when
	// the row holds less than the requested quantity at commit time.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Repositories is the repository collection, all sharing one gorm handle.
type Repositories struct {
	User       *UserRepository
	Base       *BaseRepository
	Equipment  *EquipmentRepository
	Inventory  *InventoryRepository
	Purchase   *PurchaseRepository
	Transfer   *TransferRepository
	Assignment *AssignmentRepository
	Audit      *AuditRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Base:       NewBaseRepository(db),
		Equipment:  NewEquipmentRepository(db),
		Inventory:  NewInventoryRepository(db),
		Purchase:   NewPurchaseRepository(db),
		Transfer:   NewTransferRepository(db),
		Assignment: NewAssignmentRepository(db),
		Audit:      NewAuditRepository(db),
	}
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
