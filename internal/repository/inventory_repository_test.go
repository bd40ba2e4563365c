package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fortresslabs/garrison/internal/entity"
	"github.com/fortresslabs/garrison/internal/repository"
	"github.com/fortresslabs/garrison/internal/testutil"
)

func TestInventoryApply(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	ctx := context.Background()

	// Upsert on first credit, accumulate on the second.
	for _, delta := range []int64{30, 20} {
		if err := repos.Inventory.Apply(ctx, repository.Adjustment{
			BaseID: "base-a", EquipmentID: "eq-1", Delta: delta,
		}); err != nil {
			t.Fatalf("Apply(+%d) failed: %v", delta, err)
		}
	}
	qty, err := repos.Inventory.GetQuantity(ctx, "base-a", "eq-1")
	if err != nil {
		t.Fatalf("GetQuantity failed: %v", err)
	}
	if qty != 50 {
		t.Errorf("quantity = %d, want 50", qty)
	}

	if err := repos.Inventory.Apply(ctx, repository.Adjustment{
		BaseID: "base-a", EquipmentID: "eq-1", Delta: -20,
	}); err != nil {
		t.Fatalf("Apply(-20) failed: %v", err)
	}
	qty, _ = repos.Inventory.GetQuantity(ctx, "base-a", "eq-1")
	if qty != 30 {
		t.Errorf("quantity after debit = %d, want 30", qty)
	}
}

func TestInventoryApply_GuardedDecrement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	ctx := context.Background()

	if err := repos.Inventory.Apply(ctx, repository.Adjustment{
		BaseID: "base-a", EquipmentID: "eq-1", Delta: 10,
	}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	// A debit past zero is refused, not clamped.
	err := repos.Inventory.Apply(ctx, repository.Adjustment{
		BaseID: "base-a", EquipmentID: "eq-1", Delta: -11,
	})
	if !errors.Is(err, repository.ErrInsufficientStock) {
		t.Fatalf("error = %v, want ErrInsufficientStock", err)
	}
	qty, _ := repos.Inventory.GetQuantity(ctx, "base-a", "eq-1")
	if qty != 10 {
		t.Errorf("quantity = %d, want 10 untouched", qty)
	}

	// Debiting a key that has no row at all.
	err = repos.Inventory.Apply(ctx, repository.Adjustment{
		BaseID: "base-b", EquipmentID: "eq-1", Delta: -1,
	})
	if !errors.Is(err, repository.ErrInsufficientStock) {
		t.Fatalf("error = %v, want ErrInsufficientStock", err)
	}
}

func TestInventoryGetQuantity_AbsentKeyIsZero(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)

	qty, err := repos.Inventory.GetQuantity(context.Background(), "base-x", "eq-x")
	if err != nil {
		t.Fatalf("GetQuantity failed: %v", err)
	}
	if qty != 0 {
		t.Errorf("quantity = %d, want 0", qty)
	}
}

func TestEquipmentResolveOrCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	ctx := context.Background()

	first, err := repos.Equipment.ResolveOrCreate(ctx, "M4 Carbine")
	if err != nil {
		t.Fatalf("first ResolveOrCreate failed: %v", err)
	}
	second, err := repos.Equipment.ResolveOrCreate(ctx, "M4 Carbine")
	if err != nil {
		t.Fatalf("second ResolveOrCreate failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("resolve returned different rows: %s vs %s", first.ID, second.ID)
	}

	var count int64
	db.Model(&entity.Equipment{}).Count(&count)
	if count != 1 {
		t.Errorf("equipment rows = %d, want 1", count)
	}
}
