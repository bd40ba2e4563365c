package service_test

import (
	"context"
	"testing"

	"github.com/fortresslabs/garrison/internal/entity"
	"github.com/fortresslabs/garrison/internal/service"
	"github.com/fortresslabs/garrison/internal/testutil"
)

func seedStock(t *testing.T, services *service.Services, admin entity.Principal, baseID, equipmentName, qty string) {
	t.Helper()
	if _, err := services.Purchase.Create(context.Background(), admin, service.CreatePurchaseInput{
		BaseID:        baseID,
		EquipmentName: equipmentName,
		Quantity:      qty,
		Date:          "2025-01-01",
	}); err != nil {
		t.Fatalf("seed stock failed: %v", err)
	}
}

func TestCreateTransfer_MovesStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos, services := testutil.SetupServices(db)
	ctx := context.Background()

	baseA := testutil.SeedBase(t, db, "Fort Alpha")
	baseB := testutil.SeedBase(t, db, "Fort Bravo")
	admin := testutil.Principal(testutil.SeedUser(t, db, "admin@test.mil", entity.RoleAdmin, ""))
	seedStock(t, services, admin, baseA.ID, "M4 Carbine", "50")

	transfer, err := services.Transfer.Create(ctx, admin, service.CreateTransferInput{
		FromBaseID:    baseA.ID,
		ToBaseID:      baseB.ID,
		EquipmentName: "M4 Carbine",
		Quantity:      "20",
		Date:          "2025-01-02",
	})
	if err != nil {
		t.Fatalf("Create transfer failed: %v", err)
	}
	if transfer.Status != entity.TransferCompleted {
		t.Errorf("transfer status = %q, want COMPLETED", transfer.Status)
	}

	equipment, _ := repos.Equipment.FindByName(ctx, "M4 Carbine")
	fromQty, _ := repos.Inventory.GetQuantity(ctx, baseA.ID, equipment.ID)
	toQty, _ := repos.Inventory.GetQuantity(ctx, baseB.ID, equipment.ID)
	if fromQty != 30 || toQty != 20 {
		t.Errorf("quantities after transfer = %d/%d, want 30/20", fromQty, toQty)
	}
}

func TestCreateTransfer_InsufficientLeavesNothingBehind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos, services := testutil.SetupServices(db)
	ctx := context.Background()

	baseA := testutil.SeedBase(t, db, "Fort Alpha")
	baseB := testutil.SeedBase(t, db, "Fort Bravo")
	admin := testutil.Principal(testutil.SeedUser(t, db, "admin@test.mil", entity.RoleAdmin, ""))
	seedStock(t, services, admin, baseA.ID, "M4 Carbine", "10")

	_, err := services.Transfer.Create(ctx, admin, service.CreateTransferInput{
		FromBaseID:    baseA.ID,
		ToBaseID:      baseB.ID,
		EquipmentName: "M4 Carbine",
		Quantity:      "20",
		Date:          "2025-01-02",
	})
	if service.KindOf(err) != service.KindInsufficientInventory {
		t.Fatalf("error kind = %v, want INSUFFICIENT_INVENTORY", service.KindOf(err))
	}

	// Both ledger keys and the history are untouched.
	equipment, _ := repos.Equipment.FindByName(ctx, "M4 Carbine")
	fromQty, _ := repos.Inventory.GetQuantity(ctx, baseA.ID, equipment.ID)
	toQty, _ := repos.Inventory.GetQuantity(ctx, baseB.ID, equipment.ID)
	if fromQty != 10 || toQty != 0 {
		t.Errorf("quantities after failed transfer = %d/%d, want 10/0", fromQty, toQty)
	}
	var transfers int64
	db.Model(&entity.Transfer{}).Count(&transfers)
	if transfers != 0 {
		t.Errorf("transfer rows after failure = %d, want 0", transfers)
	}
}

func TestCreateTransfer_SameBaseRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, services := testutil.SetupServices(db)

	baseA := testutil.SeedBase(t, db, "Fort Alpha")
	admin := testutil.Principal(testutil.SeedUser(t, db, "admin@test.mil", entity.RoleAdmin, ""))
	seedStock(t, services, admin, baseA.ID, "M4 Carbine", "50")

	_, err := services.Transfer.Create(context.Background(), admin, service.CreateTransferInput{
		FromBaseID:    baseA.ID,
		ToBaseID:      baseA.ID,
		EquipmentName: "M4 Carbine",
		Quantity:      "10",
		Date:          "2025-01-02",
	})
	if service.KindOf(err) != service.KindValidation {
		t.Fatalf("error kind = %v, want VALIDATION", service.KindOf(err))
	}
}

func TestCreateTransfer_UnknownEquipment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, services := testutil.SetupServices(db)

	baseA := testutil.SeedBase(t, db, "Fort Alpha")
	baseB := testutil.SeedBase(t, db, "Fort Bravo")
	admin := testutil.Principal(testutil.SeedUser(t, db, "admin@test.mil", entity.RoleAdmin, ""))

	// Transfers never auto-create equipment the way purchases do.
	_, err := services.Transfer.Create(context.Background(), admin, service.CreateTransferInput{
		FromBaseID:    baseA.ID,
		ToBaseID:      baseB.ID,
		EquipmentName: "Phantom Rifle",
		Quantity:      "10",
		Date:          "2025-01-02",
	})
	if service.KindOf(err) != service.KindNotFound {
		t.Fatalf("error kind = %v, want NOT_FOUND", service.KindOf(err))
	}

	var equipment int64
	db.Model(&entity.Equipment{}).Count(&equipment)
	if equipment != 0 {
		t.Errorf("equipment rows = %d, want 0", equipment)
	}
}

func TestCreateTransfer_OfficerForeignSourceDenied(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, services := testutil.SetupServices(db)

	baseA := testutil.SeedBase(t, db, "Fort Alpha")
	baseB := testutil.SeedBase(t, db, "Fort Bravo")
	admin := testutil.Principal(testutil.SeedUser(t, db, "admin@test.mil", entity.RoleAdmin, ""))
	officer := testutil.Principal(testutil.SeedUser(t, db, "officer@test.mil", entity.RoleLogisticsOfficer, baseA.ID))
	seedStock(t, services, admin, baseB.ID, "M4 Carbine", "50")

	_, err := services.Transfer.Create(context.Background(), officer, service.CreateTransferInput{
		FromBaseID:    baseB.ID,
		ToBaseID:      baseA.ID,
		EquipmentName: "M4 Carbine",
		Quantity:      "10",
		Date:          "2025-01-02",
	})
	if service.KindOf(err) != service.KindPermissionDenied {
		t.Fatalf("error kind = %v, want PERMISSION_DENIED", service.KindOf(err))
	}
}
