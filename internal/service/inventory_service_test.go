package service_test

import (
	"context"
	"testing"

	"github.com/fortresslabs/garrison/internal/entity"
	"github.com/fortresslabs/garrison/internal/service"
	"github.com/fortresslabs/garrison/internal/testutil"
)

func TestReplayQuantityMatchesLedger(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos, services := testutil.SetupServices(db)
	ctx := context.Background()

	baseA := testutil.SeedBase(t, db, "Fort Alpha")
	baseB := testutil.SeedBase(t, db, "Fort Bravo")
	admin := testutil.Principal(testutil.SeedUser(t, db, "admin@test.mil", entity.RoleAdmin, ""))

	seedStock(t, services, admin, baseA.ID, "M4 Carbine", "100")
	if _, err := services.Transfer.Create(ctx, admin, service.CreateTransferInput{
		FromBaseID: baseA.ID, ToBaseID: baseB.ID, EquipmentName: "M4 Carbine", Quantity: "30", Date: "2025-01-05",
	}); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if _, err := services.Assignment.Create(ctx, admin, service.CreateAssignmentInput{
		BaseID: baseA.ID, EquipmentName: "M4 Carbine", Quantity: "15",
		Type: entity.AssignmentAssigned, PersonnelName: "Sgt. Vega", Date: "2025-01-06",
	}); err != nil {
		t.Fatalf("assignment: %v", err)
	}
	if _, err := services.Assignment.Create(ctx, admin, service.CreateAssignmentInput{
		BaseID: baseB.ID, EquipmentName: "M4 Carbine", Quantity: "5",
		Type: entity.AssignmentExpended, Reason: "Training", Date: "2025-01-07",
	}); err != nil {
		t.Fatalf("expenditure: %v", err)
	}

	// The cached projection must equal a full replay of the history for
	// every touched key.
	equipment, _ := repos.Equipment.FindByName(ctx, "M4 Carbine")
	for _, baseID := range []string{baseA.ID, baseB.ID} {
		ledger, err := repos.Inventory.GetQuantity(ctx, baseID, equipment.ID)
		if err != nil {
			t.Fatalf("GetQuantity: %v", err)
		}
		replayed, err := services.Inventory.ReplayQuantity(ctx, baseID, equipment.ID)
		if err != nil {
			t.Fatalf("ReplayQuantity: %v", err)
		}
		if ledger != replayed {
			t.Errorf("base %s: ledger %d != replay %d", baseID, ledger, replayed)
		}
	}
}

func TestOverview_EnrichesWithLifetimeSums(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, services := testutil.SetupServices(db)
	ctx := context.Background()

	baseA := testutil.SeedBase(t, db, "Fort Alpha")
	baseB := testutil.SeedBase(t, db, "Fort Bravo")
	admin := testutil.Principal(testutil.SeedUser(t, db, "admin@test.mil", entity.RoleAdmin, ""))

	seedStock(t, services, admin, baseA.ID, "M4 Carbine", "100")
	if _, err := services.Transfer.Create(ctx, admin, service.CreateTransferInput{
		FromBaseID: baseA.ID, ToBaseID: baseB.ID, EquipmentName: "M4 Carbine", Quantity: "30", Date: "2025-01-05",
	}); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	rows, err := services.Inventory.Overview(ctx, admin, baseA.ID)
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("overview rows = %d, want 1", len(rows))
	}
	row := rows[0]
	if row.Quantity != 70 || row.Purchased != 100 || row.TransferredOut != 30 {
		t.Errorf("overview = qty %d purchased %d out %d, want 70/100/30", row.Quantity, row.Purchased, row.TransferredOut)
	}
	if row.Base == nil || row.Base.Name != "Fort Alpha" {
		t.Errorf("overview base not joined: %+v", row.Base)
	}
	if row.Equipment == nil || row.Equipment.Name != "M4 Carbine" {
		t.Errorf("overview equipment not joined: %+v", row.Equipment)
	}
}

func TestOverview_CommanderScoped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, services := testutil.SetupServices(db)
	ctx := context.Background()

	baseA := testutil.SeedBase(t, db, "Fort Alpha")
	baseB := testutil.SeedBase(t, db, "Fort Bravo")
	admin := testutil.Principal(testutil.SeedUser(t, db, "admin@test.mil", entity.RoleAdmin, ""))
	commander := testutil.Principal(testutil.SeedUser(t, db, "cmd@test.mil", entity.RoleBaseCommander, baseB.ID))

	seedStock(t, services, admin, baseA.ID, "M4 Carbine", "10")
	seedStock(t, services, admin, baseB.ID, "Radio Set", "5")

	rows, err := services.Inventory.Overview(ctx, commander, baseA.ID)
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Base.ID != baseB.ID {
		t.Errorf("commander overview leaked beyond own base: %d rows", len(rows))
	}
}
