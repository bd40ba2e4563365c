package service_test

import (
	"context"
	"testing"

	"github.com/fortresslabs/garrison/internal/entity"
	"github.com/fortresslabs/garrison/internal/service"
	"github.com/fortresslabs/garrison/internal/testutil"
)

// TestMetrics_ScenarioWalk replays the canonical lifecycle: 50 purchased at
// Alpha, 20 transferred to Bravo, 10 assigned at Alpha.
func TestMetrics_ScenarioWalk(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, services := testutil.SetupServices(db)
	ctx := context.Background()

	baseA := testutil.SeedBase(t, db, "Fort Alpha")
	baseB := testutil.SeedBase(t, db, "Fort Bravo")
	admin := testutil.Principal(testutil.SeedUser(t, db, "admin@test.mil", entity.RoleAdmin, ""))

	if _, err := services.Purchase.Create(ctx, admin, service.CreatePurchaseInput{
		BaseID: baseA.ID, EquipmentName: "M4 Carbine", Quantity: "50", Date: "2025-01-10",
	}); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if _, err := services.Transfer.Create(ctx, admin, service.CreateTransferInput{
		FromBaseID: baseA.ID, ToBaseID: baseB.ID, EquipmentName: "M4 Carbine", Quantity: "20", Date: "2025-01-15",
	}); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if _, err := services.Assignment.Create(ctx, admin, service.CreateAssignmentInput{
		BaseID: baseA.ID, EquipmentName: "M4 Carbine", Quantity: "10",
		Type: entity.AssignmentAssigned, PersonnelName: "Sgt. Vega", Date: "2025-01-20",
	}); err != nil {
		t.Fatalf("assignment: %v", err)
	}

	m, err := services.Metrics.Compute(ctx, admin, service.MetricsQuery{
		From: "2025-01-01", To: "2025-02-01", BaseID: baseA.ID,
	})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if m.OpeningBalance != 0 {
		t.Errorf("opening = %d, want 0", m.OpeningBalance)
	}
	if m.Purchases != 50 || m.TransfersIn != 0 || m.TransfersOut != 20 {
		t.Errorf("movements = %d/%d/%d, want 50/0/20", m.Purchases, m.TransfersIn, m.TransfersOut)
	}
	if m.Assigned != 10 || m.Expended != 0 {
		t.Errorf("assigned/expended = %d/%d, want 10/0", m.Assigned, m.Expended)
	}
	if m.NetMovement != 30 {
		t.Errorf("net movement = %d, want 30", m.NetMovement)
	}
	if m.ClosingBalance != 20 {
		t.Errorf("closing = %d, want 20", m.ClosingBalance)
	}

	// The destination base saw only the incoming transfer.
	mB, err := services.Metrics.Compute(ctx, admin, service.MetricsQuery{
		From: "2025-01-01", To: "2025-02-01", BaseID: baseB.ID,
	})
	if err != nil {
		t.Fatalf("Compute for destination failed: %v", err)
	}
	if mB.TransfersIn != 20 || mB.ClosingBalance != 20 {
		t.Errorf("destination in/closing = %d/%d, want 20/20", mB.TransfersIn, mB.ClosingBalance)
	}
}

func TestMetrics_OpeningBalanceStrictlyBefore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, services := testutil.SetupServices(db)
	ctx := context.Background()

	baseA := testutil.SeedBase(t, db, "Fort Alpha")
	admin := testutil.Principal(testutil.SeedUser(t, db, "admin@test.mil", entity.RoleAdmin, ""))

	if _, err := services.Purchase.Create(ctx, admin, service.CreatePurchaseInput{
		BaseID: baseA.ID, EquipmentName: "M4 Carbine", Quantity: "50", Date: "2025-01-10",
	}); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if _, err := services.Purchase.Create(ctx, admin, service.CreatePurchaseInput{
		BaseID: baseA.ID, EquipmentName: "M4 Carbine", Quantity: "30", Date: "2025-01-15",
	}); err != nil {
		t.Fatalf("purchase: %v", err)
	}

	// A movement exactly on fromDate belongs to the window, not the opening.
	m, err := services.Metrics.Compute(ctx, admin, service.MetricsQuery{
		From: "2025-01-15", To: "2025-02-01", BaseID: baseA.ID,
	})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if m.OpeningBalance != 50 {
		t.Errorf("opening = %d, want 50", m.OpeningBalance)
	}
	if m.Purchases != 30 {
		t.Errorf("window purchases = %d, want 30", m.Purchases)
	}
	if m.ClosingBalance != 80 {
		t.Errorf("closing = %d, want 80", m.ClosingBalance)
	}
}

func TestMetrics_UnboundedWindowMatchesLedger(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos, services := testutil.SetupServices(db)
	ctx := context.Background()

	baseA := testutil.SeedBase(t, db, "Fort Alpha")
	baseB := testutil.SeedBase(t, db, "Fort Bravo")
	admin := testutil.Principal(testutil.SeedUser(t, db, "admin@test.mil", entity.RoleAdmin, ""))

	seedStock(t, services, admin, baseA.ID, "Radio Set", "40")
	if _, err := services.Transfer.Create(ctx, admin, service.CreateTransferInput{
		FromBaseID: baseA.ID, ToBaseID: baseB.ID, EquipmentName: "Radio Set", Quantity: "15", Date: "2025-01-05",
	}); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if _, err := services.Assignment.Create(ctx, admin, service.CreateAssignmentInput{
		BaseID: baseA.ID, EquipmentName: "Radio Set", Quantity: "5",
		Type: entity.AssignmentExpended, Reason: "Damaged", Date: "2025-01-06",
	}); err != nil {
		t.Fatalf("expenditure: %v", err)
	}

	equipment, _ := repos.Equipment.FindByName(ctx, "Radio Set")
	for _, baseID := range []string{baseA.ID, baseB.ID} {
		ledgerQty, _ := repos.Inventory.GetQuantity(ctx, baseID, equipment.ID)
		m, err := services.Metrics.Compute(ctx, admin, service.MetricsQuery{BaseID: baseID, Equipment: "Radio Set"})
		if err != nil {
			t.Fatalf("Compute failed: %v", err)
		}
		if m.ClosingBalance != ledgerQty {
			t.Errorf("base %s: metrics closing %d != ledger %d", baseID, m.ClosingBalance, ledgerQty)
		}
	}
}

func TestMetrics_UnknownEquipmentIsZero(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, services := testutil.SetupServices(db)

	baseA := testutil.SeedBase(t, db, "Fort Alpha")
	admin := testutil.Principal(testutil.SeedUser(t, db, "admin@test.mil", entity.RoleAdmin, ""))
	seedStock(t, services, admin, baseA.ID, "M4 Carbine", "50")

	m, err := services.Metrics.Compute(context.Background(), admin, service.MetricsQuery{Equipment: "Phantom Rifle"})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if *m != (service.Metrics{}) {
		t.Errorf("metrics for unknown equipment = %+v, want all zeros", m)
	}
}

func TestMetrics_NonAdminPinnedToOwnBase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, services := testutil.SetupServices(db)
	ctx := context.Background()

	baseA := testutil.SeedBase(t, db, "Fort Alpha")
	baseB := testutil.SeedBase(t, db, "Fort Bravo")
	admin := testutil.Principal(testutil.SeedUser(t, db, "admin@test.mil", entity.RoleAdmin, ""))
	officer := testutil.Principal(testutil.SeedUser(t, db, "officer@test.mil", entity.RoleLogisticsOfficer, baseA.ID))
	seedStock(t, services, admin, baseA.ID, "M4 Carbine", "50")
	seedStock(t, services, admin, baseB.ID, "M4 Carbine", "70")

	// Officers read any base's records, but metrics stay pinned home.
	m, err := services.Metrics.Compute(ctx, officer, service.MetricsQuery{BaseID: baseB.ID})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if m.ClosingBalance != 50 {
		t.Errorf("closing = %d, want the officer's own base total 50", m.ClosingBalance)
	}
}

func TestMetrics_InvertedRangeRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, services := testutil.SetupServices(db)

	admin := testutil.Principal(testutil.SeedUser(t, db, "admin@test.mil", entity.RoleAdmin, ""))
	_, err := services.Metrics.Compute(context.Background(), admin, service.MetricsQuery{
		From: "2025-02-01", To: "2025-01-01",
	})
	if service.KindOf(err) != service.KindValidation {
		t.Fatalf("error kind = %v, want VALIDATION", service.KindOf(err))
	}
}
