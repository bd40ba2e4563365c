package service_test

import (
	"context"
	"testing"

	"github.com/fortresslabs/garrison/internal/config"
	"github.com/fortresslabs/garrison/internal/entity"
	"github.com/fortresslabs/garrison/internal/repository"
	"github.com/fortresslabs/garrison/internal/service"
	"github.com/fortresslabs/garrison/internal/testutil"
)

func TestSeed_FirstBoot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	ctx := context.Background()

	cfg := config.SeedConfig{
		Enabled:       true,
		AdminEmail:    "admin@garrison.mil",
		AdminPassword: "changeme123",
	}
	if err := service.Seed(ctx, db, repos, cfg); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	admin, err := repos.User.FindByEmail(ctx, "admin@garrison.mil")
	if err != nil {
		t.Fatalf("bootstrap admin missing: %v", err)
	}
	if admin.Role != entity.RoleAdmin || admin.BaseID != nil {
		t.Errorf("bootstrap admin = role %s base %v, want baseless ADMIN", admin.Role, admin.BaseID)
	}

	bases, err := repos.Base.List(ctx)
	if err != nil {
		t.Fatalf("base list failed: %v", err)
	}
	if len(bases) != 3 {
		t.Errorf("seeded bases = %d, want 3", len(bases))
	}

	// A rerun against a populated database is a no-op.
	if err := service.Seed(ctx, db, repos, cfg); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}
	count, _ := repos.User.Count(ctx)
	if count != 1 {
		t.Errorf("users after rerun = %d, want 1", count)
	}
}

func TestSeed_Disabled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)

	if err := service.Seed(context.Background(), db, repos, config.SeedConfig{Enabled: false}); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	count, _ := repos.User.Count(context.Background())
	if count != 0 {
		t.Errorf("users = %d, want 0", count)
	}
}

func TestSeed_RequiresPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)

	err := service.Seed(context.Background(), db, repos, config.SeedConfig{Enabled: true, AdminEmail: "a@b.mil"})
	if err == nil {
		t.Fatal("Seed accepted an empty admin password")
	}
}
