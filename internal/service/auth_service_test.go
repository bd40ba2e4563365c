package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fortresslabs/garrison/internal/entity"
	"github.com/fortresslabs/garrison/internal/middleware"
	"github.com/fortresslabs/garrison/internal/service"
	"github.com/fortresslabs/garrison/internal/testutil"
)

func TestLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, services := testutil.SetupServices(db)
	ctx := context.Background()

	base := testutil.SeedBase(t, db, "Fort Alpha")
	testutil.SeedUser(t, db, "officer@test.mil", entity.RoleLogisticsOfficer, base.ID)

	token, user, err := services.Auth.Login(ctx, "officer@test.mil", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Email != "officer@test.mil" {
		t.Errorf("user email = %q", user.Email)
	}

	// The token carries the principal the middleware will reconstruct.
	claims := &middleware.JWTClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testutil.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != entity.RoleLogisticsOfficer || claims.BaseID != base.ID {
		t.Errorf("claims = %+v, want uid/role/base of the seeded officer", claims)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, services := testutil.SetupServices(db)
	ctx := context.Background()

	testutil.SeedUser(t, db, "officer@test.mil", entity.RoleAdmin, "")

	// Wrong password and unknown email are indistinguishable.
	for _, c := range []struct{ email, password string }{
		{"officer@test.mil", "wrong"},
		{"nobody@test.mil", "password123"},
	} {
		_, _, err := services.Auth.Login(ctx, c.email, c.password)
		if !errors.Is(err, service.ErrInvalidCredentials) {
			t.Errorf("Login(%s) error = %v, want ErrInvalidCredentials", c.email, err)
		}
	}
}

func TestMe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	_, services := testutil.SetupServices(db)

	user := testutil.SeedUser(t, db, "admin@test.mil", entity.RoleAdmin, "")
	got, err := services.Auth.Me(context.Background(), testutil.Principal(user))
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Me returned %s, want %s", got.ID, user.ID)
	}
}
