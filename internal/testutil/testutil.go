package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fortresslabs/garrison/internal/config"
	"github.com/fortresslabs/garrison/internal/entity"
	"github.com/fortresslabs/garrison/internal/handler"
	"github.com/fortresslabs/garrison/internal/repository"
	"github.com/fortresslabs/garrison/internal/service"
)

const JWTSecret = "garrison-test-jwt-secret"

// SetupTestDB opens an in-memory sqlite database with all tables migrated.
// A single pooled connection keeps the in-memory database alive and makes
// concurrent transactions serialize the way the tests expect.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&entity.Base{},
		&entity.User{},
		&entity.Equipment{},
		&entity.Inventory{},
		&entity.Purchase{},
		&entity.Transfer{},
		&entity.Assignment{},
		&entity.AuditLog{},
	); err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// TestConfig returns a config suitable for tests: no redis, short-lived
// tokens signed with JWTSecret.
func TestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret: JWTSecret,
			Expire: time.Hour,
			Issuer: "garrison-test",
		},
	}
}

// SetupServices wires repositories and services over the given database
// with the metrics cache disabled.
func SetupServices(db *gorm.DB) (*repository.Repositories, *service.Services) {
	repos := repository.NewRepositories(db)
	services := service.NewServices(db, repos, nil, TestConfig(), nil)
	return repos, services
}

// SetupRouter builds the full API router over the given database.
func SetupRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	_, services := SetupServices(db)
	handlers := handler.NewHandlers(services)

	r := gin.New()
	r.Use(gin.Recovery())
	handler.RegisterRoutes(r, handlers, JWTSecret)
	return r
}

// GenerateTestToken creates a valid token for the given identity. baseID
// may be empty for admins.
func GenerateTestToken(userID, role, baseID string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     userID,
		"uid":     userID,
		"role":    role,
		"base_id": baseID,
		"iss":     "garrison-test",
		"iat":     now.Unix(),
		"exp":     now.Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DoRequest executes an HTTP request against the test router.
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse decodes the JSON response envelope.
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedBase creates a base row.
func SeedBase(t *testing.T, db *gorm.DB, name string) *entity.Base {
	t.Helper()
	base := &entity.Base{
		ID:       uuid.New().String(),
		Name:     name,
		Location: "Test Range",
	}
	if err := db.Create(base).Error; err != nil {
		t.Fatalf("Failed to seed base %s: %v", name, err)
	}
	return base
}

// SeedUser creates an account with the given role. baseID may be empty.
func SeedUser(t *testing.T, db *gorm.DB, email, role, baseID string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}
	user := &entity.User{
		ID:       uuid.New().String(),
		Email:    email,
		Name:     "Test " + role,
		Password: string(hash),
		Role:     role,
	}
	if baseID != "" {
		user.BaseID = &baseID
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed user %s: %v", email, err)
	}
	return user
}

// Principal builds the principal a user's token would carry.
func Principal(u *entity.User) entity.Principal {
	p := entity.Principal{ID: u.ID, Role: u.Role}
	if u.BaseID != nil {
		p.BaseID = *u.BaseID
	}
	return p
}
