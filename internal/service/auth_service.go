package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/fortresslabs/garrison/internal/config"
	"github.com/fortresslabs/garrison/internal/entity"
	"github.com/fortresslabs/garrison/internal/middleware"
	"github.com/fortresslabs/garrison/internal/repository"
)

// AuthService issues access tokens. Sessions are stateless JWTs; the
// middleware turns a valid token back into a Principal.
type AuthService struct {
	users *repository.UserRepository
	cfg   config.JWTConfig
}

func NewAuthService(users *repository.UserRepository, cfg config.JWTConfig) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

// Login verifies credentials and returns a signed token plus the account.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	if email == "" || password == "" {
		return "", nil, Errorf(KindValidation, "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.sign(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Me returns the account behind a principal.
func (s *AuthService) Me(ctx context.Context, p entity.Principal) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, p.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Errorf(KindNotFound, "user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) sign(user *entity.User) (string, error) {
	baseID := ""
	if user.BaseID != nil {
		baseID = *user.BaseID
	}

	now := time.Now()
	claims := middleware.JWTClaims{
		UserID: user.ID,
		Role:   user.Role,
		BaseID: baseID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expire)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}
