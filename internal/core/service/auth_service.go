package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/catalogo/product-catalog-api/internal/core/domain"
	"github.com/catalogo/product-catalog-api/internal/core/ports"
)

// AuthService implements registration and login. Accounts are keyed on the
// (username, role) pair: the same username may exist once as admin and once
// as user.
type AuthService struct {
	repo      ports.AuthRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, username, password, role string) (*domain.User, error) {
	if username == "" || password == "" || role == "" {
		return nil, domain.InvalidInput("username, password and role are required")
	}
	if !domain.ValidRole(role) {
		return nil, domain.InvalidInput("invalid role, choose admin or user")
	}

	existing, err := s.repo.FindByUsernameAndRole(ctx, username, role)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("user already exists")
	}

	// bcrypt embeds a fresh random salt in every hash.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login authenticates by (username, role) and issues a signed token. An
// unknown account and a wrong password produce the identical error so the
// response never discloses which one failed.
func (s *AuthService) Login(ctx context.Context, username, password, role string) (string, *domain.User, error) {
	if username == "" || password == "" || role == "" {
		return "", nil, domain.InvalidInput("username, password and role are required")
	}

	user, err := s.repo.FindByUsernameAndRole(ctx, username, role)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, domain.Unauthorized("invalid username or password")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.Unauthorized("invalid username or password")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", user.Username).Str("role", user.Role).Msg("user authenticated")
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
