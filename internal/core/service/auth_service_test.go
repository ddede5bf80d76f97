package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/catalogo/product-catalog-api/internal/core/domain"
)

type stubAuthRepo struct {
	byKey map[string]*domain.User
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{byKey: make(map[string]*domain.User)}
}

func authKey(username, role string) string { return username + "|" + role }

func (r *stubAuthRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	key := authKey(u.Username, u.Role)
	if _, exists := r.byKey[key]; exists {
		return nil, domain.Conflict("user already exists")
	}
	clone := *u
	clone.ID = primitive.NewObjectID().Hex()
	r.byKey[key] = &clone
	copied := clone
	return &copied, nil
}

func (r *stubAuthRepo) FindByUsernameAndRole(_ context.Context, username, role string) (*domain.User, error) {
	u, ok := r.byKey[authKey(username, role)]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

const testSecret = "test-secret"

func newAuthService(repo *stubAuthRepo) *AuthService {
	return NewAuthService(repo, testSecret, time.Hour, zerolog.Nop())
}

func TestAuthService_Register(t *testing.T) {
	svc := newAuthService(newStubAuthRepo())

	user, err := svc.Register(context.Background(), "alice", "s3cret", domain.RoleUser)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" || user.Username != "alice" || user.Role != domain.RoleUser {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "s3cret" {
		t.Fatal("password stored in the clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")) != nil {
		t.Fatal("stored hash does not verify against the password")
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := newAuthService(newStubAuthRepo())

	cases := []struct{ username, password, role string }{
		{"", "pw", domain.RoleUser},
		{"alice", "", domain.RoleUser},
		{"alice", "pw", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Register(context.Background(), tc.username, tc.password, tc.role); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("Register(%q, %q, %q): expected InvalidInput, got %v", tc.username, tc.password, tc.role, err)
		}
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	svc := newAuthService(newStubAuthRepo())

	if _, err := svc.Register(context.Background(), "alice", "pw", "superuser"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestAuthService_Register_SameUsernameDifferentRole(t *testing.T) {
	svc := newAuthService(newStubAuthRepo())

	if _, err := svc.Register(context.Background(), "alice", "pw", domain.RoleUser); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "pw", domain.RoleAdmin); err != nil {
		t.Fatalf("Register with same username but other role returned error: %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "pw", domain.RoleUser); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected Conflict for same (username, role) pair, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc := newAuthService(newStubAuthRepo())
	if _, err := svc.Register(context.Background(), "alice", "s3cret", domain.RoleAdmin); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "alice", "s3cret", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("unexpected claims type %T", parsed.Claims)
	}
	if claims["username"] != "alice" || claims["role"] != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if _, present := claims["exp"]; !present {
		t.Fatal("token carries no expiry")
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	svc := newAuthService(newStubAuthRepo())
	if _, err := svc.Register(context.Background(), "alice", "s3cret", domain.RoleUser); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, _, wrongPassword := svc.Login(context.Background(), "alice", "nope", domain.RoleUser)
	_, _, unknownUser := svc.Login(context.Background(), "bob", "nope", domain.RoleUser)
	_, _, wrongRole := svc.Login(context.Background(), "alice", "s3cret", domain.RoleAdmin)

	for _, err := range []error{wrongPassword, unknownUser, wrongRole} {
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected Unauthorized, got %v", err)
		}
	}
	if wrongPassword.Error() != unknownUser.Error() || unknownUser.Error() != wrongRole.Error() {
		t.Fatalf("failure messages differ: %q / %q / %q", wrongPassword, unknownUser, wrongRole)
	}
}
