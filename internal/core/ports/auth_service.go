package ports

import (
	"context"

	"github.com/catalogo/product-catalog-api/internal/core/domain"
)

// AuthService defines registration and login. Role is supplied by the
// deployment context (route-level attachment), never taken from free-form
// caller input beyond the fixed {admin, user} set.
type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	// Login returns a signed token and the authenticated user. Unknown user
	// and wrong password fail identically.
	Login(ctx context.Context, username, password, role string) (string, *domain.User, error)
}
