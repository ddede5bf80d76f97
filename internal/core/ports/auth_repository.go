package ports

import (
	"context"

	"github.com/catalogo/product-catalog-api/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByUsernameAndRole returns (nil, nil) when no account matches the
	// (username, role) pair.
	FindByUsernameAndRole(ctx context.Context, username, role string) (*domain.User, error)
}
