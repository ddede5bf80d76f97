package ports

import (
	"context"

	"github.com/catalogo/product-catalog-api/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
// Find operations return (nil, nil) when no document matches; absence is a
// caller decision, not a repository error.
type CategoryRepository interface {
	Insert(ctx context.Context, c *domain.Category) (*domain.Category, error)
	FindAll(ctx context.Context) ([]*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	// FindByName matches the normalized name case-insensitively.
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	// UpdateByID replaces name and description and returns the updated
	// document, or (nil, nil) when no document has that id.
	UpdateByID(ctx context.Context, id string, c *domain.Category) (*domain.Category, error)
	// DeleteByID removes and returns the document, or (nil, nil) when absent.
	DeleteByID(ctx context.Context, id string) (*domain.Category, error)
}
