package ports

import (
	"context"

	"github.com/catalogo/product-catalog-api/internal/core/domain"
)

// ProductRepository defines persistence operations for products.
// Find operations return (nil, nil) when no document matches.
type ProductRepository interface {
	Insert(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// FindByName matches the normalized name case-insensitively. When
	// excludeID is non-empty, the document with that id is ignored so an
	// update does not conflict with itself.
	FindByName(ctx context.Context, name string, excludeID string) (*domain.Product, error)
	FindByCategoryID(ctx context.Context, categoryID string) ([]*domain.Product, error)
	// FindByPriceRange returns products with min <= price <= max, ascending
	// by price.
	FindByPriceRange(ctx context.Context, min, max float64) ([]*domain.Product, error)
	// SearchByName matches a case-insensitive substring of the stored name.
	SearchByName(ctx context.Context, term string) ([]*domain.Product, error)
	UpdateByID(ctx context.Context, id string, p *domain.Product) (*domain.Product, error)
	DeleteByID(ctx context.Context, id string) (*domain.Product, error)
}
