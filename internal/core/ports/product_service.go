package ports

import (
	"context"

	"github.com/catalogo/product-catalog-api/internal/core/domain"
)

// CreateProductInput carries the fields for creating a product. Price and
// Stock are pointers so that "absent" and "zero" remain distinguishable:
// price is required, stock defaults to 0 when nil.
type CreateProductInput struct {
	Name        string
	Description string
	Price       *float64
	Stock       *int
	CategoryID  string
}

// UpdateProductInput carries the full replacement fields for a product.
// Every field is required on update, including stock.
type UpdateProductInput struct {
	Name        string
	Description string
	Price       *float64
	Stock       *int
	CategoryID  string
}

// ProductService defines the product rule component. Read operations resolve
// the category reference; GetByID returns (nil, nil) for a well-formed id
// that matches nothing.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.ProductView, error)
	List(ctx context.Context) ([]*domain.ProductView, error)
	GetByID(ctx context.Context, id string) (*domain.ProductView, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*domain.ProductView, error)
	Delete(ctx context.Context, id string) (*domain.Product, error)
	FilterByCategoryID(ctx context.Context, categoryID string) ([]*domain.ProductView, error)
	FilterByCategoryName(ctx context.Context, name string) ([]*domain.ProductView, error)
	FilterByPriceRange(ctx context.Context, min, max float64) ([]*domain.ProductView, error)
	SearchByName(ctx context.Context, term string) ([]*domain.ProductView, error)
}
