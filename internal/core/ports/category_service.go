package ports

import (
	"context"

	"github.com/catalogo/product-catalog-api/internal/core/domain"
)

// CreateCategoryInput carries the fields for creating a category.
type CreateCategoryInput struct {
	Name        string
	Description string
}

// UpdateCategoryInput carries the full replacement fields for a category.
// Both fields are required on update.
type UpdateCategoryInput struct {
	Name        string
	Description string
}

// CategoryService defines the category rule component. Get operations return
// (nil, nil) for a well-formed identifier or name that matches nothing.
type CategoryService interface {
	Create(ctx context.Context, input CreateCategoryInput) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	Update(ctx context.Context, id string, input UpdateCategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) (*domain.Category, error)
}
