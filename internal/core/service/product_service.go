package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/catalogo/product-catalog-api/internal/core/domain"
	"github.com/catalogo/product-catalog-api/internal/core/ports"
)

type ProductService struct {
	repo       ports.ProductRepository
	categories ports.CategoryService
	logger     zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, categories ports.CategoryService, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, categories: categories, logger: logger}
}

// Create validates and persists a new product. All checks run before the
// single write at the end: name presence and uniqueness, price, stock, then
// the category reference. The category existence read and the product write
// are not atomic; the category may vanish in between.
func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.ProductView, error) {
	name := domain.NormalizeName(input.Name)
	if name == "" {
		return nil, domain.InvalidInput("product name is missing")
	}

	existing, err := s.repo.FindByName(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("product already exists")
	}

	if input.Price == nil {
		return nil, domain.InvalidInput("product price is missing")
	}
	price := *input.Price
	if !isFiniteNonNegative(price) {
		return nil, domain.InvalidInput("product price is invalid")
	}

	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
	}
	if stock < 0 {
		return nil, domain.InvalidInput("product stock is invalid")
	}

	if _, err := s.resolveCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Insert(ctx, &domain.Product{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       price,
		Stock:       stock,
		CategoryID:  input.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("name", created.Name).Str("category_id", created.CategoryID).Msg("product created")
	return s.expandOne(ctx, created)
}

// List returns all products with their category references resolved.
func (s *ProductService) List(ctx context.Context) ([]*domain.ProductView, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.expandAll(ctx, products)
}

// GetByID returns the product with the given id with its category resolved,
// or (nil, nil) when no such product exists.
func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.ProductView, error) {
	if err := validateObjectID(id, "product"); err != nil {
		return nil, err
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil || product == nil {
		return nil, err
	}
	return s.expandOne(ctx, product)
}

// Update performs a full replace. Stricter than Create: every field is
// required, including description and stock. The uniqueness check excludes
// the record under update, so an unchanged name does not conflict with
// itself.
func (s *ProductService) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.ProductView, error) {
	if err := validateObjectID(id, "product"); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.NotFound("product does not exist")
	}

	name := domain.NormalizeName(input.Name)
	if name == "" {
		return nil, domain.InvalidInput("product name is missing")
	}
	conflicting, err := s.repo.FindByName(ctx, name, id)
	if err != nil {
		return nil, err
	}
	if conflicting != nil {
		return nil, domain.Conflict("product already exists")
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domain.InvalidInput("product description is missing")
	}

	if input.Price == nil {
		return nil, domain.InvalidInput("product price is missing")
	}
	if !isFiniteNonNegative(*input.Price) {
		return nil, domain.InvalidInput("product price is invalid")
	}

	if input.Stock == nil {
		return nil, domain.InvalidInput("product stock is missing")
	}
	if *input.Stock < 0 {
		return nil, domain.InvalidInput("product stock is invalid")
	}

	if _, err := s.resolveCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateByID(ctx, id, &domain.Product{
		Name:        name,
		Description: description,
		Price:       *input.Price,
		Stock:       *input.Stock,
		CategoryID:  input.CategoryID,
		CreatedAt:   current.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, err
	}
	if updated == nil {
		return nil, domain.NotFound("product does not exist")
	}

	s.logger.Info().Str("product_id", id).Str("name", updated.Name).Msg("product updated")
	return s.expandOne(ctx, updated)
}

// Delete removes the product and returns the removed document.
func (s *ProductService) Delete(ctx context.Context, id string) (*domain.Product, error) {
	if err := validateObjectID(id, "product"); err != nil {
		return nil, err
	}

	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return nil, err
	}
	if deleted == nil {
		return nil, domain.NotFound("product does not exist")
	}

	s.logger.Info().Str("product_id", id).Str("name", deleted.Name).Msg("product deleted")
	return deleted, nil
}

// FilterByCategoryID returns all products referencing the given category.
// The category itself must exist.
func (s *ProductService) FilterByCategoryID(ctx context.Context, categoryID string) ([]*domain.ProductView, error) {
	if _, err := s.resolveCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	products, err := s.repo.FindByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return s.expandAll(ctx, products)
}

// FilterByCategoryName returns products whose resolved category name equals
// the normalized input. Implemented as a scan over all products rather than
// an indexed join; fine at catalog scale.
func (s *ProductService) FilterByCategoryName(ctx context.Context, name string) ([]*domain.ProductView, error) {
	normalized := domain.NormalizeName(name)
	if normalized == "" {
		return nil, domain.InvalidInput("category name is required")
	}

	category, err := s.categories.GetByName(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.NotFound("category does not exist")
	}

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.expandAll(ctx, products)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.ProductView, 0, len(views))
	for _, v := range views {
		if v.Category != nil && v.Category.Name == normalized {
			matched = append(matched, v)
		}
	}
	return matched, nil
}

// FilterByPriceRange returns products priced within [min, max], ascending by
// price. Both bounds must be finite, non-negative, and ordered.
func (s *ProductService) FilterByPriceRange(ctx context.Context, min, max float64) ([]*domain.ProductView, error) {
	if !isFiniteNonNegative(min) || !isFiniteNonNegative(max) {
		return nil, domain.InvalidInput("price range is invalid")
	}
	if min > max {
		return nil, domain.InvalidInput("minimum price exceeds maximum price")
	}

	products, err := s.repo.FindByPriceRange(ctx, min, max)
	if err != nil {
		return nil, err
	}
	return s.expandAll(ctx, products)
}

// SearchByName returns products whose name contains the term,
// case-insensitively.
func (s *ProductService) SearchByName(ctx context.Context, term string) ([]*domain.ProductView, error) {
	normalized := domain.NormalizeName(term)
	if normalized == "" {
		return nil, domain.InvalidInput("search term is required")
	}

	products, err := s.repo.SearchByName(ctx, normalized)
	if err != nil {
		return nil, err
	}
	return s.expandAll(ctx, products)
}

// resolveCategory validates the reference and confirms the category exists.
func (s *ProductService) resolveCategory(ctx context.Context, categoryID string) (*domain.Category, error) {
	if categoryID == "" {
		return nil, domain.InvalidInput("product category is missing")
	}
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.NotFound("category does not exist")
	}
	return category, nil
}

// expandOne resolves the category reference on a single product. A dangling
// reference yields a nil category, not an error.
func (s *ProductService) expandOne(ctx context.Context, p *domain.Product) (*domain.ProductView, error) {
	view := &domain.ProductView{Product: *p}
	category, err := s.categories.GetByID(ctx, p.CategoryID)
	if err != nil {
		s.logger.Warn().Err(err).Str("product_id", p.ID).Str("category_id", p.CategoryID).Msg("category expansion failed")
		return view, nil
	}
	if category != nil {
		view.Category = &domain.CategoryRef{
			ID:          category.ID,
			Name:        category.Name,
			Description: category.Description,
		}
	}
	return view, nil
}

// expandAll resolves category references for a slice of products, fetching
// each distinct category once.
func (s *ProductService) expandAll(ctx context.Context, products []*domain.Product) ([]*domain.ProductView, error) {
	refs := make(map[string]*domain.CategoryRef)
	views := make([]*domain.ProductView, 0, len(products))

	for _, p := range products {
		view := &domain.ProductView{Product: *p}
		if ref, seen := refs[p.CategoryID]; seen {
			view.Category = ref
		} else {
			category, err := s.categories.GetByID(ctx, p.CategoryID)
			if err != nil {
				s.logger.Warn().Err(err).Str("product_id", p.ID).Str("category_id", p.CategoryID).Msg("category expansion failed")
			} else if category != nil {
				view.Category = &domain.CategoryRef{
					ID:          category.ID,
					Name:        category.Name,
					Description: category.Description,
				}
			}
			refs[p.CategoryID] = view.Category
		}
		views = append(views, view)
	}
	return views, nil
}

func isFiniteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
