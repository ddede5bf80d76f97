package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/catalogo/product-catalog-api/internal/core/domain"
	"github.com/catalogo/product-catalog-api/internal/core/ports"
)

// CategoryCache abstracts the Redis-backed category list cache. A nil cache
// disables caching entirely.
type CategoryCache interface {
	GetAll(ctx context.Context) ([]*domain.Category, error)
	SetAll(ctx context.Context, categories []*domain.Category) error
	Invalidate(ctx context.Context) error
}

type CategoryService struct {
	repo   ports.CategoryRepository
	cache  CategoryCache
	logger zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, cache CategoryCache, logger zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, cache: cache, logger: logger}
}

// Create validates and persists a new category. The name is stored in
// normalized form and must not collide case-insensitively with an existing
// category.
func (s *CategoryService) Create(ctx context.Context, input ports.CreateCategoryInput) (*domain.Category, error) {
	name := domain.NormalizeName(input.Name)
	if name == "" {
		return nil, domain.InvalidInput("category name is required")
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("category already exists")
	}

	now := time.Now().UTC()
	created, err := s.repo.Insert(ctx, &domain.Category{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to create category")
		return nil, err
	}

	s.invalidateCache(ctx)
	s.logger.Info().Str("category_id", created.ID).Str("name", created.Name).Msg("category created")
	return created, nil
}

// List returns every category, served from the cache when warm. Cache
// failures are logged and fall through to the store.
func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	if s.cache != nil {
		cached, err := s.cache.GetAll(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("category cache read failed, querying store")
		} else if cached != nil {
			return cached, nil
		}
	}

	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetAll(ctx, categories); err != nil {
			s.logger.Warn().Err(err).Msg("failed to populate category cache")
		}
	}
	return categories, nil
}

// GetByID returns the category with the given id, or (nil, nil) when no such
// category exists. A missing or malformed id is an input error, not absence.
func (s *CategoryService) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if err := validateObjectID(id, "category"); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// GetByName returns the category whose normalized name matches, or (nil, nil).
func (s *CategoryService) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	normalized := domain.NormalizeName(name)
	if normalized == "" {
		return nil, domain.InvalidInput("category name is required")
	}
	return s.repo.FindByName(ctx, normalized)
}

// Update performs a full replace of name and description. Both fields are
// required; the category must already exist.
func (s *CategoryService) Update(ctx context.Context, id string, input ports.UpdateCategoryInput) (*domain.Category, error) {
	if err := validateObjectID(id, "category"); err != nil {
		return nil, err
	}

	name := domain.NormalizeName(input.Name)
	if name == "" {
		return nil, domain.InvalidInput("category name is required")
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domain.InvalidInput("category description is required")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NotFound("category does not exist")
	}

	updated, err := s.repo.UpdateByID(ctx, id, &domain.Category{
		Name:        name,
		Description: description,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("category_id", id).Msg("failed to update category")
		return nil, err
	}
	if updated == nil {
		// Deleted between the existence check and the write.
		return nil, domain.NotFound("category does not exist")
	}

	s.invalidateCache(ctx)
	s.logger.Info().Str("category_id", id).Str("name", updated.Name).Msg("category updated")
	return updated, nil
}

// Delete removes the category and returns the removed document. Products
// referencing it are left untouched; their references dangle.
func (s *CategoryService) Delete(ctx context.Context, id string) (*domain.Category, error) {
	if err := validateObjectID(id, "category"); err != nil {
		return nil, err
	}

	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("category_id", id).Msg("failed to delete category")
		return nil, err
	}
	if deleted == nil {
		return nil, domain.NotFound("category does not exist")
	}

	s.invalidateCache(ctx)
	s.logger.Info().Str("category_id", id).Str("name", deleted.Name).Msg("category deleted")
	return deleted, nil
}

func (s *CategoryService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate category cache")
	}
}

// validateObjectID rejects a missing or malformed store identifier. Existence
// is a separate question answered by the repository.
func validateObjectID(id, entity string) error {
	if id == "" {
		return domain.InvalidInput(entity + " id is required")
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return domain.InvalidInput(entity + " id is invalid")
	}
	return nil
}
