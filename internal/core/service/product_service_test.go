package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/catalogo/product-catalog-api/internal/core/domain"
	"github.com/catalogo/product-catalog-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubProductRepo struct {
	byID    map[string]*domain.Product
	inserts int
	updates int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) seed(name string, price float64, categoryID string) *domain.Product {
	p := &domain.Product{
		ID:         primitive.NewObjectID().Hex(),
		Name:       domain.NormalizeName(name),
		Price:      price,
		CategoryID: categoryID,
	}
	r.byID[p.ID] = p
	return p
}

func (r *stubProductRepo) Insert(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.inserts++
	clone := *p
	clone.ID = primitive.NewObjectID().Hex()
	r.byID[clone.ID] = &clone
	copied := clone
	return &copied, nil
}

func (r *stubProductRepo) FindAll(_ context.Context) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) FindByName(_ context.Context, name string, excludeID string) (*domain.Product, error) {
	normalized := domain.NormalizeName(name)
	for _, p := range r.byID {
		if p.ID == excludeID {
			continue
		}
		if p.Name == normalized {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubProductRepo) FindByCategoryID(_ context.Context, categoryID string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.byID {
		if p.CategoryID == categoryID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

// FindByPriceRange applies the same filter and sort the real Mongo repo would.
func (r *stubProductRepo) FindByPriceRange(_ context.Context, min, max float64) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.byID {
		if p.Price >= min && p.Price <= max {
			clone := *p
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}

func (r *stubProductRepo) SearchByName(_ context.Context, term string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.byID {
		if strings.Contains(p.Name, strings.ToLower(term)) {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubProductRepo) UpdateByID(_ context.Context, id string, p *domain.Product) (*domain.Product, error) {
	existing, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	r.updates++
	existing.Name = p.Name
	existing.Description = p.Description
	existing.Price = p.Price
	existing.Stock = p.Stock
	existing.CategoryID = p.CategoryID
	existing.UpdatedAt = p.UpdatedAt
	clone := *existing
	return &clone, nil
}

func (r *stubProductRepo) DeleteByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	delete(r.byID, id)
	return p, nil
}

// productFixture wires a product service against in-memory stubs, with one
// seeded category.
type productFixture struct {
	products   *stubProductRepo
	categories *stubCategoryRepo
	category   *domain.Category
	svc        *ProductService
}

func newProductFixture() *productFixture {
	categories := newStubCategoryRepo()
	category := categories.seed("electronics", "gadgets")
	products := newStubProductRepo()
	categoryService := NewCategoryService(categories, nil, zerolog.Nop())
	return &productFixture{
		products:   products,
		categories: categories,
		category:   category,
		svc:        NewProductService(products, categoryService, zerolog.Nop()),
	}
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestProductService_Create_Defaults(t *testing.T) {
	f := newProductFixture()

	view, err := f.svc.Create(context.Background(), ports.CreateProductInput{
		Name:        "  LAPTOP ",
		Description: "  portable computer ",
		Price:       floatPtr(999.99),
		CategoryID:  f.category.ID,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if view.Name != "laptop" {
		t.Fatalf("expected normalized name, got %q", view.Name)
	}
	if view.Description != "portable computer" {
		t.Fatalf("expected trimmed description, got %q", view.Description)
	}
	if view.Stock != 0 {
		t.Fatalf("expected stock to default to 0, got %d", view.Stock)
	}
	if view.Category == nil || view.Category.ID != f.category.ID || view.Category.Name != "electronics" {
		t.Fatalf("expected expanded category, got %+v", view.Category)
	}
}

func TestProductService_Create_MissingName(t *testing.T) {
	f := newProductFixture()

	_, err := f.svc.Create(context.Background(), ports.CreateProductInput{
		Name:       "   ",
		Price:      floatPtr(1),
		CategoryID: f.category.ID,
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestProductService_Create_DuplicateName(t *testing.T) {
	f := newProductFixture()
	f.products.seed("laptop", 500, f.category.ID)

	_, err := f.svc.Create(context.Background(), ports.CreateProductInput{
		Name:       " Laptop ",
		Price:      floatPtr(999),
		CategoryID: f.category.ID,
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected Conflict, got %v", err)
	}
}

func TestProductService_Create_PriceValidation(t *testing.T) {
	f := newProductFixture()

	if _, err := f.svc.Create(context.Background(), ports.CreateProductInput{
		Name:       "phone",
		CategoryID: f.category.ID,
	}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected InvalidInput for missing price, got %v", err)
	}

	if _, err := f.svc.Create(context.Background(), ports.CreateProductInput{
		Name:       "phone",
		Price:      floatPtr(-5),
		CategoryID: f.category.ID,
	}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected InvalidInput for negative price, got %v", err)
	}

	if f.products.inserts != 0 {
		t.Fatalf("expected no writes, got %d inserts", f.products.inserts)
	}
}

func TestProductService_Create_NegativeStock(t *testing.T) {
	f := newProductFixture()

	_, err := f.svc.Create(context.Background(), ports.CreateProductInput{
		Name:       "phone",
		Price:      floatPtr(10),
		Stock:      intPtr(-1),
		CategoryID: f.category.ID,
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestProductService_Create_CategoryChecks(t *testing.T) {
	f := newProductFixture()

	if _, err := f.svc.Create(context.Background(), ports.CreateProductInput{
		Name:  "phone",
		Price: floatPtr(10),
	}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected InvalidInput for missing category, got %v", err)
	}

	if _, err := f.svc.Create(context.Background(), ports.CreateProductInput{
		Name:       "phone",
		Price:      floatPtr(10),
		CategoryID: "not-an-object-id",
	}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected InvalidInput for malformed category id, got %v", err)
	}

	// Well-formed but nonexistent: a reference problem, not an input problem.
	if _, err := f.svc.Create(context.Background(), ports.CreateProductInput{
		Name:       "phone",
		Price:      floatPtr(10),
		CategoryID: primitive.NewObjectID().Hex(),
	}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected NotFound for absent category, got %v", err)
	}

	if f.products.inserts != 0 {
		t.Fatalf("expected no writes, got %d inserts", f.products.inserts)
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestProductService_Update_KeepingOwnNameIsNotAConflict(t *testing.T) {
	f := newProductFixture()
	seeded := f.products.seed("laptop", 500, f.category.ID)

	view, err := f.svc.Update(context.Background(), seeded.ID, ports.UpdateProductInput{
		Name:        "laptop",
		Description: "refreshed model",
		Price:       floatPtr(600),
		Stock:       intPtr(3),
		CategoryID:  f.category.ID,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if view.Price != 600 || view.Stock != 3 {
		t.Fatalf("unexpected updated document: %+v", view)
	}
}

func TestProductService_Update_NameConflictWithOtherProduct(t *testing.T) {
	f := newProductFixture()
	f.products.seed("tablet", 300, f.category.ID)
	seeded := f.products.seed("laptop", 500, f.category.ID)

	_, err := f.svc.Update(context.Background(), seeded.ID, ports.UpdateProductInput{
		Name:        " TABLET ",
		Description: "x",
		Price:       floatPtr(1),
		Stock:       intPtr(1),
		CategoryID:  f.category.ID,
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected Conflict, got %v", err)
	}
}

func TestProductService_Update_InvalidPriceWritesNothing(t *testing.T) {
	f := newProductFixture()
	seeded := f.products.seed("laptop", 500, f.category.ID)

	_, err := f.svc.Update(context.Background(), seeded.ID, ports.UpdateProductInput{
		Name:        "laptop",
		Description: "x",
		Price:       floatPtr(-5),
		Stock:       intPtr(1),
		CategoryID:  f.category.ID,
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
	if f.products.updates != 0 {
		t.Fatalf("expected no persistence, got %d updates", f.products.updates)
	}
}

func TestProductService_Update_RequiresEveryField(t *testing.T) {
	f := newProductFixture()
	seeded := f.products.seed("laptop", 500, f.category.ID)

	base := ports.UpdateProductInput{
		Name:        "laptop",
		Description: "x",
		Price:       floatPtr(1),
		Stock:       intPtr(1),
		CategoryID:  f.category.ID,
	}

	missingDescription := base
	missingDescription.Description = " "
	if _, err := f.svc.Update(context.Background(), seeded.ID, missingDescription); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected InvalidInput for missing description, got %v", err)
	}

	missingStock := base
	missingStock.Stock = nil
	if _, err := f.svc.Update(context.Background(), seeded.ID, missingStock); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected InvalidInput for missing stock, got %v", err)
	}

	if _, err := f.svc.Update(context.Background(), primitive.NewObjectID().Hex(), base); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected NotFound for absent product, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Reads and filters
// ---------------------------------------------------------------------------

func TestProductService_GetByID_AbsentIsNotAnError(t *testing.T) {
	f := newProductFixture()

	view, err := f.svc.GetByID(context.Background(), primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if view != nil {
		t.Fatalf("expected nil view, got %+v", view)
	}

	if _, err := f.svc.GetByID(context.Background(), "bad"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected InvalidInput for malformed id, got %v", err)
	}
}

func TestProductService_List_ExpandsDanglingCategoryToNil(t *testing.T) {
	f := newProductFixture()
	f.products.seed("laptop", 500, f.category.ID)
	f.products.seed("orphan", 10, primitive.NewObjectID().Hex())

	views, err := f.svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 products, got %d", len(views))
	}
	for _, v := range views {
		switch v.Name {
		case "laptop":
			if v.Category == nil || v.Category.Name != "electronics" {
				t.Fatalf("expected expanded category on laptop, got %+v", v.Category)
			}
		case "orphan":
			if v.Category != nil {
				t.Fatalf("expected nil category on dangling reference, got %+v", v.Category)
			}
		}
	}
}

func TestProductService_FilterByCategoryID(t *testing.T) {
	f := newProductFixture()
	f.products.seed("laptop", 500, f.category.ID)
	f.products.seed("stray", 10, primitive.NewObjectID().Hex())

	views, err := f.svc.FilterByCategoryID(context.Background(), f.category.ID)
	if err != nil {
		t.Fatalf("FilterByCategoryID returned error: %v", err)
	}
	if len(views) != 1 || views[0].Name != "laptop" {
		t.Fatalf("expected only laptop, got %+v", views)
	}

	if _, err := f.svc.FilterByCategoryID(context.Background(), primitive.NewObjectID().Hex()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected NotFound for absent category, got %v", err)
	}
}

func TestProductService_FilterByCategoryName(t *testing.T) {
	f := newProductFixture()
	f.products.seed("laptop", 500, f.category.ID)

	views, err := f.svc.FilterByCategoryName(context.Background(), " ELECTRONICS ")
	if err != nil {
		t.Fatalf("FilterByCategoryName returned error: %v", err)
	}
	if len(views) != 1 || views[0].Name != "laptop" {
		t.Fatalf("expected only laptop, got %+v", views)
	}

	if _, err := f.svc.FilterByCategoryName(context.Background(), "nonexistent"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if _, err := f.svc.FilterByCategoryName(context.Background(), "  "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected InvalidInput for blank name, got %v", err)
	}
}

func TestProductService_FilterByPriceRange(t *testing.T) {
	f := newProductFixture()
	f.products.seed("cheap", 5, f.category.ID)
	f.products.seed("mid", 50, f.category.ID)
	f.products.seed("expensive", 500, f.category.ID)

	views, err := f.svc.FilterByPriceRange(context.Background(), 0, 100)
	if err != nil {
		t.Fatalf("FilterByPriceRange returned error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 products, got %d", len(views))
	}
	if views[0].Price > views[1].Price {
		t.Fatalf("expected ascending order, got %v then %v", views[0].Price, views[1].Price)
	}
}

func TestProductService_FilterByPriceRange_InvalidBounds(t *testing.T) {
	f := newProductFixture()

	if _, err := f.svc.FilterByPriceRange(context.Background(), 10, 5); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected InvalidInput for min > max, got %v", err)
	}
	if _, err := f.svc.FilterByPriceRange(context.Background(), -1, 5); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected InvalidInput for negative bound, got %v", err)
	}
}

func TestProductService_SearchByName(t *testing.T) {
	f := newProductFixture()
	f.products.seed("gaming laptop", 900, f.category.ID)
	f.products.seed("desk", 100, f.category.ID)

	views, err := f.svc.SearchByName(context.Background(), " LAPTOP ")
	if err != nil {
		t.Fatalf("SearchByName returned error: %v", err)
	}
	if len(views) != 1 || views[0].Name != "gaming laptop" {
		t.Fatalf("expected substring match, got %+v", views)
	}

	if _, err := f.svc.SearchByName(context.Background(), "  "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected InvalidInput for blank term, got %v", err)
	}
}

func TestProductService_Delete(t *testing.T) {
	f := newProductFixture()
	seeded := f.products.seed("laptop", 500, f.category.ID)

	deleted, err := f.svc.Delete(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted.ID != seeded.ID {
		t.Fatalf("expected removed document, got %+v", deleted)
	}

	if _, err := f.svc.Delete(context.Background(), seeded.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected NotFound on second delete, got %v", err)
	}
}
