package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/catalogo/product-catalog-api/internal/core/domain"
)

const collectionProducts = "products"

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

type productDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Stock       int                `bson:"stock"`
	CategoryID  string             `bson:"category_id"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *productDoc) toDomain() *domain.Product {
	return &domain.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Stock:       d.Stock,
		CategoryID:  d.CategoryID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func fromDomainProduct(p *domain.Product) productDoc {
	return productDoc{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *ProductRepository) Insert(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, fromDomainProduct(p))
	if err != nil {
		return nil, err
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	return r.findMany(ctx, bson.M{}, nil)
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByName matches the normalized name case-insensitively. A non-empty
// excludeID leaves out the document under update so a record never conflicts
// with itself.
func (r *ProductRepository) FindByName(ctx context.Context, name string, excludeID string) (*domain.Product, error) {
	filter := nameFilter(name)
	if excludeID != "" {
		if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
			filter["_id"] = bson.M{"$ne": oid}
		}
	}
	return r.findOne(ctx, filter)
}

func (r *ProductRepository) FindByCategoryID(ctx context.Context, categoryID string) ([]*domain.Product, error) {
	return r.findMany(ctx, bson.M{"category_id": categoryID}, nil)
}

// FindByPriceRange queries min <= price <= max, ascending by price.
func (r *ProductRepository) FindByPriceRange(ctx context.Context, min, max float64) ([]*domain.Product, error) {
	filter := bson.M{"price": bson.M{"$gte": min, "$lte": max}}
	opts := options.Find().SetSort(bson.D{{Key: "price", Value: 1}})
	return r.findMany(ctx, filter, opts)
}

// SearchByName matches a case-insensitive substring of the stored name.
func (r *ProductRepository) SearchByName(ctx context.Context, term string) ([]*domain.Product, error) {
	filter := bson.M{"name": primitive.Regex{
		Pattern: regexp.QuoteMeta(term),
		Options: "i",
	}}
	return r.findMany(ctx, filter, nil)
}

func (r *ProductRepository) UpdateByID(ctx context.Context, id string, p *domain.Product) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"stock":       p.Stock,
		"category_id": p.CategoryID,
		"updated_at":  p.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc productDoc
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ProductRepository) DeleteByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc productDoc
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the indexes backing lookups and the price range sort.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ProductRepository) findOne(ctx context.Context, filter bson.M) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc productDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ProductRepository) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = r.col.Find(ctx, filter, opts)
	} else {
		cur, err = r.col.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var products []*domain.Product
	for cur.Next(ctx) {
		var doc productDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		products = append(products, doc.toDomain())
	}
	return products, cur.Err()
}
