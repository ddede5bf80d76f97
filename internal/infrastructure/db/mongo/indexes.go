package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes for every catalog collection. Called once
// at startup, after the connection is verified.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := NewCategoryRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := NewProductRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return NewAuthRepository(db).EnsureIndexes(ctx)
}
