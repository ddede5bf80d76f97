package domain

import "time"

// Product is a catalog entry. CategoryID references a Category by id; the
// reference is checked at write time but may dangle afterwards, since deleting
// a category does not cascade.
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Stock       int       `json:"stock" bson:"stock"`
	CategoryID  string    `json:"category_id" bson:"category_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// CategoryRef is the expanded category embedded in product read views.
type CategoryRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProductView is a product with its category reference resolved. Category is
// nil when the referenced category no longer exists.
type ProductView struct {
	Product
	Category *CategoryRef `json:"category"`
}
