package domain

import (
	"strings"
	"time"
)

// Category groups products. Names are stored in normalized form and are unique
// across all categories, compared case-insensitively.
type Category struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// NormalizeName returns the canonical form of a category or product name:
// surrounding whitespace removed, lowercased. Uniqueness checks and storage
// always operate on this form.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
