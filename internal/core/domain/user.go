package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether role belongs to the fixed role set.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User is an account in the catalog. The same username may exist once per
// role, so identity is the (username, role) pair. PasswordHash never
// serializes to JSON.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
