package handler

// --- Request types ---
//
// Boundary validation stays structural: bind failures and the fixed role set
// are rejected here, every domain constraint (normalization, uniqueness,
// referential checks, ranges) belongs to the service layer. Price and stock
// bind to pointers so the services can tell "absent" from "zero".

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type productRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Category    string   `json:"category"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=admin user"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// deleteResponse wraps a removed document.
type deleteResponse struct {
	Deleted any `json:"deleted"`
}
