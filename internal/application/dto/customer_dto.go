package dto

import "time"

// CreateCustomerRequest body para POST /api/v1/customers.
type CreateCustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID           int       `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name,omitempty"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone"` // null si el CRM no devolvió teléfonos
	RegisteredAt time.Time `json:"registered_at"`
}

// CustomerFilter filtros de GET /api/v1/customers.
type CustomerFilter struct {
	Name           string `query:"name"`
	Email          string `query:"email"`
	RegisteredFrom string `query:"registered_from"` // YYYY-MM-DD
	RegisteredTo   string `query:"registered_to"`   // YYYY-MM-DD
	Page           int    `query:"page"`
	Limit          int    `query:"limit"`
}
