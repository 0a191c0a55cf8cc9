package models

import "time"

// Database backends
const (
	DatabaseMongo    = "mongo"
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

// Request types

// Pointer fields distinguish "absent" from zero values so validation can
// report missing fields.
type CreatePokemonRequest struct {
	No   *int    `json:"no"`
	Name *string `json:"name"`
}

// Same shape as CreatePokemonRequest with every field optional.
type UpdatePokemonRequest struct {
	No   *int    `json:"no,omitempty"`
	Name *string `json:"name,omitempty"`
}

// Raw limit/offset query values; empty means absent.
type PaginationQuery struct {
	Limit  string
	Offset string
}

// Response types

type SeedResponse struct {
	Message  string `json:"message"`
	Inserted int    `json:"inserted"`
}

// Domain types

type Pokemon struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	No        int       `json:"no"`
	CreatedAt time.Time `json:"createdAt"`
}

// Error response

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}
