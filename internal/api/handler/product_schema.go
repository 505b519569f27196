package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// --- Request types ---

type createProductRequest struct {
	Name        string  `json:"name"        validate:"required"`
	SinglePrice float64 `json:"singlePrice" validate:"required,gt=0"`
	BulkPrice   float64 `json:"bulkPrice"   validate:"required,gt=0"`
	Category    string  `json:"category"    validate:"required"`
	Description string  `json:"description"`
	Image       string  `json:"image"       validate:"required"`
}

// updateProductRequest uses pointer fields so absent and zero-valued fields
// can be told apart: only fields present in the payload are applied.
type updateProductRequest struct {
	Name        *string  `json:"name"`
	SinglePrice *float64 `json:"singlePrice"`
	BulkPrice   *float64 `json:"bulkPrice"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal domain changes.

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SinglePrice float64   `json:"singlePrice"`
	BulkPrice   float64   `json:"bulkPrice"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
}

type listProductsResponse struct {
	Success bool              `json:"success"`
	Data    []productResponse `json:"data"`
	Count   int               `json:"count"`
}

type productEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    productResponse `json:"data"`
}

type deletedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
