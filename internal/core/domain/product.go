package domain

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrMissingFields    = errors.New("name, prices, category, and image are required")
	ErrPriceInvariant   = errors.New("bulk price must be less than single price")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Product is a catalog entry. SinglePrice is the retail unit price,
// BulkPrice the wholesale/case price; BulkPrice < SinglePrice must hold
// after every successful mutation.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SinglePrice float64   `json:"singlePrice"`
	BulkPrice   float64   `json:"bulkPrice"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ValidatePrices reports whether the bulk/single price pair satisfies the
// catalog invariant.
func ValidatePrices(singlePrice, bulkPrice float64) error {
	if bulkPrice >= singlePrice {
		return ErrPriceInvariant
	}
	return nil
}
