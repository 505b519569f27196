package ports

import (
	"context"

	"github.com/lumiere-cosmetics/storefront-api/internal/core/domain"
)

// ProductUpdate carries a partial update: nil fields are left untouched.
type ProductUpdate struct {
	Name        *string
	SinglePrice *float64
	BulkPrice   *float64
	Category    *string
	Description *string
	Image       *string
}

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	Insert(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// FindAll returns every product, most recently created first.
	FindAll(ctx context.Context) ([]*domain.Product, error)
	// Update applies the non-nil fields of upd and returns the updated record.
	Update(ctx context.Context, id string, upd ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
