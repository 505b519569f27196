package ports

import (
	"context"

	"github.com/lumiere-cosmetics/storefront-api/internal/core/domain"
)

// CreateProductInput carries all data needed to create a catalog product.
// Description is optional and defaults to empty.
type CreateProductInput struct {
	Name        string
	SinglePrice float64
	BulkPrice   float64
	Category    string
	Description string
	Image       string
}

// UpdateProductInput carries a partial update: nil fields are absent and the
// stored value is kept. This makes present-vs-absent explicit instead of
// relying on zero values.
type UpdateProductInput struct {
	Name        *string
	SinglePrice *float64
	BulkPrice   *float64
	Category    *string
	Description *string
	Image       *string
}

// ProductService defines the catalog use cases. Reads are public; all
// mutations are reachable only behind the admin guard.
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
