package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lumiere-cosmetics/storefront-api/internal/core/domain"
	"github.com/lumiere-cosmetics/storefront-api/internal/core/ports"
)

// ProductService implements the catalog use cases: validation of incoming
// product data and orchestration of the product repository.
type ProductService struct {
	repo ports.ProductRepository
	log  zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, log: log}
}

// List returns every product, most recently created first.
func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates the required fields and the price invariant before
// persisting. Description defaults to empty.
func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	if input.Name == "" || input.Category == "" || input.Image == "" ||
		input.SinglePrice <= 0 || input.BulkPrice <= 0 {
		return nil, domain.ErrMissingFields
	}
	if err := domain.ValidatePrices(input.SinglePrice, input.BulkPrice); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        input.Name,
		SinglePrice: input.SinglePrice,
		BulkPrice:   input.BulkPrice,
		Category:    input.Category,
		Description: input.Description,
		Image:       input.Image,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, product)
	if err != nil {
		s.log.Error().Err(err).Str("name", input.Name).Msg("failed to create product")
		return nil, err
	}

	s.log.Info().Str("id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

// Update applies a partial update. The price invariant is re-checked against
// the effective pair (stored value merged with any newly supplied one); a
// violating update is rejected in full and nothing is written.
func (s *ProductService) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	singlePrice := existing.SinglePrice
	if input.SinglePrice != nil {
		singlePrice = *input.SinglePrice
	}
	bulkPrice := existing.BulkPrice
	if input.BulkPrice != nil {
		bulkPrice = *input.BulkPrice
	}
	if input.SinglePrice != nil || input.BulkPrice != nil {
		if singlePrice <= 0 || bulkPrice <= 0 {
			return nil, domain.ErrMissingFields
		}
		if err := domain.ValidatePrices(singlePrice, bulkPrice); err != nil {
			return nil, err
		}
	}
	if (input.Name != nil && *input.Name == "") ||
		(input.Category != nil && *input.Category == "") ||
		(input.Image != nil && *input.Image == "") {
		return nil, domain.ErrMissingFields
	}

	updated, err := s.repo.Update(ctx, id, ports.ProductUpdate{
		Name:        input.Name,
		SinglePrice: input.SinglePrice,
		BulkPrice:   input.BulkPrice,
		Category:    input.Category,
		Description: input.Description,
		Image:       input.Image,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("id", updated.ID).Msg("product updated")
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("product deleted")
	return nil
}
