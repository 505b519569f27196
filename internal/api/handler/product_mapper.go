package handler

import (
	"github.com/lumiere-cosmetics/storefront-api/internal/core/domain"
	"github.com/lumiere-cosmetics/storefront-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createProductRequest) ports.CreateProductInput {
	return ports.CreateProductInput{
		Name:        req.Name,
		SinglePrice: req.SinglePrice,
		BulkPrice:   req.BulkPrice,
		Category:    req.Category,
		Description: req.Description,
		Image:       req.Image,
	}
}

func toUpdateInput(req updateProductRequest) ports.UpdateProductInput {
	return ports.UpdateProductInput{
		Name:        req.Name,
		SinglePrice: req.SinglePrice,
		BulkPrice:   req.BulkPrice,
		Category:    req.Category,
		Description: req.Description,
		Image:       req.Image,
	}
}

// --- Domain → HTTP response ---

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		SinglePrice: p.SinglePrice,
		BulkPrice:   p.BulkPrice,
		Category:    p.Category,
		Description: p.Description,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt.UTC(),
	}
}

func toListResponse(products []*domain.Product) listProductsResponse {
	items := make([]productResponse, len(products))
	for i, p := range products {
		items[i] = toProductResponse(p)
	}
	return listProductsResponse{Success: true, Data: items, Count: len(items)}
}
