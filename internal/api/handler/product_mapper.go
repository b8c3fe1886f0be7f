package handler

import (
	"github.com/burgerqueen/pos-api/internal/core/domain"
)

func toProduct(req createProductRequest) domain.Product {
	p := domain.Product{
		Name:  req.Name,
		Image: req.Image,
		Type:  req.Type,
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	return p
}

func toProductPatch(req updateProductRequest) domain.ProductPatch {
	return domain.ProductPatch{
		Name:  req.Name,
		Price: req.Price,
		Image: req.Image,
		Type:  req.Type,
	}
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Type:      p.Type,
		DateEntry: p.DateEntry,
	}
}

func toProductResponses(products []*domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(*p))
	}
	return out
}
