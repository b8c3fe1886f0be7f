package ports

import (
	"context"

	"github.com/burgerqueen/pos-api/internal/core/domain"
)

// ProductRepository persists the catalog. Unknown or malformed ids return
// domain.ErrProductNotFound.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, page domain.Page) ([]*domain.Product, int64, error)
}

// ProductListResult is one page of products.
type ProductListResult struct {
	Items    []*domain.Product
	Total    int64
	Page     int
	Limit    int
	LastPage int
}

// ProductService exposes catalog operations.
type ProductService interface {
	List(ctx context.Context, page domain.Page) (*ProductListResult, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, claims domain.Claims, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, claims domain.Claims, id string, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, claims domain.Claims, id string) (*domain.Product, error)
}
