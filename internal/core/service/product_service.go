package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/burgerqueen/pos-api/internal/core/domain"
	"github.com/burgerqueen/pos-api/internal/core/policy"
	"github.com/burgerqueen/pos-api/internal/core/ports"
)

type ProductService struct {
	repo ports.ProductRepository
	log  zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, log: log}
}

func (s *ProductService) List(ctx context.Context, page domain.Page) (*ports.ProductListResult, error) {
	items, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return &ports.ProductListResult{
		Items:    items,
		Total:    total,
		Page:     page.Number,
		Limit:    page.Limit,
		LastPage: page.LastPage(total),
	}, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Create adds a product to the catalog. Admins only; name is required and
// the price may not be negative.
func (s *ProductService) Create(ctx context.Context, claims domain.Claims, p domain.Product) (*domain.Product, error) {
	if err := policy.WriteProduct(claims); err != nil {
		return nil, err
	}
	if p.Name == "" || p.Price < 0 {
		return nil, domain.ErrMissingProductFields
	}

	p.ID = ""
	p.DateEntry = time.Now().UTC()
	created, err := s.repo.Create(ctx, &p)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, claims domain.Claims, id string, patch domain.ProductPatch) (*domain.Product, error) {
	if err := policy.WriteProduct(claims); err != nil {
		return nil, err
	}
	if patch.IsEmpty() || (patch.Name != nil && *patch.Name == "") {
		return nil, domain.ErrEmptyUpdate
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, domain.ErrMissingProductFields
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *ProductService) Delete(ctx context.Context, claims domain.Claims, id string) (*domain.Product, error) {
	if err := policy.WriteProduct(claims); err != nil {
		return nil, err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("product_id", deleted.ID).Msg("product deleted")
	return deleted, nil
}
