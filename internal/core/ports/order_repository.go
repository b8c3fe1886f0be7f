package ports

import (
	"context"
	"time"

	"github.com/burgerqueen/pos-api/internal/core/domain"
)

// OrderRepository persists orders. Unknown or malformed ids return
// domain.ErrOrderNotFound.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// Update atomically applies update and returns the updated order.
	Update(ctx context.Context, id string, update domain.OrderUpdate) (*domain.Order, error)
	Delete(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, page domain.Page) ([]*domain.Order, int64, error)
}

// IdempotencyStore remembers which order an Idempotency-Key produced.
type IdempotencyStore interface {
	// Lookup returns the order id stored under key, or "" when unseen.
	Lookup(ctx context.Context, key string) (string, error)
	Remember(ctx context.Context, key, orderID string, ttl time.Duration) error
}

// OrderResult is returned by OrderService.Create.
type OrderResult struct {
	Order *domain.Order
	// AlreadyExisted is true when the Idempotency-Key matched an earlier order.
	AlreadyExisted bool
}

// OrderListResult is one page of orders.
type OrderListResult struct {
	Items    []*domain.Order
	Total    int64
	Page     int
	Limit    int
	LastPage int
}

// OrderService exposes order operations.
type OrderService interface {
	List(ctx context.Context, claims domain.Claims, page domain.Page) (*OrderListResult, error)
	Get(ctx context.Context, claims domain.Claims, id string) (*domain.Order, error)
	Create(ctx context.Context, claims domain.Claims, in domain.NewOrder, idempotencyKey string) (*OrderResult, error)
	Update(ctx context.Context, claims domain.Claims, id string, patch domain.OrderPatch) (*domain.Order, error)
	Delete(ctx context.Context, claims domain.Claims, id string) (*domain.Order, error)
}
