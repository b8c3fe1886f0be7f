package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/burgerqueen/pos-api/internal/core/domain"
	"github.com/burgerqueen/pos-api/internal/core/policy"
	"github.com/burgerqueen/pos-api/internal/core/ports"
)

const defaultIdempotencyTTL = 24 * time.Hour

type OrderService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	idem     ports.IdempotencyStore
	idemTTL  time.Duration
	log      zerolog.Logger
}

// NewOrderService wires the order use cases. idem may be nil, in which case
// Idempotency-Key headers are ignored.
func NewOrderService(
	orders ports.OrderRepository,
	products ports.ProductRepository,
	idem ports.IdempotencyStore,
	idemTTL time.Duration,
	log zerolog.Logger,
) *OrderService {
	if idemTTL <= 0 {
		idemTTL = defaultIdempotencyTTL
	}
	return &OrderService{
		orders:   orders,
		products: products,
		idem:     idem,
		idemTTL:  idemTTL,
		log:      log,
	}
}

func (s *OrderService) List(ctx context.Context, claims domain.Claims, page domain.Page) (*ports.OrderListResult, error) {
	if err := policy.ReadOrder(claims); err != nil {
		return nil, err
	}

	items, total, err := s.orders.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return &ports.OrderListResult{
		Items:    items,
		Total:    total,
		Page:     page.Number,
		Limit:    page.Limit,
		LastPage: page.LastPage(total),
	}, nil
}

func (s *OrderService) Get(ctx context.Context, claims domain.Claims, id string) (*domain.Order, error) {
	if err := policy.ReadOrder(claims); err != nil {
		return nil, err
	}
	return s.orders.FindByID(ctx, id)
}

// Create places a new pending order. When idempotencyKey was already used,
// the order it produced is returned without side effects.
func (s *OrderService) Create(ctx context.Context, claims domain.Claims, in domain.NewOrder, idempotencyKey string) (*ports.OrderResult, error) {
	if err := policy.CreateOrder(claims); err != nil {
		return nil, err
	}

	if existing := s.replay(ctx, idempotencyKey); existing != nil {
		return &ports.OrderResult{Order: existing, AlreadyExisted: true}, nil
	}

	if in.UserID == "" || len(in.Products) == 0 {
		return nil, domain.ErrMissingOrderFields
	}
	items, err := s.resolveLines(ctx, in.Products)
	if err != nil {
		return nil, err
	}

	created, err := s.orders.Create(ctx, &domain.Order{
		UserID:    in.UserID,
		Client:    in.Client,
		Products:  items,
		Status:    domain.OrderPending,
		DateEntry: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if idempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, idempotencyKey, created.ID, s.idemTTL); err != nil {
			s.log.Warn().Err(err).Str("idempotency_key", idempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.log.Info().Str("order_id", created.ID).Str("by", claims.UserID).Int("lines", len(items)).Msg("order created")
	return &ports.OrderResult{Order: created}, nil
}

// Update edits an order. Admins only. Moving to delivered stamps
// dateProcessed.
func (s *OrderService) Update(ctx context.Context, claims domain.Claims, id string, patch domain.OrderPatch) (*domain.Order, error) {
	if err := policy.UpdateOrder(claims); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, domain.ErrEmptyUpdate
	}

	update := domain.OrderUpdate{UserID: patch.UserID, Client: patch.Client}
	if patch.Status != nil {
		status, err := domain.ParseOrderStatus(*patch.Status)
		if err != nil {
			return nil, err
		}
		update.Status = &status
		if status == domain.OrderDelivered {
			now := time.Now().UTC()
			update.DateProcessed = &now
		}
	}
	if patch.Products != nil {
		if len(patch.Products) == 0 {
			return nil, domain.ErrEmptyUpdate
		}
		items, err := s.resolveLines(ctx, patch.Products)
		if err != nil {
			return nil, err
		}
		update.Products = items
	}

	updated, err := s.orders.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("order_id", updated.ID).Str("status", string(updated.Status)).Msg("order updated")
	return updated, nil
}

func (s *OrderService) Delete(ctx context.Context, claims domain.Claims, id string) (*domain.Order, error) {
	if err := policy.DeleteOrder(claims); err != nil {
		return nil, err
	}
	return s.orders.Delete(ctx, id)
}

// replay returns the order previously created under key, if any. Store
// failures are logged and treated as a miss.
func (s *OrderService) replay(ctx context.Context, key string) *domain.Order {
	if key == "" || s.idem == nil {
		return nil
	}

	orderID, err := s.idem.Lookup(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if orderID == "" {
		return nil
	}

	existing, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		s.log.Warn().Err(err).Str("idempotency_key", key).Str("order_id", orderID).Msg("remembered order unavailable")
		return nil
	}

	s.log.Info().Str("idempotency_key", key).Str("order_id", orderID).Msg("idempotent replay")
	return existing
}

// resolveLines snapshots the catalog entry behind every order line.
func (s *OrderService) resolveLines(ctx context.Context, lines []domain.OrderLine) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		if line.Qty <= 0 || line.ProductID == "" {
			return nil, domain.ErrMissingOrderFields
		}
		p, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return nil, domain.ErrUnknownProduct
			}
			return nil, fmt.Errorf("resolve product %s: %w", line.ProductID, err)
		}
		items = append(items, domain.OrderItem{Qty: line.Qty, Product: *p})
	}
	return items, nil
}
