package service

import (
	"context"
	"errors"
	"testing"

	"github.com/burgerqueen/pos-api/internal/core/domain"
)

var (
	waiter  = domain.Claims{UserID: "u1", Email: "w@x.com", Role: domain.RoleStandard}
	manager = domain.Claims{UserID: "u0", Email: "m@x.com", Role: domain.RoleAdmin}
)

func newOrderFixture() (*OrderService, *stubOrderRepo, *stubIdempotency, *domain.Product) {
	products := newStubProductRepo()
	burger, _ := products.Create(context.Background(), &domain.Product{Name: "Burger", Price: 10})
	orders := newStubOrderRepo()
	idem := newStubIdempotency()
	return NewOrderService(orders, products, idem, 0, discardLogger), orders, idem, burger
}

func TestOrderService_Create(t *testing.T) {
	svc, orders, _, burger := newOrderFixture()

	res, err := svc.Create(context.Background(), waiter, domain.NewOrder{
		UserID:   "u1",
		Client:   "Ana",
		Products: []domain.OrderLine{{ProductID: burger.ID, Qty: 2}},
	}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	o := res.Order
	if res.AlreadyExisted || o.Status != domain.OrderPending || o.DateEntry.IsZero() {
		t.Fatalf("unexpected order: %+v", res)
	}
	if len(o.Products) != 1 || o.Products[0].Qty != 2 || o.Products[0].Product.Name != "Burger" {
		t.Fatalf("product snapshot missing: %+v", o.Products)
	}
	if len(orders.items) != 1 {
		t.Fatalf("expected one stored order")
	}
}

func TestOrderService_Create_Validation(t *testing.T) {
	svc, orders, _, burger := newOrderFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		in   domain.NewOrder
		want error
	}{
		{"no user", domain.NewOrder{Products: []domain.OrderLine{{ProductID: burger.ID, Qty: 1}}}, domain.ErrMissingOrderFields},
		{"no products", domain.NewOrder{UserID: "u1"}, domain.ErrMissingOrderFields},
		{"zero qty", domain.NewOrder{UserID: "u1", Products: []domain.OrderLine{{ProductID: burger.ID}}}, domain.ErrMissingOrderFields},
		{"unknown product", domain.NewOrder{UserID: "u1", Products: []domain.OrderLine{{ProductID: "missing", Qty: 1}}}, domain.ErrUnknownProduct},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, waiter, tc.in, ""); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
	if len(orders.items) != 0 {
		t.Fatalf("invalid orders must not be stored")
	}
}

func TestOrderService_Create_IdempotentReplay(t *testing.T) {
	svc, orders, idem, burger := newOrderFixture()
	ctx := context.Background()
	in := domain.NewOrder{UserID: "u1", Products: []domain.OrderLine{{ProductID: burger.ID, Qty: 1}}}

	first, err := svc.Create(ctx, waiter, in, "key-1")
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if idem.keys["key-1"] != first.Order.ID {
		t.Fatalf("idempotency key not remembered")
	}

	second, err := svc.Create(ctx, waiter, in, "key-1")
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !second.AlreadyExisted || second.Order.ID != first.Order.ID {
		t.Fatalf("expected replay of %s, got %+v", first.Order.ID, second)
	}
	if len(orders.items) != 1 {
		t.Fatalf("replay must not create another order, have %d", len(orders.items))
	}
}

func TestOrderService_Create_IdempotencyStoreDown(t *testing.T) {
	svc, orders, idem, burger := newOrderFixture()
	idem.lookupErr = errors.New("redis down")

	res, err := svc.Create(context.Background(), waiter, domain.NewOrder{
		UserID:   "u1",
		Products: []domain.OrderLine{{ProductID: burger.ID, Qty: 1}},
	}, "key-2")
	if err != nil || res.AlreadyExisted {
		t.Fatalf("expected a fresh order, got %+v, %v", res, err)
	}
	if len(orders.items) != 1 {
		t.Fatalf("expected order to be created")
	}
}

func TestOrderService_Update(t *testing.T) {
	svc, _, _, burger := newOrderFixture()
	ctx := context.Background()
	res, _ := svc.Create(ctx, waiter, domain.NewOrder{UserID: "u1", Products: []domain.OrderLine{{ProductID: burger.ID, Qty: 1}}}, "")
	id := res.Order.ID

	if _, err := svc.Update(ctx, waiter, id, domain.OrderPatch{Status: strPtr("delivered")}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for non-admin, got %v", err)
	}
	if _, err := svc.Update(ctx, manager, id, domain.OrderPatch{}); !errors.Is(err, domain.ErrEmptyUpdate) {
		t.Fatalf("expected empty update, got %v", err)
	}
	if _, err := svc.Update(ctx, manager, id, domain.OrderPatch{Status: strPtr("ready")}); !errors.Is(err, domain.ErrInvalidOrderStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}

	preparing, err := svc.Update(ctx, manager, id, domain.OrderPatch{Status: strPtr("preparing")})
	if err != nil || preparing.Status != domain.OrderPreparing || preparing.DateProcessed != nil {
		t.Fatalf("preparing: %+v, %v", preparing, err)
	}

	delivered, err := svc.Update(ctx, manager, id, domain.OrderPatch{Status: strPtr("delivered"), Client: strPtr("Luis")})
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if delivered.Status != domain.OrderDelivered || delivered.DateProcessed == nil || delivered.Client != "Luis" {
		t.Fatalf("unexpected delivered order: %+v", delivered)
	}

	if _, err := svc.Update(ctx, manager, "missing", domain.OrderPatch{Status: strPtr("pending")}); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOrderService_ReadAndDelete(t *testing.T) {
	svc, orders, _, burger := newOrderFixture()
	ctx := context.Background()
	res, _ := svc.Create(ctx, manager, domain.NewOrder{UserID: "u0", Products: []domain.OrderLine{{ProductID: burger.ID, Qty: 3}}}, "")

	if _, err := svc.Get(ctx, waiter, res.Order.ID); err != nil {
		t.Fatalf("any authenticated caller may read orders: %v", err)
	}
	list, err := svc.List(ctx, waiter, domain.Page{Number: 1, Limit: 10})
	if err != nil || list.Total != 1 {
		t.Fatalf("list: %+v, %v", list, err)
	}

	if _, err := svc.Delete(ctx, waiter, res.Order.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden delete, got %v", err)
	}
	if _, err := svc.Delete(ctx, manager, res.Order.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if len(orders.items) != 0 {
		t.Fatalf("order not deleted")
	}
}
