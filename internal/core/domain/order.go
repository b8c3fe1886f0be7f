package domain

import "time"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderCanceled   OrderStatus = "canceled"
	OrderPreparing  OrderStatus = "preparing"
	OrderDelivering OrderStatus = "delivering"
	OrderDelivered  OrderStatus = "delivered"
)

// recognizedStatuses lists every state an order update may set. "preparing"
// is accepted alongside the documented four.
var recognizedStatuses = map[OrderStatus]struct{}{
	OrderPending:    {},
	OrderCanceled:   {},
	OrderPreparing:  {},
	OrderDelivering: {},
	OrderDelivered:  {},
}

// ParseOrderStatus validates s against the recognized states.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if _, ok := recognizedStatuses[st]; !ok {
		return "", ErrInvalidOrderStatus
	}
	return st, nil
}

// OrderItem is one line of an order. Product is a snapshot of the catalog
// entry taken when the line was written.
type OrderItem struct {
	Qty     int     `json:"qty"`
	Product Product `json:"product"`
}

// Order is a customer order placed at the point of sale.
type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"userId"`
	Client        string      `json:"client"`
	Products      []OrderItem `json:"products"`
	Status        OrderStatus `json:"status"`
	DateEntry     time.Time   `json:"dateEntry"`
	DateProcessed *time.Time  `json:"dateProcessed,omitempty"`
}

// OrderLine references a catalog product by id.
type OrderLine struct {
	ProductID string
	Qty       int
}

// NewOrder carries the fields of a create-order request.
type NewOrder struct {
	UserID   string
	Client   string
	Products []OrderLine
}

// OrderPatch is a partial order update. Nil fields were absent.
type OrderPatch struct {
	UserID   *string
	Client   *string
	Products []OrderLine
	Status   *string
}

// IsEmpty reports whether the patch carries no fields.
func (p OrderPatch) IsEmpty() bool {
	return p.UserID == nil && p.Client == nil && p.Products == nil && p.Status == nil
}

// OrderUpdate is the persisted form of an OrderPatch.
type OrderUpdate struct {
	UserID        *string
	Client        *string
	Products      []OrderItem
	Status        *OrderStatus
	DateProcessed *time.Time
}
