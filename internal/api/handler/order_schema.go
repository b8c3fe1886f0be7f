package handler

import "time"

type orderLineRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Qty       int    `json:"qty"       validate:"gt=0"`
}

type createOrderRequest struct {
	UserID   string             `json:"userId"   validate:"required"`
	Client   string             `json:"client"`
	Products []orderLineRequest `json:"products" validate:"required,min=1,dive"`
}

// updateOrderRequest keeps a nil Products apart from an explicit empty list.
type updateOrderRequest struct {
	UserID   *string            `json:"userId"`
	Client   *string            `json:"client"`
	Products []orderLineRequest `json:"products" validate:"omitempty,dive"`
	Status   *string            `json:"status"`
}

type orderItemResponse struct {
	Qty     int             `json:"qty"`
	Product productResponse `json:"product"`
}

type orderResponse struct {
	ID            string              `json:"id"`
	UserID        string              `json:"userId"`
	Client        string              `json:"client"`
	Products      []orderItemResponse `json:"products"`
	Status        string              `json:"status"`
	DateEntry     time.Time           `json:"dateEntry"`
	DateProcessed *time.Time          `json:"dateProcessed,omitempty"`
}
