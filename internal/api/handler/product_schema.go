package handler

import "time"

type createProductRequest struct {
	Name  string   `json:"name"  validate:"required"`
	Price *float64 `json:"price" validate:"required,gte=0"`
	Image string   `json:"image"`
	Type  string   `json:"type"`
}

type updateProductRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price" validate:"omitempty,gte=0"`
	Image *string  `json:"image"`
	Type  *string  `json:"type"`
}

type productResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image,omitempty"`
	Type      string    `json:"type,omitempty"`
	DateEntry time.Time `json:"dateEntry"`
}
