package domain

import "time"

// Product is a catalog entry sold at the point of sale.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image,omitempty"`
	Type      string    `json:"type,omitempty"`
	DateEntry time.Time `json:"dateEntry"`
}

// ProductPatch is a partial product update. Nil fields were absent.
type ProductPatch struct {
	Name  *string
	Price *float64
	Image *string
	Type  *string
}

// IsEmpty reports whether the patch carries no fields.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Image == nil && p.Type == nil
}
