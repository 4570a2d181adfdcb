package entity

import (
	"time"

	"github.com/bompreco/pdv-api/internal/domain/enum"
)

// Product represents a product in the store catalogue.
type Product struct {
	ID            string        `json:"id,omitempty"`
	Name          string        `json:"name"`
	StockQuantity float64       `json:"stock_quantity"`
	UnitPrice     float64       `json:"unit_price"`
	WeightPrice   float64       `json:"weight_price"`
	SaleType      enum.SaleType `json:"sale_type"`
	Barcode       string        `json:"barcode,omitempty"`
	Active        bool          `json:"active"`
	CreatedAt     time.Time     `json:"created_at,omitempty"`
	UpdatedAt     time.Time     `json:"updated_at,omitempty"`
}

// Price returns the effective price for the product's sale type:
// weight-based products are priced per kilogram.
func (p *Product) Price() float64 {
	if p.SaleType == enum.SaleTypeWeight {
		return p.WeightPrice
	}
	return p.UnitPrice
}
