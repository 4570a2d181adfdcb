package entity

import (
	"time"

	"github.com/bompreco/pdv-api/internal/domain/enum"
)

// Sale represents a completed checkout. The backing store is the source
// of truth; this process only holds sales transiently while finalizing
// or printing them.
type Sale struct {
	ID            string             `json:"id,omitempty"`
	Number        int64              `json:"number,omitempty"`
	Total         float64            `json:"total"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	Status        enum.SaleStatus    `json:"status"`
	CreatedAt     time.Time          `json:"created_at,omitempty"`
	// Printed transitions false -> true exactly once, set only after a
	// receipt was successfully delivered to a printer.
	Printed bool `json:"printed"`

	// Items is populated by joined reads (PostgREST embedding); it is not
	// a column of the sales collection.
	Items []SaleItem `json:"sale_items,omitempty"`
}

// SaleItem is a line item belonging to exactly one sale.
type SaleItem struct {
	ID        string  `json:"id,omitempty"`
	SaleID    string  `json:"sale_id,omitempty"`
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`

	// Product carries the embedded product columns of a joined read.
	// The field name mirrors the embedded collection name.
	Product *ProductRef `json:"products,omitempty"`
}

// ProductRef is the subset of product columns embedded into sale item reads.
type ProductRef struct {
	Name     string        `json:"name"`
	SaleType enum.SaleType `json:"sale_type,omitempty"`
}

// ProductName returns the referenced product name, or a placeholder when
// the join did not resolve.
func (i *SaleItem) ProductName() string {
	if i.Product != nil && i.Product.Name != "" {
		return i.Product.Name
	}
	return "Item"
}

// Unit returns the measurement unit label for the line.
func (i *SaleItem) Unit() string {
	if i.Product != nil {
		return i.Product.SaleType.Unit()
	}
	return enum.SaleTypeUnit.Unit()
}
