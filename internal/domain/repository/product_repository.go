package repository

import (
	"context"

	"github.com/bompreco/pdv-api/internal/domain/entity"
	"github.com/bompreco/pdv-api/internal/domain/enum"
	"github.com/bompreco/pdv-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	// GetByID returns nil when the product does not exist.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	// GetStock reads the current stock quantity of a product.
	GetStock(ctx context.Context, id string) (float64, error)
	// UpdateStock writes an absolute stock quantity. Together with GetStock
	// this forms the read-decrement-write sequence used by finalization;
	// the pair is not atomic.
	UpdateStock(ctx context.Context, id string, quantity float64) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination  *pagination.PaginationParams
	Search      string
	SaleType    *enum.SaleType
	OnlyInStock bool
	// IncludeInactive lists inactive products too; the default is active only.
	IncludeInactive bool
}
