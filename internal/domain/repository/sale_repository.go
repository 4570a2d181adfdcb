package repository

import (
	"context"
	"time"

	"github.com/bompreco/pdv-api/internal/domain/entity"
	"github.com/bompreco/pdv-api/internal/domain/enum"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// Create persists the sale header and fills in the store-generated
	// identifier, number and creation timestamp.
	Create(ctx context.Context, sale *entity.Sale) error
	// GetByID retrieves a sale with its items and referenced product names
	// in one joined read. Returns nil when the sale does not exist.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, error)
	// GetPendingPrint fetches up to limit finalized sales whose receipt has
	// not been printed yet, each expanded with its items and product names
	// in one joined read.
	GetPendingPrint(ctx context.Context, limit int) ([]entity.Sale, error)
	// MarkPrinted sets the printed flag of a single sale, keyed by its
	// identifier.
	MarkPrinted(ctx context.Context, id string) error
	// FinalizeAtomic runs the server-side process_sale procedure: sale
	// header, items and stock decrements in one transaction.
	FinalizeAtomic(ctx context.Context, sale *entity.Sale, items []entity.SaleItem) (*entity.Sale, error)
	// ListFinalizedSince returns finalized sales created at or after the
	// given instant, for reporting.
	ListFinalizedSince(ctx context.Context, since time.Time) ([]entity.Sale, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Status    *enum.SaleStatus
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

// SaleItemRepository defines the interface for sale line item operations
type SaleItemRepository interface {
	Create(ctx context.Context, item *entity.SaleItem) error
}
