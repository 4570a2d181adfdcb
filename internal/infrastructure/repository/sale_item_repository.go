package repository

import (
	"context"

	"github.com/bompreco/pdv-api/internal/domain/entity"
	domainRepo "github.com/bompreco/pdv-api/internal/domain/repository"
	"github.com/bompreco/pdv-api/internal/infrastructure/supabase"
	"github.com/bompreco/pdv-api/pkg/apperror"
)

type saleItemRepository struct {
	client *supabase.Client
}

// NewSaleItemRepository creates a PostgREST-backed sale item repository
func NewSaleItemRepository(client *supabase.Client) domainRepo.SaleItemRepository {
	return &saleItemRepository{client: client}
}

type saleItemInsert struct {
	SaleID    string  `json:"sale_id"`
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

func (r *saleItemRepository) Create(ctx context.Context, item *entity.SaleItem) error {
	payload := saleItemInsert{
		SaleID:    item.SaleID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
		Subtotal:  item.Subtotal,
	}

	var created []entity.SaleItem
	if err := r.client.Insert(ctx, "sale_items", payload, &created); err != nil {
		return apperror.NewPersistenceFailure("Falha ao gravar item da venda", err)
	}
	if len(created) > 0 {
		item.ID = created[0].ID
	}
	return nil
}
