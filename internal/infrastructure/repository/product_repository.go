package repository

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bompreco/pdv-api/internal/domain/entity"
	domainRepo "github.com/bompreco/pdv-api/internal/domain/repository"
	"github.com/bompreco/pdv-api/internal/infrastructure/supabase"
	"github.com/bompreco/pdv-api/pkg/apperror"
	"github.com/bompreco/pdv-api/pkg/pagination"
)

type productRepository struct {
	client *supabase.Client
}

// NewProductRepository creates a PostgREST-backed product repository
func NewProductRepository(client *supabase.Client) domainRepo.ProductRepository {
	return &productRepository{client: client}
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := url.Values{}
	query.Set("id", "eq."+id)
	query.Set("limit", "1")

	var products []entity.Product
	if err := r.client.Select(ctx, "products", query, &products); err != nil {
		return nil, apperror.NewPersistenceFailure("Falha ao consultar o produto", err)
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

func (r *productRepository) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	query := url.Values{}
	query.Set("barcode", "eq."+barcode)
	query.Set("active", "is.true")
	query.Set("limit", "1")

	var products []entity.Product
	if err := r.client.Select(ctx, "products", query, &products); err != nil {
		return nil, apperror.NewPersistenceFailure("Falha ao consultar produto por codigo de barras", err)
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	query := url.Values{}
	query.Set("order", "name.asc")

	pag := pagination.DefaultPagination()
	if params != nil {
		if params.Pagination != nil {
			pag = params.Pagination
		}
		if !params.IncludeInactive {
			query.Set("active", "is.true")
		}
		if params.OnlyInStock {
			query.Set("stock_quantity", "gt.0")
		}
		if params.SaleType != nil {
			query.Set("sale_type", "eq."+params.SaleType.String())
		}
		if params.Search != "" {
			pattern := "*" + params.Search + "*"
			query.Set("or", fmt.Sprintf("(name.ilike.%s,barcode.ilike.%s)", pattern, pattern))
		}
	} else {
		query.Set("active", "is.true")
	}
	pag.Validate()
	query.Set("limit", strconv.Itoa(pag.PerPage))
	query.Set("offset", strconv.Itoa(pag.Offset()))

	var products []entity.Product
	total, err := r.client.SelectWithCount(ctx, "products", query, &products)
	if err != nil {
		return nil, 0, apperror.NewPersistenceFailure("Falha ao listar produtos", err)
	}
	return products, total, nil
}

func (r *productRepository) GetStock(ctx context.Context, id string) (float64, error) {
	query := url.Values{}
	query.Set("select", "stock_quantity")
	query.Set("id", "eq."+id)
	query.Set("limit", "1")

	var rows []struct {
		StockQuantity float64 `json:"stock_quantity"`
	}
	if err := r.client.Select(ctx, "products", query, &rows); err != nil {
		return 0, apperror.NewPersistenceFailure("Falha ao consultar estoque do produto", err)
	}
	if len(rows) == 0 {
		return 0, apperror.NewNotFoundError("Produto")
	}
	return rows[0].StockQuantity, nil
}

func (r *productRepository) UpdateStock(ctx context.Context, id string, quantity float64) error {
	filters := url.Values{}
	filters.Set("id", "eq."+id)

	payload := map[string]float64{"stock_quantity": quantity}
	if err := r.client.Update(ctx, "products", filters, payload); err != nil {
		return apperror.NewPersistenceFailure("Falha ao atualizar estoque do produto", err)
	}
	return nil
}
