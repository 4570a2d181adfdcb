package repository

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/bompreco/pdv-api/internal/domain/entity"
	"github.com/bompreco/pdv-api/internal/domain/enum"
	domainRepo "github.com/bompreco/pdv-api/internal/domain/repository"
	"github.com/bompreco/pdv-api/internal/infrastructure/supabase"
	"github.com/bompreco/pdv-api/pkg/apperror"
)

// saleWithItems expands a sale with its line items and the referenced
// product columns in a single joined read.
const saleWithItems = "*,sale_items(*,products(name,sale_type))"

type saleRepository struct {
	client *supabase.Client
}

// NewSaleRepository creates a PostgREST-backed sale repository
func NewSaleRepository(client *supabase.Client) domainRepo.SaleRepository {
	return &saleRepository{client: client}
}

// saleInsert is the subset of sale columns written at creation time.
// Identifier, number and timestamps are generated by the store.
type saleInsert struct {
	Total         float64            `json:"total"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	Status        enum.SaleStatus    `json:"status"`
	Printed       bool               `json:"printed"`
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	payload := saleInsert{
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
		Status:        sale.Status,
		Printed:       false,
	}

	var created []entity.Sale
	if err := r.client.Insert(ctx, "sales", payload, &created); err != nil {
		return apperror.NewPersistenceFailure("Falha ao gravar a venda no banco de dados", err)
	}
	if len(created) == 0 {
		return apperror.NewPersistenceFailure("Banco de dados nao retornou a venda gravada", nil)
	}

	sale.ID = created[0].ID
	sale.Number = created[0].Number
	sale.CreatedAt = created[0].CreatedAt
	sale.Printed = created[0].Printed
	return nil
}

func (r *saleRepository) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	query := url.Values{}
	query.Set("select", saleWithItems)
	query.Set("id", "eq."+id)
	query.Set("limit", "1")

	var sales []entity.Sale
	if err := r.client.Select(ctx, "sales", query, &sales); err != nil {
		return nil, apperror.NewPersistenceFailure("Falha ao consultar a venda", err)
	}
	if len(sales) == 0 {
		return nil, nil
	}
	return &sales[0], nil
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, error) {
	query := url.Values{}
	query.Set("select", saleWithItems)
	query.Set("order", "created_at.desc")

	limit := 50
	if params != nil {
		if params.Limit > 0 {
			limit = params.Limit
		}
		if params.Status != nil {
			query.Set("status", "eq."+params.Status.String())
		}
		if params.StartDate != nil {
			query.Set("created_at", "gte."+params.StartDate.UTC().Format(time.RFC3339))
		}
		if params.EndDate != nil {
			query.Add("created_at", "lte."+params.EndDate.UTC().Format(time.RFC3339))
		}
	}
	query.Set("limit", strconv.Itoa(limit))

	var sales []entity.Sale
	if err := r.client.Select(ctx, "sales", query, &sales); err != nil {
		return nil, apperror.NewPersistenceFailure("Falha ao listar vendas", err)
	}
	return sales, nil
}

func (r *saleRepository) GetPendingPrint(ctx context.Context, limit int) ([]entity.Sale, error) {
	if limit <= 0 {
		limit = 5
	}

	query := url.Values{}
	query.Set("select", saleWithItems)
	query.Set("status", "eq."+enum.SaleStatusFinalized.String())
	query.Set("printed", "is.false")
	query.Set("order", "created_at.asc")
	query.Set("limit", strconv.Itoa(limit))

	var sales []entity.Sale
	if err := r.client.Select(ctx, "sales", query, &sales); err != nil {
		return nil, apperror.NewPersistenceFailure("Falha ao buscar vendas pendentes de impressao", err)
	}
	return sales, nil
}

func (r *saleRepository) MarkPrinted(ctx context.Context, id string) error {
	filters := url.Values{}
	filters.Set("id", "eq."+id)

	payload := map[string]bool{"printed": true}
	if err := r.client.Update(ctx, "sales", filters, payload); err != nil {
		return apperror.NewPersistenceFailure("Falha ao marcar a venda como impressa", err)
	}
	return nil
}

// processSaleArgs mirrors the signature of the process_sale procedure.
type processSaleArgs struct {
	Sale  saleInsert        `json:"p_sale"`
	Items []entity.SaleItem `json:"p_items"`
}

func (r *saleRepository) FinalizeAtomic(ctx context.Context, sale *entity.Sale, items []entity.SaleItem) (*entity.Sale, error) {
	args := processSaleArgs{
		Sale: saleInsert{
			Total:         sale.Total,
			PaymentMethod: sale.PaymentMethod,
			Status:        sale.Status,
		},
		Items: items,
	}

	var created entity.Sale
	if err := r.client.RPC(ctx, "process_sale", args, &created); err != nil {
		return nil, apperror.NewPersistenceFailure("Falha ao processar a venda (transacao)", err)
	}
	return &created, nil
}

func (r *saleRepository) ListFinalizedSince(ctx context.Context, since time.Time) ([]entity.Sale, error) {
	query := url.Values{}
	query.Set("select", "id,total,payment_method,status,created_at")
	query.Set("status", "eq."+enum.SaleStatusFinalized.String())
	query.Set("created_at", "gte."+since.UTC().Format(time.RFC3339))

	var sales []entity.Sale
	if err := r.client.Select(ctx, "sales", query, &sales); err != nil {
		return nil, apperror.NewPersistenceFailure("Falha ao consultar vendas do periodo", err)
	}
	return sales, nil
}
