package service

import (
	"context"

	"github.com/bompreco/pdv-api/internal/domain/entity"
	"github.com/bompreco/pdv-api/internal/domain/repository"
	"github.com/bompreco/pdv-api/pkg/apperror"
	"github.com/bompreco/pdv-api/pkg/pagination"
)

// ProductService provides catalogue lookups for the register UI.
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// GetProduct retrieves a product by its identifier.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Produto")
	}
	return product, nil
}

// GetProductByBarcode resolves a scanned barcode to an active product.
func (s *ProductService) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	if barcode == "" {
		return nil, apperror.NewBadRequestError("Codigo de barras vazio")
	}
	product, err := s.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Produto")
	}
	return product, nil
}

// ListProducts returns a filtered, paginated slice of the catalogue.
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params == nil {
		params = &repository.ProductFilterParams{}
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	meta := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, meta), nil
}
