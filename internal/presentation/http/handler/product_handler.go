package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bompreco/pdv-api/internal/application/service"
	"github.com/bompreco/pdv-api/internal/domain/enum"
	"github.com/bompreco/pdv-api/internal/domain/repository"
	"github.com/bompreco/pdv-api/internal/presentation/http/dto/request"
	"github.com/bompreco/pdv-api/internal/presentation/http/dto/response"
	"github.com/bompreco/pdv-api/pkg/pagination"
)

// ProductHandler handles product catalogue HTTP requests.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List returns a filtered, paginated slice of the catalogue.
func (h *ProductHandler) List(c *gin.Context) {
	var req request.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Filtros invalidos: "+err.Error())
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    req.Page,
			PerPage: req.PerPage,
		},
		Search:          req.Search,
		OnlyInStock:     req.OnlyInStock,
		IncludeInactive: req.IncludeInactive,
	}
	if req.SaleType != "" {
		saleType := enum.SaleType(req.SaleType)
		params.SaleType = &saleType
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Produtos listados", result)
}

// Get returns a single product by identifier.
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Produto encontrado", product)
}

// GetByBarcode resolves a scanned barcode to an active product.
func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	product, err := h.productService.GetProductByBarcode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Produto encontrado", product)
}
