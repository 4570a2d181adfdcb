package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bompreco/pdv-api/internal/application/service"
	"github.com/bompreco/pdv-api/internal/domain/enum"
	"github.com/bompreco/pdv-api/internal/domain/repository"
	"github.com/bompreco/pdv-api/internal/presentation/http/dto/request"
	"github.com/bompreco/pdv-api/internal/presentation/http/dto/response"
)

// SaleHandler handles sale-related HTTP requests.
type SaleHandler struct {
	finalizeService *service.FinalizeService
	salesService    *service.SalesService
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(finalizeService *service.FinalizeService, salesService *service.SalesService) *SaleHandler {
	return &SaleHandler{
		finalizeService: finalizeService,
		salesService:    salesService,
	}
}

// Finalize closes a sale: persists it, decrements stock and prints the
// receipt. The outcome is always a structured result; a print failure
// after persistence still reports success.
func (h *SaleHandler) Finalize(c *gin.Context) {
	var req request.FinalizeSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Requisicao invalida: "+err.Error())
		return
	}

	input := &service.FinalizeInput{
		Total:         req.Total,
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		Atomic:        req.Atomic,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.FinalizeItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	result := h.finalizeService.Finalize(c.Request.Context(), input)
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, response.APIResponse{
			Success: false,
			Message: result.Message,
			Data:    result,
		})
		return
	}
	response.OK(c, result.Message, result)
}

// List returns sales matching the query filters, most recent first.
func (h *SaleHandler) List(c *gin.Context) {
	var req request.ListSalesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Filtros invalidos: "+err.Error())
		return
	}

	params := &repository.SaleFilterParams{Limit: req.Limit}
	if req.Status != "" {
		status := enum.SaleStatus(req.Status)
		params.Status = &status
	}
	if req.StartDate != "" {
		start, _ := time.ParseInLocation("2006-01-02", req.StartDate, time.Local)
		params.StartDate = &start
	}
	if req.EndDate != "" {
		// End date is inclusive: advance to the next midnight.
		end, _ := time.ParseInLocation("2006-01-02", req.EndDate, time.Local)
		end = end.AddDate(0, 0, 1)
		params.EndDate = &end
	}

	sales, err := h.salesService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Vendas listadas", sales)
}

// Get returns a single sale with its items.
func (h *SaleHandler) Get(c *gin.Context) {
	sale, err := h.salesService.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Venda encontrada", sale)
}

// Summary aggregates finalized sales over a named period.
func (h *SaleHandler) Summary(c *gin.Context) {
	var req request.SalesSummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Periodo invalido. Use: hoje, ontem, semana ou mes")
		return
	}

	summary, err := h.salesService.Summary(c.Request.Context(), req.Period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Resumo de vendas", summary)
}
