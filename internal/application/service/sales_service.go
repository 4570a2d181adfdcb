package service

import (
	"context"
	"time"

	"github.com/bompreco/pdv-api/internal/domain/entity"
	"github.com/bompreco/pdv-api/internal/domain/enum"
	"github.com/bompreco/pdv-api/internal/domain/repository"
	"github.com/bompreco/pdv-api/pkg/apperror"
)

// SalesService provides sale browsing and period reporting.
type SalesService struct {
	saleRepo repository.SaleRepository
	now      func() time.Time
}

// NewSalesService creates a new sales service
func NewSalesService(saleRepo repository.SaleRepository) *SalesService {
	return &SalesService{saleRepo: saleRepo, now: time.Now}
}

// GetSale retrieves a sale with its items.
func (s *SalesService) GetSale(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Venda")
	}
	return sale, nil
}

// ListSales returns sales matching the given filters, most recent first.
func (s *SalesService) ListSales(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, error) {
	return s.saleRepo.List(ctx, params)
}

// SalesSummary aggregates finalized sales over a reporting period.
type SalesSummary struct {
	Period        string             `json:"period"`
	Since         time.Time          `json:"since"`
	Count         int                `json:"count"`
	Total         float64            `json:"total"`
	AverageTicket float64            `json:"average_ticket"`
	ByPayment     map[string]float64 `json:"by_payment"`
}

// periodStart maps a named reporting period to its start instant.
// Day-based periods start at local midnight.
func (s *SalesService) periodStart(period string) (time.Time, error) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch period {
	case "", "hoje":
		return midnight, nil
	case "ontem":
		return midnight.AddDate(0, 0, -1), nil
	case "semana":
		return midnight.AddDate(0, 0, -7), nil
	case "mes":
		return midnight.AddDate(0, -1, 0), nil
	}
	return time.Time{}, apperror.NewBadRequestError(
		"Periodo invalido. Use: hoje, ontem, semana ou mes")
}

// Summary aggregates finalized sales since the start of the named
// period: hoje, ontem, semana or mes. The "ontem" period includes today
// as well; it widens the window rather than shifting it.
func (s *SalesService) Summary(ctx context.Context, period string) (*SalesSummary, error) {
	since, err := s.periodStart(period)
	if err != nil {
		return nil, err
	}
	if period == "" {
		period = "hoje"
	}

	sales, err := s.saleRepo.ListFinalizedSince(ctx, since)
	if err != nil {
		return nil, err
	}

	summary := &SalesSummary{
		Period:    period,
		Since:     since,
		ByPayment: make(map[string]float64),
	}
	for i := range sales {
		sale := &sales[i]
		if sale.Status != enum.SaleStatusFinalized {
			continue
		}
		summary.Count++
		summary.Total += sale.Total
		summary.ByPayment[sale.PaymentMethod.String()] += sale.Total
	}
	if summary.Count > 0 {
		summary.AverageTicket = summary.Total / float64(summary.Count)
	}
	return summary, nil
}
