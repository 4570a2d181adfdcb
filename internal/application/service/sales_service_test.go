package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/bompreco/pdv-api/internal/domain/entity"
	"github.com/bompreco/pdv-api/internal/domain/enum"
	"github.com/bompreco/pdv-api/pkg/apperror"
)

func fixedNow() time.Time {
	return time.Date(2026, 8, 28, 15, 45, 0, 0, time.Local)
}

func newSalesFixture(saleRepo *fakeSaleRepo) *SalesService {
	svc := NewSalesService(saleRepo)
	svc.now = fixedNow
	return svc
}

func TestSummaryAggregates(t *testing.T) {
	saleRepo := &fakeSaleRepo{finalizedList: []entity.Sale{
		{Total: 10, PaymentMethod: enum.PaymentCash, Status: enum.SaleStatusFinalized},
		{Total: 20, PaymentMethod: enum.PaymentPix, Status: enum.SaleStatusFinalized},
		{Total: 30, PaymentMethod: enum.PaymentPix, Status: enum.SaleStatusFinalized},
	}}
	svc := newSalesFixture(saleRepo)

	summary, err := svc.Summary(context.Background(), "hoje")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if summary.Count != 3 {
		t.Errorf("count %d, want 3", summary.Count)
	}
	if summary.Total != 60 {
		t.Errorf("total %v, want 60", summary.Total)
	}
	if math.Abs(summary.AverageTicket-20) > 1e-9 {
		t.Errorf("average ticket %v, want 20", summary.AverageTicket)
	}
	if summary.ByPayment["pix"] != 50 || summary.ByPayment["dinheiro"] != 10 {
		t.Errorf("payment breakdown %v", summary.ByPayment)
	}
}

func TestSummarySkipsNonFinalized(t *testing.T) {
	saleRepo := &fakeSaleRepo{finalizedList: []entity.Sale{
		{Total: 10, PaymentMethod: enum.PaymentCash, Status: enum.SaleStatusFinalized},
		{Total: 99, PaymentMethod: enum.PaymentCash, Status: enum.SaleStatusCancelled},
	}}
	svc := newSalesFixture(saleRepo)

	summary, err := svc.Summary(context.Background(), "hoje")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Count != 1 || summary.Total != 10 {
		t.Errorf("cancelled sale leaked into the summary: %+v", summary)
	}
}

func TestSummaryEmptyPeriod(t *testing.T) {
	svc := newSalesFixture(&fakeSaleRepo{})

	summary, err := svc.Summary(context.Background(), "")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Period != "hoje" {
		t.Errorf("default period %q, want hoje", summary.Period)
	}
	if summary.Count != 0 || summary.AverageTicket != 0 {
		t.Errorf("empty backlog produced %+v", summary)
	}
}

func TestSummaryPeriodStarts(t *testing.T) {
	svc := newSalesFixture(&fakeSaleRepo{})
	midnight := time.Date(2026, 8, 28, 0, 0, 0, 0, time.Local)

	tests := []struct {
		period string
		want   time.Time
	}{
		{"hoje", midnight},
		{"ontem", midnight.AddDate(0, 0, -1)},
		{"semana", midnight.AddDate(0, 0, -7)},
		{"mes", midnight.AddDate(0, -1, 0)},
	}
	for _, tt := range tests {
		got, err := svc.periodStart(tt.period)
		if err != nil {
			t.Fatalf("periodStart(%q): %v", tt.period, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("periodStart(%q) = %v, want %v", tt.period, got, tt.want)
		}
	}
}

func TestSummaryInvalidPeriod(t *testing.T) {
	svc := newSalesFixture(&fakeSaleRepo{})

	_, err := svc.Summary(context.Background(), "ano")
	if err == nil {
		t.Fatal("expected error for unknown period")
	}
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("error kind is not validation: %v", err)
	}
}

func TestGetSaleNotFound(t *testing.T) {
	svc := newSalesFixture(&fakeSaleRepo{})

	_, err := svc.GetSale(context.Background(), "missing")
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestGetSaleFound(t *testing.T) {
	sale := &entity.Sale{ID: "s1", Total: 12}
	svc := newSalesFixture(&fakeSaleRepo{byID: map[string]*entity.Sale{"s1": sale}})

	got, err := svc.GetSale(context.Background(), "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != "s1" {
		t.Errorf("got sale %q", got.ID)
	}
}
