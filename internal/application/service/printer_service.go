package service

import (
	"time"

	"github.com/bompreco/pdv-api/internal/domain/entity"
	"github.com/bompreco/pdv-api/internal/domain/enum"
	"github.com/bompreco/pdv-api/pkg/apperror"
	"github.com/bompreco/pdv-api/pkg/printer"
)

// PrinterService exposes printer hardware operations to the operator:
// detection status and a self-test receipt.
type PrinterService struct {
	discovery printer.Discovery
	profile   ReceiptProfile
	simulate  bool
}

// NewPrinterService creates a new printer service
func NewPrinterService(discovery printer.Discovery, profile ReceiptProfile, simulate bool) *PrinterService {
	return &PrinterService{
		discovery: discovery,
		profile:   profile,
		simulate:  simulate,
	}
}

// PrinterStatus reports the detection outcome. Connected false with
// Simulated false means no known hardware answered the probe.
type PrinterStatus struct {
	Connected bool   `json:"connected"`
	Simulated bool   `json:"simulated"`
	Message   string `json:"message"`
}

// Status probes for a printer and releases it immediately.
func (s *PrinterService) Status() *PrinterStatus {
	prn := s.discovery.Discover(s.simulate)
	if prn == nil {
		return &PrinterStatus{
			Connected: false,
			Message:   "Impressora nao detectada. Verifique o cabo USB e clique em Reconhecer.",
		}
	}
	defer prn.Close()

	return &PrinterStatus{
		Connected: true,
		Simulated: s.simulate,
		Message:   "Impressora conectada",
	}
}

// TestPrint renders a fixed sample receipt and sends it to the detected
// printer, exercising the full encode-and-deliver path without touching
// the store.
func (s *PrinterService) TestPrint() error {
	prn := s.discovery.Discover(s.simulate)
	if prn == nil {
		return apperror.NewHardwareUnavailable(
			"Impressora nao detectada. Verifique o cabo USB e clique em Reconhecer.")
	}
	defer prn.Close()

	sale, items := sampleSale()
	if err := prn.Print(EncodeReceipt(s.profile, sale, items)); err != nil {
		return apperror.NewPrintDeliveryFailure("Erro ao imprimir cupom de teste", err)
	}
	return nil
}

// SampleFinalizeInput builds the synthetic checkout used by the
// hardware test-sale mode from real catalogue products, so the full
// finalize sequence runs end to end, persistence included. Returns nil
// when the catalogue is empty.
func SampleFinalizeInput(products []entity.Product) *FinalizeInput {
	if len(products) == 0 {
		return nil
	}
	if len(products) > 3 {
		products = products[:3]
	}

	input := &FinalizeInput{PaymentMethod: enum.PaymentPix}
	for _, p := range products {
		qty := 1.0
		if p.SaleType == enum.SaleTypeWeight {
			qty = 1.5
		}
		price := p.Price()
		input.Items = append(input.Items, FinalizeItemInput{
			ProductID: p.ID,
			Quantity:  qty,
			UnitPrice: price,
		})
		input.Total += qty * price
	}
	return input
}

// sampleSale is the fixed content of the self-test receipt.
func sampleSale() (*entity.Sale, []entity.SaleItem) {
	sale := &entity.Sale{
		ID:            "teste",
		Number:        999999,
		Total:         50.00,
		PaymentMethod: enum.PaymentPix,
		Status:        enum.SaleStatusFinalized,
		CreatedAt:     time.Now(),
	}
	items := []entity.SaleItem{
		{
			Quantity:  1.5,
			UnitPrice: 10.00,
			Subtotal:  15.00,
			Product:   &entity.ProductRef{Name: "Banana Prata", SaleType: enum.SaleTypeWeight},
		},
		{
			Quantity:  2,
			UnitPrice: 15.00,
			Subtotal:  30.00,
			Product:   &entity.ProductRef{Name: "Maca Fuji", SaleType: enum.SaleTypeWeight},
		},
		{
			Quantity:  1,
			UnitPrice: 5.00,
			Subtotal:  5.00,
			Product:   &entity.ProductRef{Name: "Sacola", SaleType: enum.SaleTypeUnit},
		},
	}
	return sale, items
}
