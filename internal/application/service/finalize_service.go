package service

import (
	"context"
	"fmt"
	"log"

	"github.com/bompreco/pdv-api/internal/domain/entity"
	"github.com/bompreco/pdv-api/internal/domain/enum"
	"github.com/bompreco/pdv-api/internal/domain/repository"
	"github.com/bompreco/pdv-api/pkg/printer"
)

// FinalizeService orchestrates sale finalization: acquire a printer,
// persist the sale, persist items and decrement stock, deliver the
// receipt. The policy is fail-closed: without a printer nothing is
// persisted, favouring inventory correctness over unprintable sales.
type FinalizeService struct {
	saleRepo    repository.SaleRepository
	saleItems   repository.SaleItemRepository
	productRepo repository.ProductRepository
	discovery   printer.Discovery
	profile     ReceiptProfile
	simulate    bool
}

// NewFinalizeService creates a new finalize service
func NewFinalizeService(
	saleRepo repository.SaleRepository,
	saleItems repository.SaleItemRepository,
	productRepo repository.ProductRepository,
	discovery printer.Discovery,
	profile ReceiptProfile,
	simulate bool,
) *FinalizeService {
	return &FinalizeService{
		saleRepo:    saleRepo,
		saleItems:   saleItems,
		productRepo: productRepo,
		discovery:   discovery,
		profile:     profile,
		simulate:    simulate,
	}
}

// FinalizeItemInput is one checkout line: product, quantity and the unit
// price charged at the register.
type FinalizeItemInput struct {
	ProductID string
	Quantity  float64
	UnitPrice float64
}

// FinalizeInput is a validated finalize request.
type FinalizeInput struct {
	Total         float64
	PaymentMethod enum.PaymentMethod
	Items         []FinalizeItemInput
	// Atomic routes persistence through the server-side process_sale
	// procedure instead of the sequential per-item writes.
	Atomic bool
}

// FinalizeResult is the outcome reported to the operator. Success means
// the sale is financially final; Message carries the operator-facing
// detail, including print failures that do not undo the sale.
type FinalizeResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	SaleID  string `json:"sale_id,omitempty"`
	Printed bool   `json:"printed"`
}

func failure(message string) *FinalizeResult {
	return &FinalizeResult{Success: false, Message: message}
}

// Finalize runs the checkout sequence. All failures are converted into a
// structured result; nothing is propagated as an uncaught fault.
func (s *FinalizeService) Finalize(ctx context.Context, input *FinalizeInput) *FinalizeResult {
	if msg := validateInput(input); msg != "" {
		return failure(msg)
	}

	// Step 1: acquire a printer. No printer, no sale.
	prn := s.discovery.Discover(s.simulate)
	if prn == nil {
		return failure("Impressora nao detectada. Verifique o cabo USB e clique em Reconhecer.")
	}
	defer prn.Close()

	if input.Atomic {
		return s.finalizeAtomic(ctx, input, prn)
	}

	// Step 2: persist the sale header.
	sale := &entity.Sale{
		Total:         input.Total,
		PaymentMethod: input.PaymentMethod,
		Status:        enum.SaleStatusFinalized,
	}
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return failure("Erro ao gravar venda: " + err.Error())
	}

	// Step 3: persist items and decrement stock, in list order. Each item
	// is two independent writes with no cross-item transaction; on the
	// first failure the loop stops and prior writes stay applied. The
	// partially-applied state is an acknowledged gap of the sequential
	// path; the atomic path avoids it.
	items := make([]entity.SaleItem, 0, len(input.Items))
	for i, in := range input.Items {
		item := entity.SaleItem{
			SaleID:    sale.ID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
			Subtotal:  in.Quantity * in.UnitPrice,
		}
		if err := s.saleItems.Create(ctx, &item); err != nil {
			return failure(fmt.Sprintf("Erro ao gravar item %d da venda: %v", i+1, err))
		}

		product, err := s.productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return failure(fmt.Sprintf("Erro ao consultar produto do item %d: %v", i+1, err))
		}
		if product == nil {
			return failure(fmt.Sprintf("Produto do item %d nao encontrado", i+1))
		}

		// Single-column stock read, then the write-back. No floor against
		// negative stock; the store-side procedure is the place to enforce one.
		stock, err := s.productRepo.GetStock(ctx, in.ProductID)
		if err != nil {
			return failure(fmt.Sprintf("Erro ao consultar estoque do item %d: %v", i+1, err))
		}
		if err := s.productRepo.UpdateStock(ctx, in.ProductID, stock-in.Quantity); err != nil {
			return failure(fmt.Sprintf("Erro ao atualizar estoque do item %d: %v", i+1, err))
		}

		item.Product = &entity.ProductRef{Name: product.Name, SaleType: product.SaleType}
		items = append(items, item)
	}

	// Step 4: deliver the receipt. The sale is financially final from
	// here on, whatever the print outcome.
	return s.deliver(ctx, sale, items, prn)
}

// finalizeAtomic persists sale, items and stock decrements in a single
// server-side transaction, then prints.
func (s *FinalizeService) finalizeAtomic(ctx context.Context, input *FinalizeInput, prn printer.Printer) *FinalizeResult {
	items := make([]entity.SaleItem, 0, len(input.Items))
	for _, in := range input.Items {
		items = append(items, entity.SaleItem{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
			Subtotal:  in.Quantity * in.UnitPrice,
		})
	}

	sale := &entity.Sale{
		Total:         input.Total,
		PaymentMethod: input.PaymentMethod,
		Status:        enum.SaleStatusFinalized,
	}
	created, err := s.saleRepo.FinalizeAtomic(ctx, sale, items)
	if err != nil {
		return failure("Erro ao processar venda: " + err.Error())
	}

	// Re-read with items so the receipt carries product names.
	full, err := s.saleRepo.GetByID(ctx, created.ID)
	if err != nil || full == nil {
		log.Printf("finalize: sale %s created but joined read failed: %v", created.ID, err)
		full = created
	}
	return s.deliver(ctx, full, full.Items, prn)
}

func (s *FinalizeService) deliver(ctx context.Context, sale *entity.Sale, items []entity.SaleItem, prn printer.Printer) *FinalizeResult {
	data := EncodeReceipt(s.profile, sale, items)
	if err := prn.Print(data); err != nil {
		log.Printf("finalize: receipt delivery failed for sale %s: %v", sale.ID, err)
		return &FinalizeResult{
			Success: true,
			Message: "Venda registrada, mas houve erro na impressao do cupom: " + err.Error(),
			SaleID:  sale.ID,
		}
	}

	if err := s.saleRepo.MarkPrinted(ctx, sale.ID); err != nil {
		// The paper is already out of the printer; only the flag is stale.
		log.Printf("finalize: failed to mark sale %s as printed: %v", sale.ID, err)
	}

	return &FinalizeResult{
		Success: true,
		Message: "Venda realizada e impressa com sucesso!",
		SaleID:  sale.ID,
		Printed: true,
	}
}

func validateInput(input *FinalizeInput) string {
	if input == nil || len(input.Items) == 0 {
		return "Venda sem itens"
	}
	if input.Total <= 0 {
		return "Total da venda invalido"
	}
	if !input.PaymentMethod.IsValid() {
		return "Forma de pagamento invalida"
	}
	for i, item := range input.Items {
		if item.ProductID == "" {
			return fmt.Sprintf("Item %d sem produto", i+1)
		}
		if item.Quantity <= 0 {
			return fmt.Sprintf("Item %d com quantidade invalida", i+1)
		}
		if item.UnitPrice < 0 {
			return fmt.Sprintf("Item %d com preco invalido", i+1)
		}
	}
	return ""
}
