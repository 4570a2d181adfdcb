package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bompreco/pdv-api/internal/domain/entity"
	"github.com/bompreco/pdv-api/internal/domain/enum"
	"github.com/bompreco/pdv-api/internal/domain/repository"
	"github.com/bompreco/pdv-api/pkg/printer"
)

// --- fakes ---

type fakeSaleRepo struct {
	created       []*entity.Sale
	createErr     error
	printed       []string
	markErr       error
	pending       []entity.Sale
	pendingErr    error
	atomicSale    *entity.Sale
	atomicErr     error
	byID          map[string]*entity.Sale
	finalizedList []entity.Sale
}

func (f *fakeSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if f.createErr != nil {
		return f.createErr
	}
	sale.ID = "sale-1"
	sale.Number = 42
	sale.CreatedAt = time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	clone := *sale
	f.created = append(f.created, &clone)
	return nil
}

func (f *fakeSaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	if f.byID == nil {
		return nil, nil
	}
	return f.byID[id], nil
}

func (f *fakeSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, error) {
	return nil, nil
}

func (f *fakeSaleRepo) GetPendingPrint(ctx context.Context, limit int) ([]entity.Sale, error) {
	if f.pendingErr != nil {
		return nil, f.pendingErr
	}
	if limit < len(f.pending) {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeSaleRepo) MarkPrinted(ctx context.Context, id string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.printed = append(f.printed, id)
	return nil
}

func (f *fakeSaleRepo) FinalizeAtomic(ctx context.Context, sale *entity.Sale, items []entity.SaleItem) (*entity.Sale, error) {
	if f.atomicErr != nil {
		return nil, f.atomicErr
	}
	return f.atomicSale, nil
}

func (f *fakeSaleRepo) ListFinalizedSince(ctx context.Context, since time.Time) ([]entity.Sale, error) {
	return f.finalizedList, nil
}

type fakeSaleItemRepo struct {
	created []entity.SaleItem
	failAt  int // 1-based index of the create call that fails; 0 never fails
	calls   int
}

func (f *fakeSaleItemRepo) Create(ctx context.Context, item *entity.SaleItem) error {
	f.calls++
	if f.failAt > 0 && f.calls == f.failAt {
		return errors.New("insert rejected")
	}
	item.ID = "item-" + item.ProductID
	f.created = append(f.created, *item)
	return nil
}

type fakeProductRepo struct {
	products         map[string]*entity.Product
	stockReads       []string
	stockWrites      map[string]float64
	stockFailFor     string
	stockReadFailFor string
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	f := &fakeProductRepo{
		products:    make(map[string]*entity.Product),
		stockWrites: make(map[string]float64),
	}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) GetStock(ctx context.Context, id string) (float64, error) {
	if id == f.stockReadFailFor {
		return 0, errors.New("stock read rejected")
	}
	f.stockReads = append(f.stockReads, id)
	if p, ok := f.products[id]; ok {
		return p.StockQuantity, nil
	}
	return 0, errors.New("not found")
}

func (f *fakeProductRepo) UpdateStock(ctx context.Context, id string, quantity float64) error {
	if id == f.stockFailFor {
		return errors.New("stock write rejected")
	}
	f.stockWrites[id] = quantity
	return nil
}

// fakeDiscovery hands out a preset printer, or nil to simulate absent
// hardware.
type fakeDiscovery struct {
	printer printer.Printer
}

func (d *fakeDiscovery) Discover(simulate bool) printer.Printer {
	return d.printer
}

type fakePrinter struct {
	printed [][]byte
	fail    error
	closed  bool
}

func (f *fakePrinter) Print(data []byte) error {
	if f.fail != nil {
		return f.fail
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	f.printed = append(f.printed, buf)
	return nil
}

func (f *fakePrinter) Close() error {
	f.closed = true
	return nil
}

func (f *fakePrinter) IsConnected() bool { return true }

// --- helpers ---

func threeItemInput() *FinalizeInput {
	return &FinalizeInput{
		Total:         50,
		PaymentMethod: enum.PaymentPix,
		Items: []FinalizeItemInput{
			{ProductID: "p1", Quantity: 1.5, UnitPrice: 10},
			{ProductID: "p2", Quantity: 2, UnitPrice: 15},
			{ProductID: "p3", Quantity: 1, UnitPrice: 5},
		},
	}
}

func threeProducts() *fakeProductRepo {
	return newFakeProductRepo(
		&entity.Product{ID: "p1", Name: "Banana Prata", StockQuantity: 10, SaleType: enum.SaleTypeWeight},
		&entity.Product{ID: "p2", Name: "Maca Fuji", StockQuantity: 8, SaleType: enum.SaleTypeWeight},
		&entity.Product{ID: "p3", Name: "Sacola", StockQuantity: 100, SaleType: enum.SaleTypeUnit},
	)
}

func newFinalizeFixture(saleRepo *fakeSaleRepo, itemRepo *fakeSaleItemRepo, productRepo *fakeProductRepo, prn printer.Printer) *FinalizeService {
	return NewFinalizeService(
		saleRepo, itemRepo, productRepo,
		&fakeDiscovery{printer: prn},
		testProfile,
		false,
	)
}

// --- tests ---

func TestFinalizeHappyPath(t *testing.T) {
	saleRepo := &fakeSaleRepo{}
	itemRepo := &fakeSaleItemRepo{}
	productRepo := threeProducts()
	prn := &fakePrinter{}
	svc := newFinalizeFixture(saleRepo, itemRepo, productRepo, prn)

	result := svc.Finalize(context.Background(), threeItemInput())

	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if result.Message != "Venda realizada e impressa com sucesso!" {
		t.Errorf("unexpected message %q", result.Message)
	}
	if !result.Printed {
		t.Error("result not flagged as printed")
	}
	if len(saleRepo.created) != 1 {
		t.Fatalf("created %d sales, want 1", len(saleRepo.created))
	}
	if len(itemRepo.created) != 3 {
		t.Errorf("created %d items, want 3", len(itemRepo.created))
	}
	if len(productRepo.stockReads) != 3 {
		t.Errorf("stock read %d times, want one single-column read per item", len(productRepo.stockReads))
	}
	if got := productRepo.stockWrites["p1"]; got != 8.5 {
		t.Errorf("p1 stock written as %v, want 8.5", got)
	}
	if got := productRepo.stockWrites["p2"]; got != 6 {
		t.Errorf("p2 stock written as %v, want 6", got)
	}
	if len(prn.printed) != 1 {
		t.Fatalf("printed %d receipts, want 1", len(prn.printed))
	}
	if len(saleRepo.printed) != 1 || saleRepo.printed[0] != "sale-1" {
		t.Errorf("printed flag not set for sale-1: %v", saleRepo.printed)
	}
	if !prn.closed {
		t.Error("printer handle not released")
	}
}

func TestFinalizeNoPrinterWritesNothing(t *testing.T) {
	saleRepo := &fakeSaleRepo{}
	itemRepo := &fakeSaleItemRepo{}
	productRepo := threeProducts()
	svc := newFinalizeFixture(saleRepo, itemRepo, productRepo, nil)

	result := svc.Finalize(context.Background(), threeItemInput())

	if result.Success {
		t.Fatal("expected failure without a printer")
	}
	if !strings.Contains(result.Message, "Impressora nao detectada") {
		t.Errorf("unexpected message %q", result.Message)
	}
	if len(saleRepo.created) != 0 || len(itemRepo.created) != 0 || len(productRepo.stockWrites) != 0 {
		t.Error("persistence happened despite missing printer")
	}
}

func TestFinalizeStopsAtFirstItemFailure(t *testing.T) {
	saleRepo := &fakeSaleRepo{}
	itemRepo := &fakeSaleItemRepo{failAt: 2}
	productRepo := threeProducts()
	prn := &fakePrinter{}
	svc := newFinalizeFixture(saleRepo, itemRepo, productRepo, prn)

	result := svc.Finalize(context.Background(), threeItemInput())

	if result.Success {
		t.Fatal("expected failure when the second item insert is rejected")
	}
	// The sale header and the first item stay applied; items two and
	// three are absent and only the first stock decrement happened.
	if len(saleRepo.created) != 1 {
		t.Errorf("sale header rows: %d, want 1", len(saleRepo.created))
	}
	if len(itemRepo.created) != 1 {
		t.Errorf("item rows: %d, want 1", len(itemRepo.created))
	}
	if _, ok := productRepo.stockWrites["p1"]; !ok {
		t.Error("first item stock decrement missing")
	}
	if _, ok := productRepo.stockWrites["p2"]; ok {
		t.Error("second item stock written despite failed insert")
	}
	if len(prn.printed) != 0 {
		t.Error("receipt printed despite persistence failure")
	}
}

func TestFinalizeStockFailureKeepsItemRow(t *testing.T) {
	saleRepo := &fakeSaleRepo{}
	itemRepo := &fakeSaleItemRepo{}
	productRepo := threeProducts()
	productRepo.stockFailFor = "p2"
	prn := &fakePrinter{}
	svc := newFinalizeFixture(saleRepo, itemRepo, productRepo, prn)

	result := svc.Finalize(context.Background(), threeItemInput())

	if result.Success {
		t.Fatal("expected failure when the second stock write is rejected")
	}
	// The second item row was already written when its stock update
	// failed; there is no rollback.
	if len(itemRepo.created) != 2 {
		t.Errorf("item rows: %d, want 2", len(itemRepo.created))
	}
	if _, ok := productRepo.stockWrites["p2"]; ok {
		t.Error("failed stock write recorded")
	}
	if _, ok := productRepo.stockWrites["p3"]; ok {
		t.Error("third item processed after failure")
	}
}

func TestFinalizeStockReadFailureStopsTheLoop(t *testing.T) {
	saleRepo := &fakeSaleRepo{}
	itemRepo := &fakeSaleItemRepo{}
	productRepo := threeProducts()
	productRepo.stockReadFailFor = "p2"
	prn := &fakePrinter{}
	svc := newFinalizeFixture(saleRepo, itemRepo, productRepo, prn)

	result := svc.Finalize(context.Background(), threeItemInput())

	if result.Success {
		t.Fatal("expected failure when the second stock read is rejected")
	}
	if len(itemRepo.created) != 2 {
		t.Errorf("item rows: %d, want 2", len(itemRepo.created))
	}
	if _, ok := productRepo.stockWrites["p2"]; ok {
		t.Error("stock written despite failed read")
	}
	if len(prn.printed) != 0 {
		t.Error("receipt printed despite persistence failure")
	}
}

func TestFinalizePrintFailureStillSucceeds(t *testing.T) {
	saleRepo := &fakeSaleRepo{}
	itemRepo := &fakeSaleItemRepo{}
	productRepo := threeProducts()
	prn := &fakePrinter{fail: errors.New("paper jam")}
	svc := newFinalizeFixture(saleRepo, itemRepo, productRepo, prn)

	result := svc.Finalize(context.Background(), threeItemInput())

	if !result.Success {
		t.Fatal("print failure must not undo a persisted sale")
	}
	if !strings.Contains(result.Message, "erro na impressao") {
		t.Errorf("message does not report the print failure: %q", result.Message)
	}
	if result.Printed {
		t.Error("printed flagged true despite delivery failure")
	}
	if len(saleRepo.printed) != 0 {
		t.Error("sale marked printed despite delivery failure")
	}
}

func TestFinalizeMarkPrintedFailureIsNotFatal(t *testing.T) {
	saleRepo := &fakeSaleRepo{markErr: errors.New("store down")}
	itemRepo := &fakeSaleItemRepo{}
	productRepo := threeProducts()
	prn := &fakePrinter{}
	svc := newFinalizeFixture(saleRepo, itemRepo, productRepo, prn)

	result := svc.Finalize(context.Background(), threeItemInput())

	if !result.Success || !result.Printed {
		t.Error("a stale printed flag must not fail a delivered sale")
	}
}

func TestFinalizeValidation(t *testing.T) {
	svc := newFinalizeFixture(&fakeSaleRepo{}, &fakeSaleItemRepo{}, threeProducts(), &fakePrinter{})

	tests := []struct {
		name  string
		input *FinalizeInput
	}{
		{"nil input", nil},
		{"no items", &FinalizeInput{Total: 10, PaymentMethod: enum.PaymentCash}},
		{"zero total", &FinalizeInput{PaymentMethod: enum.PaymentCash, Items: []FinalizeItemInput{{ProductID: "p1", Quantity: 1}}}},
		{"bad payment", &FinalizeInput{Total: 10, PaymentMethod: "cheque", Items: []FinalizeItemInput{{ProductID: "p1", Quantity: 1}}}},
		{"zero quantity", &FinalizeInput{Total: 10, PaymentMethod: enum.PaymentCash, Items: []FinalizeItemInput{{ProductID: "p1"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := svc.Finalize(context.Background(), tt.input); result.Success {
				t.Error("invalid input accepted")
			}
		})
	}
}

func TestFinalizeAtomicUsesProcedure(t *testing.T) {
	created := &entity.Sale{
		ID:            "sale-9",
		Number:        9,
		Total:         50,
		PaymentMethod: enum.PaymentPix,
		Status:        enum.SaleStatusFinalized,
		CreatedAt:     time.Now(),
	}
	saleRepo := &fakeSaleRepo{
		atomicSale: created,
		byID:       map[string]*entity.Sale{"sale-9": created},
	}
	itemRepo := &fakeSaleItemRepo{}
	productRepo := threeProducts()
	prn := &fakePrinter{}
	svc := newFinalizeFixture(saleRepo, itemRepo, productRepo, prn)

	input := threeItemInput()
	input.Atomic = true
	result := svc.Finalize(context.Background(), input)

	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if result.SaleID != "sale-9" {
		t.Errorf("sale id %q, want sale-9", result.SaleID)
	}
	// The sequential write path must not run on the atomic path.
	if len(saleRepo.created) != 0 || len(itemRepo.created) != 0 || len(productRepo.stockWrites) != 0 {
		t.Error("sequential writes happened on the atomic path")
	}
	if len(prn.printed) != 1 {
		t.Error("atomic path did not print the receipt")
	}
}

func TestFinalizeAtomicProcedureFailure(t *testing.T) {
	saleRepo := &fakeSaleRepo{atomicErr: errors.New("estoque insuficiente")}
	svc := newFinalizeFixture(saleRepo, &fakeSaleItemRepo{}, threeProducts(), &fakePrinter{})

	input := threeItemInput()
	input.Atomic = true
	result := svc.Finalize(context.Background(), input)

	if result.Success {
		t.Fatal("expected failure when the procedure rejects the sale")
	}
	if len(saleRepo.printed) != 0 {
		t.Error("sale marked printed despite rejected transaction")
	}
}
