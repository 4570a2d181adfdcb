package service

import (
	"context"
	"log"

	"github.com/bompreco/pdv-api/internal/domain/repository"
	"github.com/bompreco/pdv-api/pkg/printer"
)

// PollerService drains the backlog of finalized-but-unprinted sales.
// Each pass reads a bounded batch, renders each receipt, delivers it and
// marks the sale printed right away, so a crash mid-pass at worst leaves
// already-printed sales for the next pass. Re-printing a receipt is
// harmless; losing one is not.
type PollerService struct {
	saleRepo  repository.SaleRepository
	deliverer printer.Deliverer
	profile   ReceiptProfile
	batchSize int
}

// PollReport summarizes one poller pass.
type PollReport struct {
	Pending int `json:"pending"`
	Printed int `json:"printed"`
	Failed  int `json:"failed"`
}

// NewPollerService creates a new poller service
func NewPollerService(
	saleRepo repository.SaleRepository,
	deliverer printer.Deliverer,
	profile ReceiptProfile,
	batchSize int,
) *PollerService {
	if batchSize <= 0 {
		batchSize = 5
	}
	return &PollerService{
		saleRepo:  saleRepo,
		deliverer: deliverer,
		profile:   profile,
		batchSize: batchSize,
	}
}

// Run executes a single poll pass. A failure on one sale never blocks
// the rest of the batch; the sale stays pending and is retried on the
// next pass.
func (s *PollerService) Run(ctx context.Context) (*PollReport, error) {
	sales, err := s.saleRepo.GetPendingPrint(ctx, s.batchSize)
	if err != nil {
		return nil, err
	}

	report := &PollReport{Pending: len(sales)}
	for i := range sales {
		sale := &sales[i]

		data := EncodeReceipt(s.profile, sale, sale.Items)
		if err := s.deliverer.Deliver(sale.ID, data); err != nil {
			log.Printf("poller: delivery failed for sale %s: %v", sale.ID, err)
			report.Failed++
			continue
		}

		// Mark immediately after delivery, not at end of batch.
		if err := s.saleRepo.MarkPrinted(ctx, sale.ID); err != nil {
			log.Printf("poller: failed to mark sale %s as printed: %v", sale.ID, err)
			report.Failed++
			continue
		}
		report.Printed++
	}
	return report, nil
}
