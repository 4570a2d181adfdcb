// print-poller drains the backlog of finalized-but-unprinted sales. Run
// it once from cron, or with --interval as a long-lived sidecar where
// the register host cannot reach the printer directly.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/bompreco/pdv-api/internal/application/service"
	"github.com/bompreco/pdv-api/internal/config"
	"github.com/bompreco/pdv-api/internal/infrastructure/repository"
	"github.com/bompreco/pdv-api/internal/infrastructure/supabase"
	"github.com/bompreco/pdv-api/pkg/printer"
)

func main() {
	var (
		interval = pflag.Duration("interval", 0, "poll continuously at this interval (0 runs a single pass)")
		once     = pflag.Bool("once", false, "force a single pass even when an interval is set")
	)
	pflag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	client := supabase.New(cfg.Supabase.URL, cfg.Supabase.Key)
	saleRepo := repository.NewSaleRepository(client)
	deliverer := printer.NewRemoteDeliverer(cfg.Printer.Address, cfg.Printer.SpoolDir)
	profile := service.ReceiptProfile{
		StoreName: cfg.Store.Name,
		Location:  cfg.Store.Location,
	}
	poller := service.NewPollerService(saleRepo, deliverer, profile, cfg.Poller.BatchSize)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runOnce := func() {
		report, err := poller.Run(ctx)
		if err != nil {
			log.Printf("poll pass failed: %v", err)
			return
		}
		log.Printf("poll pass: %d pending, %d printed, %d failed",
			report.Pending, report.Printed, report.Failed)
	}

	runOnce()
	if *interval <= 0 || *once {
		return
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("shutting down")
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
