// printerctl probes for a supported thermal printer and optionally runs
// a synthetic sale through the full finalize sequence. It exists so
// operators and shell scripts can check the hardware without going
// through the HTTP API.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/bompreco/pdv-api/internal/application/service"
	"github.com/bompreco/pdv-api/internal/config"
	domainRepo "github.com/bompreco/pdv-api/internal/domain/repository"
	"github.com/bompreco/pdv-api/internal/infrastructure/repository"
	"github.com/bompreco/pdv-api/internal/infrastructure/supabase"
	"github.com/bompreco/pdv-api/pkg/pagination"
	"github.com/bompreco/pdv-api/pkg/printer"
)

func main() {
	var (
		simulate = pflag.Bool("simulate", false, "use the console loopback printer instead of hardware")
		testSale = pflag.Bool("test-sale", false, "finalize a synthetic sale: persist it, decrement stock and print the receipt")
		quiet    = pflag.BoolP("quiet", "q", false, "suppress output, report via exit code only")
	)
	pflag.Parse()

	if *quiet {
		log.SetOutput(os.Stderr)
	}

	cfg := config.Load()
	discovery := printer.NewUSBDiscovery()
	profile := service.ReceiptProfile{
		StoreName: cfg.Store.Name,
		Location:  cfg.Store.Location,
	}

	if *testSale {
		runTestSale(cfg, discovery, profile, *simulate, *quiet)
		return
	}

	printerService := service.NewPrinterService(discovery, profile, *simulate)
	status := printerService.Status()
	if !*quiet {
		fmt.Println(status.Message)
	}
	if !status.Connected {
		os.Exit(1)
	}
}

// runTestSale finalizes a synthetic sale built from the first catalogue
// products: sale and items are persisted, stock is decremented and the
// receipt is printed, exactly like a register checkout.
func runTestSale(cfg *config.Config, discovery printer.Discovery, profile service.ReceiptProfile, simulate, quiet bool) {
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	client := supabase.New(cfg.Supabase.URL, cfg.Supabase.Key)
	saleRepo := repository.NewSaleRepository(client)
	saleItemRepo := repository.NewSaleItemRepository(client)
	productRepo := repository.NewProductRepository(client)
	finalizeService := service.NewFinalizeService(saleRepo, saleItemRepo, productRepo, discovery, profile, simulate)

	ctx := context.Background()
	products, _, err := productRepo.List(ctx, &domainRepo.ProductFilterParams{
		Pagination:  &pagination.PaginationParams{Page: 1, PerPage: 3},
		OnlyInStock: true,
	})
	if err != nil {
		log.Fatalf("failed to load catalogue products: %v", err)
	}

	input := service.SampleFinalizeInput(products)
	if input == nil {
		log.Fatal("no products in stock to build the test sale")
	}

	result := finalizeService.Finalize(ctx, input)
	if !quiet {
		fmt.Println(result.Message)
		if result.SaleID != "" {
			fmt.Printf("Venda: %s (impressa: %v)\n", result.SaleID, result.Printed)
		}
	}
	if !result.Success {
		os.Exit(1)
	}
}
