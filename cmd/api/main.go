package main

import (
	"log"

	"github.com/bompreco/pdv-api/internal/application/service"
	"github.com/bompreco/pdv-api/internal/config"
	"github.com/bompreco/pdv-api/internal/infrastructure/repository"
	"github.com/bompreco/pdv-api/internal/infrastructure/supabase"
	"github.com/bompreco/pdv-api/internal/presentation/http/handler"
	"github.com/bompreco/pdv-api/internal/presentation/http/routes"
	"github.com/bompreco/pdv-api/pkg/printer"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Connect to the backing store
	client := supabase.New(cfg.Supabase.URL, cfg.Supabase.Key)

	// Initialize repositories
	saleRepo := repository.NewSaleRepository(client)
	saleItemRepo := repository.NewSaleItemRepository(client)
	productRepo := repository.NewProductRepository(client)

	// Initialize printer discovery and the remote receipt deliverer
	discovery := printer.NewUSBDiscovery()
	deliverer := printer.NewRemoteDeliverer(cfg.Printer.Address, cfg.Printer.SpoolDir)

	profile := service.ReceiptProfile{
		StoreName: cfg.Store.Name,
		Location:  cfg.Store.Location,
	}

	// Initialize services
	finalizeService := service.NewFinalizeService(saleRepo, saleItemRepo, productRepo, discovery, profile, cfg.Printer.Simulate)
	salesService := service.NewSalesService(saleRepo)
	productService := service.NewProductService(productRepo)
	printerService := service.NewPrinterService(discovery, profile, cfg.Printer.Simulate)
	pollerService := service.NewPollerService(saleRepo, deliverer, profile, cfg.Poller.BatchSize)

	// Initialize handlers
	handlers := &routes.Handlers{
		Sale:    handler.NewSaleHandler(finalizeService, salesService),
		Product: handler.NewProductHandler(productService),
		Printer: handler.NewPrinterHandler(printerService, pollerService),
	}

	// Setup routes
	router := routes.Setup(handlers, cfg)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
