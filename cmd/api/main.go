package main

import (
	"context"
	"log"
	"time"

	"github.com/bazarlivre/pos-api/internal/application/catalog"
	"github.com/bazarlivre/pos-api/internal/application/service"
	"github.com/bazarlivre/pos-api/internal/config"
	"github.com/bazarlivre/pos-api/internal/infrastructure/database"
	"github.com/bazarlivre/pos-api/internal/infrastructure/repository"
	"github.com/bazarlivre/pos-api/internal/presentation/http/handler"
	"github.com/bazarlivre/pos-api/internal/presentation/http/routes"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize catalog snapshots and load them once up front
	ctx := context.Background()
	promotionCache := catalog.NewPromotionCache(promotionRepo, cfg.Catalog.RefreshInterval)
	inventoryCache := catalog.NewInventoryCache(productRepo, cfg.Catalog.RefreshInterval)
	if err := promotionCache.Refresh(ctx); err != nil {
		log.Printf("Warning: initial promotion load failed: %v", err)
	}
	if err := inventoryCache.Refresh(ctx); err != nil {
		log.Printf("Warning: initial inventory load failed: %v", err)
	}
	promotionCache.Start(ctx)
	inventoryCache.Start(ctx)

	// Purge expired idempotency keys in the background
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := idempotencyRepo.DeleteExpired(ctx); err != nil {
					log.Printf("Warning: idempotency key cleanup failed: %v", err)
				}
			}
		}
	}()

	// Initialize services
	saleService := service.NewSaleService(saleRepo, productRepo)
	draftManager := service.NewDraftManager(customerRepo, promotionCache, inventoryCache, saleService, cfg.Draft.IdleExpiry)
	draftManager.Start(ctx)
	customerService := service.NewCustomerService(customerRepo)
	productService := service.NewProductService(productRepo)
	promotionService := service.NewPromotionService(promotionRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Draft:     handler.NewDraftHandler(draftManager),
		Sale:      handler.NewSaleHandler(saleService),
		Customer:  handler.NewCustomerHandler(customerService),
		Product:   handler.NewProductHandler(productService),
		Promotion: handler.NewPromotionHandler(promotionService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
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
