package routes

import (
	"time"

	"github.com/bazarlivre/pos-api/internal/config"
	domainRepo "github.com/bazarlivre/pos-api/internal/domain/repository"
	"github.com/bazarlivre/pos-api/internal/presentation/http/handler"
	"github.com/bazarlivre/pos-api/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Draft     *handler.DraftHandler
	Sale      *handler.SaleHandler
	Customer  *handler.CustomerHandler
	Product   *handler.ProductHandler
	Promotion *handler.PromotionHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Per-client rate limiter
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerDraftRoutes(v1, h, deps)
		registerSaleRoutes(v1, h)
		registerCustomerRoutes(v1, h)
		registerProductRoutes(v1, h)
		registerPromotionRoutes(v1, h)
	}

	return router
}

func registerDraftRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	drafts := rg.Group("/drafts")
	{
		drafts.POST("", h.Draft.Start)
		drafts.POST("/edit", h.Draft.StartEdit)
		drafts.GET("/:id", h.Draft.Get)
		drafts.DELETE("/:id", h.Draft.Abandon)

		drafts.PUT("/:id/customer", h.Draft.SetCustomer)

		drafts.POST("/:id/items", h.Draft.AddItem)
		drafts.PUT("/:id/items/:productId", h.Draft.SetQuantity)
		drafts.DELETE("/:id/items/:productId", h.Draft.RemoveItem)
		drafts.POST("/:id/items/:productId/delivered", h.Draft.ToggleDelivered)

		drafts.PUT("/:id/payment", h.Draft.SetPayment)
		drafts.PUT("/:id/change", h.Draft.SetChange)
		drafts.POST("/:id/change/return-all", h.Draft.ReturnAll)
		drafts.POST("/:id/change/donate-all", h.Draft.DonateAll)

		// Advancing past the last step records the sale; the idempotency
		// key makes a retried finalize safe.
		drafts.POST("/:id/advance",
			middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}),
			h.Draft.Advance)
		drafts.POST("/:id/back", h.Draft.Back)
	}
}

func registerSaleRoutes(rg *gin.RouterGroup, h *Handlers) {
	sales := rg.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.GET("/:code", h.Sale.Get)
		sales.PUT("/:code/items/:productId/delivered", h.Sale.SetItemDelivered)
		sales.DELETE("/:code", h.Sale.Delete)
	}
}

func registerCustomerRoutes(rg *gin.RouterGroup, h *Handlers) {
	customers := rg.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/by-name/:name", h.Customer.GetByName)
		customers.GET("/:id", h.Customer.Get)
		customers.POST("", h.Customer.Upsert)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerProductRoutes(rg *gin.RouterGroup, h *Handlers) {
	products := rg.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.POST("", h.Product.Create)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerPromotionRoutes(rg *gin.RouterGroup, h *Handlers) {
	promotions := rg.Group("/promotions")
	{
		promotions.GET("", h.Promotion.List)
		promotions.GET("/active", h.Promotion.ListActive)
		promotions.GET("/:id", h.Promotion.Get)
		promotions.POST("", h.Promotion.Create)
		promotions.PUT("/:id", h.Promotion.Update)
		promotions.DELETE("/:id", h.Promotion.Delete)
	}
}
