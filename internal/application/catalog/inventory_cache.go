package catalog

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bazarlivre/pos-api/internal/domain/entity"
	"github.com/bazarlivre/pos-api/internal/domain/repository"
	"github.com/google/uuid"
)

// InventoryCache holds the last successfully loaded product catalog, indexed
// by product ID. Stock figures here are advisory; the authoritative check
// happens in the finalize transaction.
type InventoryCache struct {
	repo     repository.ProductRepository
	interval time.Duration

	mu       sync.RWMutex
	products map[uuid.UUID]entity.Product
	loadedAt time.Time
}

func NewInventoryCache(repo repository.ProductRepository, interval time.Duration) *InventoryCache {
	return &InventoryCache{
		repo:     repo,
		interval: interval,
		products: make(map[uuid.UUID]entity.Product),
	}
}

// Refresh reloads the product catalog. On failure the previous snapshot is kept.
func (c *InventoryCache) Refresh(ctx context.Context) error {
	products, err := c.repo.ListAll(ctx)
	if err != nil {
		log.Printf("Warning: inventory snapshot refresh failed, keeping stale data: %v", err)
		return err
	}

	indexed := make(map[uuid.UUID]entity.Product, len(products))
	for _, p := range products {
		indexed[p.ID] = p
	}

	c.mu.Lock()
	c.products = indexed
	c.loadedAt = time.Now()
	c.mu.Unlock()
	return nil
}

// Get returns the snapshot copy of a product, if present.
func (c *InventoryCache) Get(id uuid.UUID) (entity.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	return p, ok
}

// Available returns the snapshot stock quantity for a product, zero if unknown.
func (c *InventoryCache) Available(id uuid.UUID) int {
	p, ok := c.Get(id)
	if !ok {
		return 0
	}
	return p.Quantity
}

// LoadedAt reports when the snapshot was last refreshed successfully.
func (c *InventoryCache) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

// Start refreshes the snapshot periodically until ctx is cancelled.
func (c *InventoryCache) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = c.Refresh(ctx)
			}
		}
	}()
}
