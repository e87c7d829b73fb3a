// Package catalog maintains in-memory snapshots of the promotion and product
// catalogs. Draft recomputation reads these snapshots instead of hitting the
// database on every cart edit; the snapshots are refreshed in the background
// and kept stale when a refresh fails.
package catalog

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bazarlivre/pos-api/internal/domain/entity"
	"github.com/bazarlivre/pos-api/internal/domain/repository"
)

// PromotionCache holds the last successfully loaded set of active promotions.
type PromotionCache struct {
	repo     repository.PromotionRepository
	interval time.Duration

	mu         sync.RWMutex
	promotions []entity.Promotion
	loadedAt   time.Time
}

func NewPromotionCache(repo repository.PromotionRepository, interval time.Duration) *PromotionCache {
	return &PromotionCache{repo: repo, interval: interval}
}

// Refresh reloads active promotions. On failure the previous snapshot is kept.
func (c *PromotionCache) Refresh(ctx context.Context) error {
	promotions, err := c.repo.ListActive(ctx)
	if err != nil {
		log.Printf("Warning: promotion snapshot refresh failed, keeping stale data: %v", err)
		return err
	}

	c.mu.Lock()
	c.promotions = promotions
	c.loadedAt = time.Now()
	c.mu.Unlock()
	return nil
}

// Snapshot returns the current promotion set. The returned slice must not be
// mutated by callers.
func (c *PromotionCache) Snapshot() []entity.Promotion {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.promotions
}

// LoadedAt reports when the snapshot was last refreshed successfully.
func (c *PromotionCache) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

// Start refreshes the snapshot periodically until ctx is cancelled.
func (c *PromotionCache) Start(ctx context.Context) {
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
