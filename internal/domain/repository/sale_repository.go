package repository

import (
	"context"
	"time"

	"github.com/bazarlivre/pos-api/internal/domain/entity"
	"github.com/bazarlivre/pos-api/internal/domain/enum"
	"github.com/bazarlivre/pos-api/pkg/pagination"
	"github.com/google/uuid"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// Create persists a sale with its items and decrements stock for the given
	// quantities in a single transaction. Returns the product IDs that had
	// insufficient stock; in that case nothing is written.
	Create(ctx context.Context, sale *entity.Sale, decrements map[uuid.UUID]int) (failedIDs []uuid.UUID, err error)
	GetByCode(ctx context.Context, code string) (*entity.Sale, error)
	// Update replaces the sale's fields and items without touching stock.
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, code string) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// SetItemDelivered updates a single item's delivered flag.
	SetItemDelivered(ctx context.Context, code string, productID uuid.UUID, delivered bool) error
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	PaymentStatus *enum.PaymentStatus
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        string
	SortOrder     string
}
