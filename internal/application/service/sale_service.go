package service

import (
	"context"
	"fmt"

	"github.com/bazarlivre/pos-api/internal/domain/entity"
	"github.com/bazarlivre/pos-api/internal/domain/enum"
	"github.com/bazarlivre/pos-api/internal/domain/repository"
	"github.com/bazarlivre/pos-api/pkg/apperror"
	"github.com/bazarlivre/pos-api/pkg/pagination"
	"github.com/google/uuid"
)

// SaleService records finalized sales and serves the sale history.
type SaleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
	}
}

// Finalize turns a completed draft into a persistent sale record. New sales
// are written together with their stock decrements in one transaction; edits
// replace the stored record without touching stock.
func (s *SaleService) Finalize(ctx context.Context, draft *SaleDraft) (*entity.Sale, error) {
	if len(draft.Items) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "itens", Message: "At least one item is required"},
		})
	}

	paymentStatus := draft.paymentStatus()
	deliveryStatus := draft.deliveryStatus()
	status := paymentStatus.String()
	if deliveryStatus == enum.DeliveryStatusEntregue {
		status = deliveryStatus.String()
	}

	code := draft.EditCode
	if code == "" {
		code = entity.NewSaleCode()
	}

	sale := &entity.Sale{
		Code:           code,
		Vendedor:       draft.Vendedor,
		CustomerName:   entity.NormalizeName(draft.CustomerName),
		CustomerPhone:  draft.CustomerPhone,
		ValorTotal:     draft.Subtotal,
		ValorPago:      draft.Tendered,
		Doacao:         draft.Donated,
		Troco:          draft.Returned,
		Desconto:       draft.Discount,
		Status:         status,
		PaymentStatus:  paymentStatus,
		DeliveryStatus: deliveryStatus,
		Pago:           paymentStatus == enum.PaymentStatusPago,
	}
	for _, item := range draft.Items {
		sale.Items = append(sale.Items, entity.SaleItem{
			SaleCode:  code,
			ProductID: item.ProductID,
			Nome:      item.Name,
			Preco:     item.UnitPrice,
			Qtd:       item.Quantity,
			Pago:      item.Paid,
			Entregue:  item.Delivered,
		})
	}

	if draft.IsEdit() {
		existing, err := s.saleRepo.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, apperror.NewConflictError(fmt.Sprintf("Sale %s no longer exists", code))
		}
		sale.CreatedAt = existing.CreatedAt
		if err := s.saleRepo.Update(ctx, sale); err != nil {
			return nil, err
		}
		return sale, nil
	}

	decrements := make(map[uuid.UUID]int, len(draft.Items))
	for _, item := range draft.Items {
		decrements[item.ProductID] = item.Quantity
	}

	failedIDs, err := s.saleRepo.Create(ctx, sale, decrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		return nil, s.insufficientStockError(ctx, failedIDs)
	}

	return sale, nil
}

// insufficientStockError names the products that could not be decremented.
func (s *SaleService) insufficientStockError(ctx context.Context, failedIDs []uuid.UUID) error {
	fieldErrors := make([]apperror.FieldError, 0, len(failedIDs))
	products, err := s.productRepo.GetByIDs(ctx, failedIDs)
	if err == nil {
		for _, p := range products {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   "itens",
				Message: "Insufficient stock for " + p.Name,
			})
		}
	}
	if len(fieldErrors) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "itens",
			Message: "Insufficient stock",
		})
	}
	return apperror.NewValidationError(fieldErrors)
}

// GetSale retrieves a sale with its items by code.
func (s *SaleService) GetSale(ctx context.Context, code string) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales returns the sale history with filters and pagination.
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pg := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pg), nil
}

// SetItemDelivered flips the delivered flag on one sale item and re-derives
// the sale's aggregate status.
func (s *SaleService) SetItemDelivered(ctx context.Context, code string, productID uuid.UUID, delivered bool) (*entity.Sale, error) {
	sale, err := s.GetSale(ctx, code)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range sale.Items {
		if sale.Items[i].ProductID == productID {
			sale.Items[i].Entregue = delivered
			found = true
		}
	}
	if !found {
		return nil, apperror.NewNotFoundError("Sale item")
	}

	allDelivered := true
	for _, item := range sale.Items {
		if !item.Entregue {
			allDelivered = false
		}
	}
	if allDelivered {
		sale.DeliveryStatus = enum.DeliveryStatusEntregue
		sale.Status = sale.DeliveryStatus.String()
	} else {
		sale.DeliveryStatus = enum.DeliveryStatusPendente
		sale.Status = sale.PaymentStatus.String()
	}

	if err := s.saleRepo.Update(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// DeleteSale removes a sale and returns its quantities to stock.
func (s *SaleService) DeleteSale(ctx context.Context, code string) error {
	sale, err := s.GetSale(ctx, code)
	if err != nil {
		return err
	}

	if err := s.saleRepo.Delete(ctx, code); err != nil {
		return err
	}

	increments := make(map[uuid.UUID]int, len(sale.Items))
	for _, item := range sale.Items {
		increments[item.ProductID] = item.Qtd
	}
	return s.productRepo.AtomicIncrementBatch(ctx, increments)
}
