package service

import (
	"context"

	"github.com/bazarlivre/pos-api/internal/domain/entity"
	"github.com/bazarlivre/pos-api/internal/domain/enum"
	"github.com/bazarlivre/pos-api/internal/domain/repository"
	"github.com/bazarlivre/pos-api/pkg/apperror"
	"github.com/bazarlivre/pos-api/pkg/pagination"
	"github.com/google/uuid"
)

// PromotionService handles promotion-related operations
type PromotionService struct {
	promotionRepo repository.PromotionRepository
}

// NewPromotionService creates a new promotion service
func NewPromotionService(promotionRepo repository.PromotionRepository) *PromotionService {
	return &PromotionService{promotionRepo: promotionRepo}
}

// PromotionInput represents the create/update promotion input
type PromotionInput struct {
	Name         string
	Discount     float64
	DiscountType enum.DiscountType
	MaxDiscount  *float64
	IsActive     bool
	StartDate    *string
	EndDate      *string
	Criteria     entity.CriterionList
}

func (in *PromotionInput) validate() error {
	var fieldErrors []apperror.FieldError
	if in.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if !in.DiscountType.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discountType", Message: "Unknown discount type"})
	}
	if in.Discount <= 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount", Message: "Discount must be positive"})
	}
	if in.DiscountType == enum.DiscountTypePercentage && in.Discount > 100 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "discount", Message: "Percentage cannot exceed 100"})
	}
	if in.MaxDiscount != nil && *in.MaxDiscount < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "maxDiscount", Message: "Max discount cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreatePromotion creates a new promotion
func (s *PromotionService) CreatePromotion(ctx context.Context, input *PromotionInput) (*entity.Promotion, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	promotion := &entity.Promotion{
		Name:         input.Name,
		Discount:     input.Discount,
		DiscountType: input.DiscountType,
		MaxDiscount:  input.MaxDiscount,
		IsActive:     input.IsActive,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Criteria:     input.Criteria,
	}
	if err := s.promotionRepo.Create(ctx, promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

// GetPromotion retrieves a promotion by ID
func (s *PromotionService) GetPromotion(ctx context.Context, id uuid.UUID) (*entity.Promotion, error) {
	promotion, err := s.promotionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, apperror.NewNotFoundError("Promotion")
	}
	return promotion, nil
}

// UpdatePromotion updates an existing promotion
func (s *PromotionService) UpdatePromotion(ctx context.Context, id uuid.UUID, input *PromotionInput) (*entity.Promotion, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	promotion, err := s.GetPromotion(ctx, id)
	if err != nil {
		return nil, err
	}

	promotion.Name = input.Name
	promotion.Discount = input.Discount
	promotion.DiscountType = input.DiscountType
	promotion.MaxDiscount = input.MaxDiscount
	promotion.IsActive = input.IsActive
	promotion.StartDate = input.StartDate
	promotion.EndDate = input.EndDate
	promotion.Criteria = input.Criteria

	if err := s.promotionRepo.Update(ctx, promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

// DeletePromotion removes a promotion
func (s *PromotionService) DeletePromotion(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetPromotion(ctx, id); err != nil {
		return err
	}
	return s.promotionRepo.Delete(ctx, id)
}

// ListPromotions returns promotions with pagination
func (s *PromotionService) ListPromotions(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Promotion], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	promotions, total, err := s.promotionRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pg := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(promotions, pg), nil
}

// ListActivePromotions returns every active promotion. Date windows are not
// filtered here; they are checked against the sale date at evaluation time.
func (s *PromotionService) ListActivePromotions(ctx context.Context) ([]entity.Promotion, error) {
	return s.promotionRepo.ListActive(ctx)
}
