package handler

import (
	"github.com/bazarlivre/pos-api/internal/application/service"
	"github.com/bazarlivre/pos-api/internal/domain/entity"
	"github.com/bazarlivre/pos-api/internal/domain/enum"
	"github.com/bazarlivre/pos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PromotionHandler handles promotion HTTP requests
type PromotionHandler struct {
	promotionService *service.PromotionService
}

// NewPromotionHandler creates a new promotion handler
func NewPromotionHandler(promotionService *service.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

type promotionRequest struct {
	Name         string               `json:"name" binding:"required"`
	Discount     float64              `json:"discount" binding:"required"`
	DiscountType enum.DiscountType    `json:"discountType" binding:"required"`
	MaxDiscount  *float64             `json:"maxDiscount"`
	IsActive     bool                 `json:"isActive"`
	StartDate    *string              `json:"startDate"`
	EndDate      *string              `json:"endDate"`
	Criteria     entity.CriterionList `json:"criterio"`
}

func (r *promotionRequest) toInput() *service.PromotionInput {
	return &service.PromotionInput{
		Name:         r.Name,
		Discount:     r.Discount,
		DiscountType: r.DiscountType,
		MaxDiscount:  r.MaxDiscount,
		IsActive:     r.IsActive,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Criteria:     r.Criteria,
	}
}

// List handles listing promotions
func (h *PromotionHandler) List(c *gin.Context) {
	result, err := h.promotionService.ListPromotions(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Promotions retrieved successfully", result)
}

// ListActive handles listing active promotions
func (h *PromotionHandler) ListActive(c *gin.Context) {
	promotions, err := h.promotionService.ListActivePromotions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Active promotions retrieved successfully", promotions)
}

// Get handles retrieving a promotion by ID
func (h *PromotionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid promotion ID")
		return
	}

	promotion, err := h.promotionService.GetPromotion(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Promotion retrieved successfully", promotion)
}

// Create handles creating a promotion
func (h *PromotionHandler) Create(c *gin.Context) {
	var req promotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	promotion, err := h.promotionService.CreatePromotion(c.Request.Context(), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Promotion created successfully", promotion)
}

// Update handles updating a promotion
func (h *PromotionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid promotion ID")
		return
	}

	var req promotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	promotion, err := h.promotionService.UpdatePromotion(c.Request.Context(), id, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Promotion updated successfully", promotion)
}

// Delete handles removing a promotion
func (h *PromotionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid promotion ID")
		return
	}

	if err := h.promotionService.DeletePromotion(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
