package handler

import (
	"time"

	"github.com/bazarlivre/pos-api/internal/application/service"
	"github.com/bazarlivre/pos-api/internal/domain/enum"
	"github.com/bazarlivre/pos-api/internal/domain/repository"
	"github.com/bazarlivre/pos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SaleHandler handles sale history HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// List handles listing sales with filters
func (h *SaleHandler) List(c *gin.Context) {
	params := &repository.SaleFilterParams{
		Pagination: pageParams(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if status := c.Query("payment_status"); status != "" {
		var ps enum.PaymentStatus
		if err := ps.UnmarshalJSON([]byte(`"` + status + `"`)); err != nil {
			response.BadRequest(c, "Unknown payment status: "+status)
			return
		}
		params.PaymentStatus = &ps
	}

	if err := h.applyPeriod(c, params); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// applyPeriod translates period shorthands (today, week, month) or explicit
// start/end dates into the filter params.
func (h *SaleHandler) applyPeriod(c *gin.Context, params *repository.SaleFilterParams) error {
	now := time.Now()
	switch c.Query("period") {
	case "":
	case "today":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		params.StartDate = &start
		return nil
	case "week":
		start := now.AddDate(0, 0, -7)
		params.StartDate = &start
		return nil
	case "month":
		start := now.AddDate(0, -1, 0)
		params.StartDate = &start
		return nil
	default:
		return errInvalidPeriod
	}

	if s := c.Query("start_date"); s != "" {
		start, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return errInvalidDate
		}
		params.StartDate = &start
	}
	if s := c.Query("end_date"); s != "" {
		end, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return errInvalidDate
		}
		// End date is inclusive
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		params.EndDate = &end
	}
	return nil
}

// Get handles retrieving a single sale by code
func (h *SaleHandler) Get(c *gin.Context) {
	sale, err := h.saleService.GetSale(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale retrieved successfully", sale)
}

// SetItemDelivered handles flipping the delivered flag on one sale item
func (h *SaleHandler) SetItemDelivered(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req struct {
		Entregue *bool `json:"entregue" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sale, err := h.saleService.SetItemDelivered(c.Request.Context(), c.Param("code"), productID, *req.Entregue)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Delivery flag updated", sale)
}

// Delete handles removing a sale and restoring its stock
func (h *SaleHandler) Delete(c *gin.Context) {
	if err := h.saleService.DeleteSale(c.Request.Context(), c.Param("code")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
