package handler

import (
	"github.com/bazarlivre/pos-api/internal/application/service"
	"github.com/bazarlivre/pos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DraftHandler handles sale draft HTTP requests
type DraftHandler struct {
	drafts *service.DraftManager
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(drafts *service.DraftManager) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

// Start handles opening a new sale draft
func (h *DraftHandler) Start(c *gin.Context) {
	var req struct {
		Vendedor string `json:"vendedor" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	draft, err := h.drafts.StartDraft(req.Vendedor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Draft started", draft)
}

// StartEdit handles opening an edit draft for an existing sale
func (h *DraftHandler) StartEdit(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	draft, err := h.drafts.StartEdit(c.Request.Context(), req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Edit draft started", draft)
}

// Get handles retrieving a draft
func (h *DraftHandler) Get(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	draft, err := h.drafts.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft retrieved", draft)
}

// Abandon handles discarding a draft
func (h *DraftHandler) Abandon(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	if err := h.drafts.Abandon(id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetCustomer handles setting the draft's customer
func (h *DraftHandler) SetCustomer(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	var req struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	draft, err := h.drafts.SetCustomer(id, req.Name, req.Phone)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer set", draft)
}

// AddItem handles adding a product to the cart
func (h *DraftHandler) AddItem(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	var req struct {
		ProductID uuid.UUID `json:"productId" binding:"required"`
		Quantity  int       `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	draft, err := h.drafts.AddItem(id, req.ProductID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added", draft)
}

// SetQuantity handles changing a cart line's quantity
func (h *DraftHandler) SetQuantity(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	productID, ok := h.productID(c)
	if !ok {
		return
	}

	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	draft, err := h.drafts.SetQuantity(id, productID, *req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quantity updated", draft)
}

// RemoveItem handles removing a cart line
func (h *DraftHandler) RemoveItem(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	productID, ok := h.productID(c)
	if !ok {
		return
	}

	draft, err := h.drafts.RemoveItem(id, productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed", draft)
}

// ToggleDelivered handles flipping a cart line's delivered flag
func (h *DraftHandler) ToggleDelivered(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	productID, ok := h.productID(c)
	if !ok {
		return
	}

	draft, err := h.drafts.ToggleDelivered(id, productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Delivery flag updated", draft)
}

// SetPayment handles recording the amount tendered
func (h *DraftHandler) SetPayment(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	var req struct {
		ValorPago *float64 `json:"valorPago" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	draft, err := h.drafts.SetTendered(id, toCents(*req.ValorPago))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment updated", draft)
}

// SetChange handles editing the change split. Exactly one of devolver and
// doacao must be present; the other half is recomputed as the complement.
func (h *DraftHandler) SetChange(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	var req struct {
		Devolver *float64 `json:"devolver"`
		Doacao   *float64 `json:"doacao"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var (
		draft *service.SaleDraft
		err   error
	)
	switch {
	case req.Devolver != nil && req.Doacao == nil:
		draft, err = h.drafts.SetReturned(id, toCents(*req.Devolver))
	case req.Doacao != nil && req.Devolver == nil:
		draft, err = h.drafts.SetDonated(id, toCents(*req.Doacao))
	default:
		response.BadRequest(c, "Provide exactly one of devolver or doacao")
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Change split updated", draft)
}

// ReturnAll handles routing the full change back to the customer
func (h *DraftHandler) ReturnAll(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	draft, err := h.drafts.ReturnAllChange(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Change returned to customer", draft)
}

// DonateAll handles donating the full change
func (h *DraftHandler) DonateAll(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	draft, err := h.drafts.DonateAllChange(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Change donated", draft)
}

// Advance handles moving the draft to the next step; finalization happens
// when the last step is passed.
func (h *DraftHandler) Advance(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	result, err := h.drafts.Advance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Sale != nil {
		response.Created(c, "Sale recorded", result.Sale)
		return
	}
	response.OK(c, "Draft advanced", result.Draft)
}

// Back handles moving the draft to the previous step
func (h *DraftHandler) Back(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	draft, err := h.drafts.Back(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft moved back", draft)
}

func (h *DraftHandler) draftID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid draft ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *DraftHandler) productID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return uuid.Nil, false
	}
	return id, true
}
