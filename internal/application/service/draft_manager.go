package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bazarlivre/pos-api/internal/application/catalog"
	"github.com/bazarlivre/pos-api/internal/domain/entity"
	"github.com/bazarlivre/pos-api/internal/domain/enum"
	"github.com/bazarlivre/pos-api/internal/domain/pricing"
	"github.com/bazarlivre/pos-api/internal/domain/repository"
	"github.com/bazarlivre/pos-api/pkg/apperror"
	"github.com/google/uuid"
)

// DraftManager owns all in-progress sale drafts. Drafts are kept in memory
// and expire after a period of inactivity; finalization hands the draft over
// to the sale service and removes it.
type DraftManager struct {
	customerRepo repository.CustomerRepository
	promotions   *catalog.PromotionCache
	inventory    *catalog.InventoryCache
	sales        *SaleService

	mu         sync.RWMutex
	drafts     map[uuid.UUID]*draftEntry
	idleExpiry time.Duration
	now        func() time.Time
}

type draftEntry struct {
	mu    sync.Mutex
	draft *SaleDraft
}

// NewDraftManager creates a new draft manager
func NewDraftManager(
	customerRepo repository.CustomerRepository,
	promotions *catalog.PromotionCache,
	inventory *catalog.InventoryCache,
	sales *SaleService,
	idleExpiry time.Duration,
) *DraftManager {
	return &DraftManager{
		customerRepo: customerRepo,
		promotions:   promotions,
		inventory:    inventory,
		sales:        sales,
		drafts:       make(map[uuid.UUID]*draftEntry),
		idleExpiry:   idleExpiry,
		now:          time.Now,
	}
}

// StartDraft opens a fresh draft at the customer step.
func (m *DraftManager) StartDraft(vendedor string) (*SaleDraft, error) {
	vendedor = strings.TrimSpace(vendedor)
	if vendedor == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "vendedor", Message: "Seller name is required"},
		})
	}

	now := m.now()
	draft := &SaleDraft{
		ID:        uuid.New(),
		Vendedor:  vendedor,
		Step:      enum.StepCustomer,
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.mu.Lock()
	m.drafts[draft.ID] = &draftEntry{draft: draft}
	m.mu.Unlock()

	return draft, nil
}

// StartEdit opens a draft seeded from an existing sale. Editing starts at the
// payment step; the items step can be revisited via Back, but the customer is
// settled and stock was already decremented when the sale was first recorded.
func (m *DraftManager) StartEdit(ctx context.Context, code string) (*SaleDraft, error) {
	sale, err := m.sales.GetSale(ctx, code)
	if err != nil {
		return nil, err
	}

	now := m.now()
	draft := &SaleDraft{
		ID:            uuid.New(),
		Vendedor:      sale.Vendedor,
		Step:          enum.StepPayment,
		EditCode:      sale.Code,
		CustomerName:  sale.CustomerName,
		CustomerPhone: sale.CustomerPhone,
		Tendered:      sale.ValorPago,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, item := range sale.Items {
		draft.Items = append(draft.Items, DraftItem{
			ProductID: item.ProductID,
			Name:      item.Nome,
			UnitPrice: item.Preco,
			Quantity:  item.Qtd,
			Delivered: item.Entregue,
		})
	}
	draft.recompute(m.promotions.Snapshot(), now)

	// Keep the recorded change split when it still adds up.
	if sale.Troco+sale.Doacao == draft.Change {
		draft.Returned = sale.Troco
		draft.Donated = sale.Doacao
		draft.changeSet = true
	}

	m.mu.Lock()
	m.drafts[draft.ID] = &draftEntry{draft: draft}
	m.mu.Unlock()

	return draft, nil
}

// Get returns a snapshot copy of the draft.
func (m *DraftManager) Get(id uuid.UUID) (*SaleDraft, error) {
	entry, err := m.entry(id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.draft.clone(), nil
}

// Abandon discards a draft. Abandoning has no side effects: nothing was
// persisted and no stock was touched.
func (m *DraftManager) Abandon(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drafts[id]; !ok {
		return apperror.NewNotFoundError("Draft")
	}
	delete(m.drafts, id)
	return nil
}

// SetCustomer sets the customer name and phone on a draft at the customer step.
func (m *DraftManager) SetCustomer(id uuid.UUID, name, phone string) (*SaleDraft, error) {
	return m.mutate(id, func(d *SaleDraft) error {
		if d.Step != enum.StepCustomer {
			return apperror.NewConflictError("Customer can only be changed at the customer step")
		}
		d.CustomerName = strings.TrimSpace(name)
		d.CustomerPhone = strings.TrimSpace(phone)
		return nil
	})
}

// AddItem adds a product to the cart, merging quantities when the product is
// already present. Availability is checked against the inventory snapshot;
// edits skip the check because their stock was already committed.
func (m *DraftManager) AddItem(id uuid.UUID, productID uuid.UUID, quantity int) (*SaleDraft, error) {
	return m.mutate(id, func(d *SaleDraft) error {
		if d.Step != enum.StepItems {
			return apperror.NewConflictError("Items can only be changed at the items step")
		}
		if quantity < 1 {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: "quantity", Message: "Quantity must be at least 1"},
			})
		}

		product, ok := m.inventory.Get(productID)
		if !ok {
			return apperror.NewNotFoundError("Product")
		}

		total := quantity
		idx := -1
		for i, item := range d.Items {
			if item.ProductID == productID {
				idx = i
				total += item.Quantity
			}
		}
		if !d.IsEdit() && total > product.Quantity {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: "quantity", Message: "Insufficient stock for " + product.Name},
			})
		}

		if idx >= 0 {
			d.Items[idx].Quantity = total
		} else {
			d.Items = append(d.Items, DraftItem{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: product.SalePrice,
				Quantity:  quantity,
			})
		}
		return nil
	})
}

// SetQuantity sets the quantity of a cart line; zero removes it.
func (m *DraftManager) SetQuantity(id uuid.UUID, productID uuid.UUID, quantity int) (*SaleDraft, error) {
	return m.mutate(id, func(d *SaleDraft) error {
		if d.Step != enum.StepItems {
			return apperror.NewConflictError("Items can only be changed at the items step")
		}
		if quantity < 0 {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: "quantity", Message: "Quantity cannot be negative"},
			})
		}

		idx := -1
		for i, item := range d.Items {
			if item.ProductID == productID {
				idx = i
			}
		}
		if idx < 0 {
			return apperror.NewNotFoundError("Cart item")
		}

		if quantity == 0 {
			d.Items = append(d.Items[:idx], d.Items[idx+1:]...)
			return nil
		}

		if !d.IsEdit() {
			if available := m.inventory.Available(productID); quantity > available {
				return apperror.NewValidationError([]apperror.FieldError{
					{Field: "quantity", Message: "Insufficient stock for " + d.Items[idx].Name},
				})
			}
		}
		d.Items[idx].Quantity = quantity
		return nil
	})
}

// RemoveItem removes a cart line.
func (m *DraftManager) RemoveItem(id uuid.UUID, productID uuid.UUID) (*SaleDraft, error) {
	return m.SetQuantity(id, productID, 0)
}

// ToggleDelivered flips the delivered flag on a cart line.
func (m *DraftManager) ToggleDelivered(id uuid.UUID, productID uuid.UUID) (*SaleDraft, error) {
	return m.mutate(id, func(d *SaleDraft) error {
		for i := range d.Items {
			if d.Items[i].ProductID == productID {
				d.Items[i].Delivered = !d.Items[i].Delivered
				return nil
			}
		}
		return apperror.NewNotFoundError("Cart item")
	})
}

// SetTendered records how much the customer handed over.
func (m *DraftManager) SetTendered(id uuid.UUID, tendered int64) (*SaleDraft, error) {
	return m.mutate(id, func(d *SaleDraft) error {
		if d.Step != enum.StepPayment {
			return apperror.NewConflictError("Payment can only be changed at the payment step")
		}
		if tendered < 0 {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: "valorPago", Message: "Amount paid cannot be negative"},
			})
		}
		d.Tendered = tendered
		return nil
	})
}

// SetReturned edits the returned half of the change split; the donated half
// is recomputed as the complement.
func (m *DraftManager) SetReturned(id uuid.UUID, returned int64) (*SaleDraft, error) {
	return m.editSplit(id, func(change int64) pricing.ChangeSplit {
		return pricing.SplitByReturned(change, returned)
	})
}

// SetDonated edits the donated half of the change split; the returned half
// is recomputed as the complement.
func (m *DraftManager) SetDonated(id uuid.UUID, donated int64) (*SaleDraft, error) {
	return m.editSplit(id, func(change int64) pricing.ChangeSplit {
		return pricing.SplitByDonated(change, donated)
	})
}

// ReturnAllChange hands the full change back to the customer.
func (m *DraftManager) ReturnAllChange(id uuid.UUID) (*SaleDraft, error) {
	return m.editSplit(id, pricing.ReturnAll)
}

// DonateAllChange donates the full change.
func (m *DraftManager) DonateAllChange(id uuid.UUID) (*SaleDraft, error) {
	return m.editSplit(id, pricing.DonateAll)
}

func (m *DraftManager) editSplit(id uuid.UUID, split func(change int64) pricing.ChangeSplit) (*SaleDraft, error) {
	return m.mutate(id, func(d *SaleDraft) error {
		if d.Step != enum.StepChange {
			return apperror.NewConflictError("Change can only be split at the change step")
		}
		s := split(d.Change)
		d.Returned = s.Returned
		d.Donated = s.Donated
		d.changeSet = true
		return nil
	})
}

// AdvanceResult carries the outcome of an Advance call: the updated draft
// while composing, or the recorded sale once the draft completed.
type AdvanceResult struct {
	Draft *SaleDraft
	Sale  *entity.Sale
}

// Advance validates the current step and moves the draft forward. Advancing
// past the customer step upserts the customer directory entry; advancing past
// payment (or change, when there is change to split) finalizes the sale.
func (m *DraftManager) Advance(ctx context.Context, id uuid.UUID) (*AdvanceResult, error) {
	entry, err := m.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	d := entry.draft
	now := m.now()

	switch d.Step {
	case enum.StepCustomer:
		if strings.TrimSpace(d.CustomerName) == "" {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "cliente", Message: "Customer name is required"},
			})
		}
		customer := &entity.Customer{
			Name:  entity.NormalizeName(d.CustomerName),
			Phone: d.CustomerPhone,
		}
		if err := m.customerRepo.Upsert(ctx, customer); err != nil {
			return nil, apperror.NewUnavailableError("Customer directory unavailable")
		}
		d.Step = enum.StepItems
		d.UpdatedAt = now
		return &AdvanceResult{Draft: d.clone()}, nil

	case enum.StepItems:
		if len(d.Items) == 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "itens", Message: "At least one item is required"},
			})
		}
		d.Step = enum.StepPayment
		d.recompute(m.promotions.Snapshot(), now)
		return &AdvanceResult{Draft: d.clone()}, nil

	case enum.StepPayment:
		d.recompute(m.promotions.Snapshot(), now)
		if d.Change > 0 {
			d.Step = enum.StepChange
			return &AdvanceResult{Draft: d.clone()}, nil
		}
		return m.finalizeLocked(ctx, id, d)

	case enum.StepChange:
		return m.finalizeLocked(ctx, id, d)

	default:
		return nil, apperror.NewConflictError("Draft is already complete")
	}
}

// Back moves the draft one step backwards. Edits can revisit the items step
// but never re-enter the customer step; new sales never go behind the
// customer step.
func (m *DraftManager) Back(id uuid.UUID) (*SaleDraft, error) {
	return m.mutate(id, func(d *SaleDraft) error {
		floor := enum.StepCustomer
		if d.IsEdit() {
			floor = enum.StepItems
		}
		if d.Step <= floor || d.Step >= enum.StepComplete {
			return apperror.NewConflictError("Cannot go back from this step")
		}
		d.Step--
		return nil
	})
}

// finalizeLocked records the sale and removes the draft. Called with the
// entry lock held.
func (m *DraftManager) finalizeLocked(ctx context.Context, id uuid.UUID, d *SaleDraft) (*AdvanceResult, error) {
	sale, err := m.sales.Finalize(ctx, d)
	if err != nil {
		return nil, err
	}

	d.Step = enum.StepComplete
	d.UpdatedAt = m.now()

	m.mu.Lock()
	delete(m.drafts, id)
	m.mu.Unlock()

	return &AdvanceResult{Draft: d.clone(), Sale: sale}, nil
}

func (m *DraftManager) entry(id uuid.UUID) (*draftEntry, error) {
	m.mu.RLock()
	entry, ok := m.drafts[id]
	m.mu.RUnlock()
	if !ok {
		return nil, apperror.NewNotFoundError("Draft")
	}
	return entry, nil
}

// mutate runs fn under the entry lock and recomputes the draft afterwards.
func (m *DraftManager) mutate(id uuid.UUID, fn func(d *SaleDraft) error) (*SaleDraft, error) {
	entry, err := m.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := fn(entry.draft); err != nil {
		return nil, err
	}
	entry.draft.recompute(m.promotions.Snapshot(), m.now())
	return entry.draft.clone(), nil
}

// Start launches the background sweep that drops idle drafts.
func (m *DraftManager) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(m.idleExpiry / 4)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.sweep()
			}
		}
	}()
}

// sweep removes drafts untouched for longer than the idle expiry. Candidates
// are collected under the map lock, then re-checked under each entry lock so
// a draft touched mid-sweep survives. The map lock is never held while an
// entry lock is acquired, matching the order used by finalizeLocked.
func (m *DraftManager) sweep() {
	cutoff := m.now().Add(-m.idleExpiry)

	m.mu.RLock()
	candidates := make(map[uuid.UUID]*draftEntry, len(m.drafts))
	for id, entry := range m.drafts {
		candidates[id] = entry
	}
	m.mu.RUnlock()

	for id, entry := range candidates {
		entry.mu.Lock()
		if entry.draft.UpdatedAt.Before(cutoff) {
			m.mu.Lock()
			delete(m.drafts, id)
			m.mu.Unlock()
		}
		entry.mu.Unlock()
	}
}
