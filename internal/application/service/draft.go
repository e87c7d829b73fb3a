package service

import (
	"encoding/json"
	"time"

	"github.com/bazarlivre/pos-api/internal/domain/entity"
	"github.com/bazarlivre/pos-api/internal/domain/enum"
	"github.com/bazarlivre/pos-api/internal/domain/pricing"
	"github.com/google/uuid"
)

// DraftItem is a cart line inside an in-progress sale draft.
type DraftItem struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice int64
	Quantity  int
	Paid      bool
	Delivered bool
}

// Subtotal returns unit price times quantity in cents.
func (i DraftItem) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// draftItemJSON is the wire representation with decimal prices
type draftItemJSON struct {
	ProductID uuid.UUID `json:"id"`
	Nome      string    `json:"nome"`
	Preco     float64   `json:"preco"`
	Qtd       int       `json:"quantidade"`
	Pago      bool      `json:"pago"`
	Entregue  bool      `json:"entregue"`
}

// MarshalJSON converts cent prices to decimals at the JSON boundary
func (i DraftItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(draftItemJSON{
		ProductID: i.ProductID,
		Nome:      i.Name,
		Preco:     float64(i.UnitPrice) / 100,
		Qtd:       i.Quantity,
		Pago:      i.Paid,
		Entregue:  i.Delivered,
	})
}

// SaleDraft is the working state of a sale being composed step by step.
// Drafts live in memory only; nothing is persisted until finalization.
// All monetary fields are cents.
type SaleDraft struct {
	ID       uuid.UUID
	Vendedor string
	Step     enum.SaleStep

	// EditCode is set when the draft edits an existing sale instead of
	// creating a new one. Edits start at the payment step and never touch
	// stock on finalization.
	EditCode string

	CustomerName  string
	CustomerPhone string

	Items []DraftItem

	Subtotal int64
	Discount int64
	Applied  []pricing.AppliedPromotion
	Total    int64
	Tendered int64

	Change    int64
	Returned  int64
	Donated   int64
	changeSet bool // true once the operator edited the split by hand

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsEdit reports whether the draft edits an existing sale.
func (d *SaleDraft) IsEdit() bool {
	return d.EditCode != ""
}

// draftJSON is the wire representation with decimal amounts
type draftJSON struct {
	ID        uuid.UUID                  `json:"id"`
	Vendedor  string                     `json:"vendedor"`
	Step      enum.SaleStep              `json:"step"`
	EditCode  string                     `json:"editCode,omitempty"`
	Cliente   string                     `json:"cliente"`
	Telefone  string                     `json:"telefone"`
	Itens     []DraftItem                `json:"itens"`
	Subtotal  float64                    `json:"valorTotal"`
	Desconto  float64                    `json:"desconto"`
	Promos    []pricing.AppliedPromotion `json:"promocoes"`
	Total     float64                    `json:"total"`
	ValorPago float64                    `json:"valorPago"`
	Troco     float64                    `json:"troco"`
	Devolver  float64                    `json:"devolver"`
	Doacao    float64                    `json:"doacao"`
	CreatedAt time.Time                  `json:"createdAt"`
	UpdatedAt time.Time                  `json:"updatedAt"`
}

// MarshalJSON converts cent amounts to decimals at the JSON boundary
func (d *SaleDraft) MarshalJSON() ([]byte, error) {
	return json.Marshal(draftJSON{
		ID:        d.ID,
		Vendedor:  d.Vendedor,
		Step:      d.Step,
		EditCode:  d.EditCode,
		Cliente:   d.CustomerName,
		Telefone:  d.CustomerPhone,
		Itens:     d.Items,
		Subtotal:  float64(d.Subtotal) / 100,
		Desconto:  float64(d.Discount) / 100,
		Promos:    d.Applied,
		Total:     float64(d.Total) / 100,
		ValorPago: float64(d.Tendered) / 100,
		Troco:     float64(d.Change) / 100,
		Devolver:  float64(d.Returned) / 100,
		Doacao:    float64(d.Donated) / 100,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	})
}

// clone returns a deep copy safe to hand out after the draft lock is released.
func (d *SaleDraft) clone() *SaleDraft {
	out := *d
	out.Items = append([]DraftItem(nil), d.Items...)
	out.Applied = append([]pricing.AppliedPromotion(nil), d.Applied...)
	return &out
}

// cart converts the draft items into pricing inputs.
func (d *SaleDraft) cart() []pricing.Item {
	cart := make([]pricing.Item, len(d.Items))
	for i, item := range d.Items {
		cart[i] = pricing.Item{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}
	}
	return cart
}

// recompute re-derives every dependent figure from the cart, the active
// promotions and the tendered amount. It is called after every mutation so
// the draft never carries stale totals.
func (d *SaleDraft) recompute(promotions []entity.Promotion, now time.Time) {
	cart := d.cart()
	ev := pricing.Evaluate(promotions, cart, now)

	d.Subtotal = ev.Subtotal
	d.Discount = ev.Discount
	d.Applied = ev.Applied
	d.Total = ev.Subtotal - ev.Discount

	paid := pricing.Allocate(cart, d.Discount, d.Tendered)
	for i := range d.Items {
		d.Items[i].Paid = paid[d.Items[i].ProductID]
	}

	change := d.Tendered - d.Total
	if change < 0 {
		change = 0
	}
	if change != d.Change {
		// A new change amount invalidates any manual split.
		d.Change = change
		d.changeSet = false
	}
	if !d.changeSet {
		split := pricing.ReturnAll(d.Change)
		d.Returned = split.Returned
		d.Donated = split.Donated
	}

	d.UpdatedAt = now
}

// paymentStatus derives Pago/Parcial/Pendente from the tendered amount
// against the discounted total. Any positive tender short of the total is
// Parcial, even when it completes no single line.
func (d *SaleDraft) paymentStatus() enum.PaymentStatus {
	switch {
	case d.Tendered >= d.Total:
		return enum.PaymentStatusPago
	case d.Tendered > 0:
		return enum.PaymentStatusParcial
	default:
		return enum.PaymentStatusPendente
	}
}

// deliveryStatus is Entregue only when every line was handed over.
func (d *SaleDraft) deliveryStatus() enum.DeliveryStatus {
	for _, item := range d.Items {
		if !item.Delivered {
			return enum.DeliveryStatusPendente
		}
	}
	if len(d.Items) == 0 {
		return enum.DeliveryStatusPendente
	}
	return enum.DeliveryStatusEntregue
}
