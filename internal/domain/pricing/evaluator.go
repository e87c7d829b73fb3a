package pricing

import (
	"encoding/json"
	"time"

	"github.com/bazarlivre/pos-api/internal/domain/entity"
	"github.com/bazarlivre/pos-api/internal/domain/enum"
	"github.com/google/uuid"
)

// AppliedPromotion records one promotion that contributed to the discount
type AppliedPromotion struct {
	PromotionID uuid.UUID         `json:"id"`
	Name        string            `json:"nome"`
	Discount    int64             `json:"-"`
	Type        enum.DiscountType `json:"discountType"`
}

// MarshalJSON adds the decimal discount alongside the tagged fields
func (a AppliedPromotion) MarshalJSON() ([]byte, error) {
	type alias AppliedPromotion
	return json.Marshal(struct {
		alias
		Desconto float64 `json:"desconto"`
	}{alias(a), float64(a.Discount) / 100})
}

// Evaluation is the discount breakdown for a cart
type Evaluation struct {
	Subtotal int64
	Discount int64
	Applied  []AppliedPromotion
}

// Evaluate computes the automatic discount for a cart on the given day.
// Every active, in-window promotion whose criteria all hold contributes its
// discount; contributions stack. The total is clamped so it never exceeds
// the cart subtotal.
func Evaluate(promotions []entity.Promotion, cart []Item, day time.Time) Evaluation {
	subtotal := CartSubtotal(cart)
	ev := Evaluation{Subtotal: subtotal}
	if len(cart) == 0 || len(promotions) == 0 {
		return ev
	}

	for i := range promotions {
		promo := &promotions[i]
		if !promo.ValidOn(day) {
			continue
		}
		if !criteriaMatch(promo.Criteria, cart) {
			continue
		}

		discount := promoDiscount(promo, subtotal)
		if discount <= 0 {
			continue
		}

		ev.Discount += discount
		ev.Applied = append(ev.Applied, AppliedPromotion{
			PromotionID: promo.ID,
			Name:        promo.Name,
			Discount:    discount,
			Type:        promo.DiscountType,
		})
	}

	if ev.Discount > subtotal {
		ev.Discount = subtotal
	}
	return ev
}

// criteriaMatch reports whether every criterion holds for the cart.
// An empty criteria list matches unconditionally.
func criteriaMatch(criteria entity.CriterionList, cart []Item) bool {
	for _, crit := range criteria {
		switch c := crit.(type) {
		case entity.TotalQuantity:
			if cartQuantity(cart) < c.MinQuantity {
				return false
			}
		case entity.ProductQuantity:
			var qty int
			for _, it := range cart {
				if nameMatches(it.Name, c.ProductName) {
					qty += it.Quantity
				}
			}
			if qty < c.MinQuantity {
				return false
			}
		case entity.ProductCombo:
			for _, required := range c.Products {
				found := false
				for _, it := range cart {
					if nameMatches(it.Name, required) {
						found = true
						break
					}
				}
				if !found {
					return false
				}
			}
		default:
			// Unknown variants never match; the criterion set is closed.
			return false
		}
	}
	return true
}

// promoDiscount computes a single promotion's contribution in cents,
// clamped to its own maxDiscount and to the cart subtotal.
func promoDiscount(promo *entity.Promotion, subtotal int64) int64 {
	var discount int64
	switch promo.DiscountType {
	case enum.DiscountTypePercentage:
		discount = int64(float64(subtotal)*promo.Discount/100 + 0.5)
	case enum.DiscountTypeFixed:
		discount = int64(promo.Discount*100 + 0.5)
		if discount > subtotal {
			discount = subtotal
		}
	default:
		return 0
	}

	if promo.MaxDiscount != nil {
		maxCents := int64(*promo.MaxDiscount*100 + 0.5)
		if discount > maxCents {
			discount = maxCents
		}
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount
}
