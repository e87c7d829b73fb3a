// Package pricing holds the pure calculation engines of the sale workflow:
// promotion evaluation, payment allocation and change splitting. Everything
// here is deterministic and side-effect free; the draft state machine calls
// back into it whenever one of its inputs changes.
package pricing

import (
	"strings"

	"github.com/google/uuid"
)

// Item is a cart line as the engines see it. Amounts are in cents.
type Item struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice int64
	Quantity  int
}

// Subtotal returns the line value in cents
func (i Item) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// CartSubtotal sums the line subtotals of a cart
func CartSubtotal(cart []Item) int64 {
	var total int64
	for _, it := range cart {
		total += it.Subtotal()
	}
	return total
}

// cartQuantity sums the selected quantities of a cart
func cartQuantity(cart []Item) int {
	var total int
	for _, it := range cart {
		total += it.Quantity
	}
	return total
}

// nameMatches applies the loose product-name test used throughout promotion
// matching: case-insensitive substring containment in either direction.
// "Bolo" matches "Bolo de Chocolate" and vice versa; this is intentionally
// tolerant of minor name variations.
func nameMatches(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
