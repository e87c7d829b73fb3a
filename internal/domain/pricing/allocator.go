package pricing

import (
	"sort"

	"github.com/google/uuid"
)

// Allocate decides which cart lines count as paid for a partial tender.
//
// Lines are ordered ascending by subtotal and the entire discount is
// absorbed by the highest-value line (floored at zero), so cheap items are
// settled first. Walking that order, a line is paid when the tendered
// amount still covers the running total including it; the paid lines always
// form a contiguous prefix of the sorted order.
//
// The result maps product IDs to their paid flag and is re-derived from
// scratch on every call.
func Allocate(cart []Item, discount, tendered int64) map[uuid.UUID]bool {
	paid := make(map[uuid.UUID]bool, len(cart))
	if len(cart) == 0 {
		return paid
	}

	sorted := make([]Item, len(cart))
	copy(sorted, cart)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Subtotal() < sorted[j].Subtotal()
	})

	var cumulative int64
	for i, it := range sorted {
		effective := it.Subtotal()
		if i == len(sorted)-1 {
			effective -= discount
			if effective < 0 {
				effective = 0
			}
		}
		cumulative += effective
		paid[it.ProductID] = tendered >= cumulative
	}
	return paid
}
