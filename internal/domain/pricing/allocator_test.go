package pricing_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bazarlivre/pos-api/internal/domain/pricing"
)

func TestAllocate_FullCoverageAfterDiscount(t *testing.T) {
	a := item("Brigadeiro", 200, 5)
	b := item("Bolo de Chocolate", 1000, 1)
	cart := []pricing.Item{a, b}

	// Subtotal 20.00, discount 4.00, tendered 16.00 covers everything.
	paid := pricing.Allocate(cart, 400, 1600)

	assert.True(t, paid[a.ProductID])
	assert.True(t, paid[b.ProductID])
}

func TestAllocate_InsufficientTender(t *testing.T) {
	a := item("Brigadeiro", 200, 5)
	b := item("Bolo de Chocolate", 1000, 1)
	cart := []pricing.Item{a, b}

	// 5.00 covers neither 10.00 line.
	paid := pricing.Allocate(cart, 400, 500)

	assert.False(t, paid[a.ProductID])
	assert.False(t, paid[b.ProductID])
}

func TestAllocate_CheapestLinesFirst(t *testing.T) {
	cheap := item("Água", 300, 1)
	mid := item("Suco", 700, 1)
	dear := item("Bolo", 2000, 1)
	cart := []pricing.Item{dear, cheap, mid}

	// 10.00 covers 3.00 + 7.00 but not the 20.00 line.
	paid := pricing.Allocate(cart, 0, 1000)

	assert.True(t, paid[cheap.ProductID])
	assert.True(t, paid[mid.ProductID])
	assert.False(t, paid[dear.ProductID])
}

func TestAllocate_DiscountAbsorbedByMostExpensiveLine(t *testing.T) {
	cheap := item("Água", 300, 1)
	dear := item("Bolo", 2000, 1)
	cart := []pricing.Item{cheap, dear}

	// Discount 15.00 reduces the 20.00 line to 5.00; 8.00 pays both.
	paid := pricing.Allocate(cart, 1500, 800)

	assert.True(t, paid[cheap.ProductID])
	assert.True(t, paid[dear.ProductID])
}

func TestAllocate_DiscountFlooredAtZero(t *testing.T) {
	cheap := item("Água", 300, 1)
	dear := item("Bolo", 500, 1)
	cart := []pricing.Item{cheap, dear}

	// Discount exceeds the dearest line; it becomes free, 3.00 pays the rest.
	paid := pricing.Allocate(cart, 900, 300)

	assert.True(t, paid[cheap.ProductID])
	assert.True(t, paid[dear.ProductID])
}

func TestAllocate_PaidLinesFormPrefix(t *testing.T) {
	items := []pricing.Item{
		item("A", 100, 1),
		item("B", 250, 2),
		item("C", 400, 1),
		item("D", 900, 1),
		item("E", 1200, 3),
	}

	for tendered := int64(0); tendered <= 6000; tendered += 137 {
		paid := pricing.Allocate(items, 300, tendered)

		// Once an unpaid line appears in ascending order, nothing after it is paid.
		sorted := make([]pricing.Item, len(items))
		copy(sorted, items)
		for i := 0; i < len(sorted); i++ {
			for j := i + 1; j < len(sorted); j++ {
				if sorted[j].Subtotal() < sorted[i].Subtotal() {
					sorted[i], sorted[j] = sorted[j], sorted[i]
				}
			}
		}
		seenUnpaid := false
		for _, it := range sorted {
			if !paid[it.ProductID] {
				seenUnpaid = true
			} else {
				assert.False(t, seenUnpaid, "paid line after unpaid line at tendered=%d", tendered)
			}
		}
	}
}

func TestAllocate_EmptyCart(t *testing.T) {
	paid := pricing.Allocate(nil, 0, 1000)
	assert.Empty(t, paid)
}

func TestAllocate_InputOrderPreserved(t *testing.T) {
	a := item("A", 500, 1)
	b := item("B", 500, 1)
	cart := []pricing.Item{a, b}
	before := []uuid.UUID{cart[0].ProductID, cart[1].ProductID}

	pricing.Allocate(cart, 0, 500)

	assert.Equal(t, before, []uuid.UUID{cart[0].ProductID, cart[1].ProductID})
}
