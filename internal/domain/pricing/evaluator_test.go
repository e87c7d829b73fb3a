package pricing_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazarlivre/pos-api/internal/domain/entity"
	"github.com/bazarlivre/pos-api/internal/domain/enum"
	"github.com/bazarlivre/pos-api/internal/domain/pricing"
)

var testDay = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func percentPromo(name string, percent float64, criteria ...entity.Criterion) entity.Promotion {
	return entity.Promotion{
		ID:           uuid.New(),
		Name:         name,
		Discount:     percent,
		DiscountType: enum.DiscountTypePercentage,
		IsActive:     true,
		Criteria:     criteria,
	}
}

func fixedPromo(name string, amount float64, criteria ...entity.Criterion) entity.Promotion {
	return entity.Promotion{
		ID:           uuid.New(),
		Name:         name,
		Discount:     amount,
		DiscountType: enum.DiscountTypeFixed,
		IsActive:     true,
		Criteria:     criteria,
	}
}

func item(name string, price int64, qty int) pricing.Item {
	return pricing.Item{ProductID: uuid.New(), Name: name, UnitPrice: price, Quantity: qty}
}

func TestEvaluate_TotalQuantityPercentage(t *testing.T) {
	// Two units at 2.00 x5 and 10.00 x1: subtotal 20.00, 20% off => 4.00
	cart := []pricing.Item{
		item("Brigadeiro", 200, 5),
		item("Bolo de Chocolate", 1000, 1),
	}
	promos := []entity.Promotion{
		percentPromo("Leve 5", 20, entity.TotalQuantity{MinQuantity: 5}),
	}

	ev := pricing.Evaluate(promos, cart, testDay)

	assert.Equal(t, int64(2000), ev.Subtotal)
	assert.Equal(t, int64(400), ev.Discount)
	require.Len(t, ev.Applied, 1)
	assert.Equal(t, "Leve 5", ev.Applied[0].Name)
	assert.Equal(t, int64(400), ev.Applied[0].Discount)
}

func TestEvaluate_CriteriaVariants(t *testing.T) {
	cart := []pricing.Item{
		item("Água Mineral", 300, 2),
		item("Bolo de Chocolate", 1500, 1),
	}

	type testCase struct {
		name      string
		criteria  []entity.Criterion
		wantMatch bool
	}

	tests := []testCase{
		{
			name:      "TotalQuantityMet",
			criteria:  []entity.Criterion{entity.TotalQuantity{MinQuantity: 3}},
			wantMatch: true,
		},
		{
			name:      "TotalQuantityShort",
			criteria:  []entity.Criterion{entity.TotalQuantity{MinQuantity: 4}},
			wantMatch: false,
		},
		{
			name:      "ProductQuantitySubstring",
			criteria:  []entity.Criterion{entity.ProductQuantity{ProductName: "bolo", MinQuantity: 1}},
			wantMatch: true,
		},
		{
			name:      "ProductQuantityReverseSubstring",
			criteria:  []entity.Criterion{entity.ProductQuantity{ProductName: "Bolo de Chocolate da Casa", MinQuantity: 1}},
			wantMatch: true,
		},
		{
			name:      "ProductQuantityShort",
			criteria:  []entity.Criterion{entity.ProductQuantity{ProductName: "Água", MinQuantity: 3}},
			wantMatch: false,
		},
		{
			name:      "ComboBothPresent",
			criteria:  []entity.Criterion{entity.ProductCombo{Products: []string{"Água", "Bolo"}}},
			wantMatch: true,
		},
		{
			name:      "ComboCaseInsensitive",
			criteria:  []entity.Criterion{entity.ProductCombo{Products: []string{"áGUA", "BOLO"}}},
			wantMatch: true,
		},
		{
			name:      "ComboMissingProduct",
			criteria:  []entity.Criterion{entity.ProductCombo{Products: []string{"Água", "Torta"}}},
			wantMatch: false,
		},
		{
			name: "AllCriteriaMustHold",
			criteria: []entity.Criterion{
				entity.TotalQuantity{MinQuantity: 3},
				entity.ProductQuantity{ProductName: "Torta", MinQuantity: 1},
			},
			wantMatch: false,
		},
		{
			name:      "EmptyCriteriaIsUnconditional",
			criteria:  nil,
			wantMatch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			promos := []entity.Promotion{percentPromo("Promo", 10, tt.criteria...)}
			ev := pricing.Evaluate(promos, cart, testDay)
			if tt.wantMatch {
				assert.Positive(t, ev.Discount)
				assert.Len(t, ev.Applied, 1)
			} else {
				assert.Zero(t, ev.Discount)
				assert.Empty(t, ev.Applied)
			}
		})
	}
}

func TestEvaluate_DiscountsStack(t *testing.T) {
	cart := []pricing.Item{item("Bolo", 1000, 2)}
	promos := []entity.Promotion{
		percentPromo("Dez por cento", 10),
		fixedPromo("Três reais", 3),
	}

	ev := pricing.Evaluate(promos, cart, testDay)

	// 10% of 20.00 plus fixed 3.00
	assert.Equal(t, int64(500), ev.Discount)
	assert.Len(t, ev.Applied, 2)
}

func TestEvaluate_FixedClampedToSubtotal(t *testing.T) {
	cart := []pricing.Item{item("Água", 200, 1)}
	promos := []entity.Promotion{fixedPromo("Cinco reais", 5)}

	ev := pricing.Evaluate(promos, cart, testDay)

	assert.Equal(t, int64(200), ev.Discount)
}

func TestEvaluate_MaxDiscountClamp(t *testing.T) {
	maxDiscount := 1.50
	promo := percentPromo("Metade", 50)
	promo.MaxDiscount = &maxDiscount
	cart := []pricing.Item{item("Bolo", 1000, 1)}

	ev := pricing.Evaluate([]entity.Promotion{promo}, cart, testDay)

	assert.Equal(t, int64(150), ev.Discount)
}

func TestEvaluate_TotalNeverExceedsSubtotal(t *testing.T) {
	cart := []pricing.Item{item("Água", 100, 1)}
	promos := []entity.Promotion{
		fixedPromo("Um real", 1),
		fixedPromo("Outro real", 1),
	}

	ev := pricing.Evaluate(promos, cart, testDay)

	assert.Equal(t, ev.Subtotal, ev.Discount)
	assert.LessOrEqual(t, ev.Discount, ev.Subtotal)
}

func TestEvaluate_DateWindow(t *testing.T) {
	started := "2024-06-01"
	ended := "2024-06-10"
	future := "2024-07-01"

	type testCase struct {
		name       string
		start, end *string
		active     bool
		wantApply  bool
	}

	tests := []testCase{
		{name: "InsideWindow", start: &started, end: &future, active: true, wantApply: true},
		{name: "Expired", start: &started, end: &ended, active: true, wantApply: false},
		{name: "NotStarted", start: &future, active: true, wantApply: false},
		{name: "Inactive", active: false, wantApply: false},
		{name: "OpenEnded", active: true, wantApply: true},
		{name: "StartsToday", start: strPtr(testDay.Format(time.DateOnly)), active: true, wantApply: true},
		{name: "EndsToday", end: strPtr(testDay.Format(time.DateOnly)), active: true, wantApply: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			promo := percentPromo("Janela", 10)
			promo.IsActive = tt.active
			promo.StartDate = tt.start
			promo.EndDate = tt.end
			cart := []pricing.Item{item("Bolo", 1000, 1)}

			ev := pricing.Evaluate([]entity.Promotion{promo}, cart, testDay)
			if tt.wantApply {
				assert.Positive(t, ev.Discount)
			} else {
				assert.Zero(t, ev.Discount)
			}
		})
	}
}

func TestEvaluate_EmptyInputs(t *testing.T) {
	promos := []entity.Promotion{percentPromo("Promo", 10)}
	cart := []pricing.Item{item("Bolo", 1000, 1)}

	assert.Zero(t, pricing.Evaluate(promos, nil, testDay).Discount)
	assert.Zero(t, pricing.Evaluate(nil, cart, testDay).Discount)
}

func TestEvaluate_Deterministic(t *testing.T) {
	cart := []pricing.Item{
		item("Água", 300, 2),
		item("Bolo", 1500, 1),
	}
	promos := []entity.Promotion{
		percentPromo("Dez", 10, entity.TotalQuantity{MinQuantity: 2}),
		fixedPromo("Fixo", 2),
	}

	first := pricing.Evaluate(promos, cart, testDay)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, pricing.Evaluate(promos, cart, testDay))
	}
}

func strPtr(s string) *string { return &s }
