package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bazarlivre/pos-api/internal/domain/pricing"
)

func TestSplitByReturned(t *testing.T) {
	type testCase struct {
		name             string
		change, returned int64
		want             pricing.ChangeSplit
	}

	tests := []testCase{
		{name: "Partial", change: 500, returned: 200, want: pricing.ChangeSplit{Returned: 200, Donated: 300}},
		{name: "All", change: 500, returned: 500, want: pricing.ChangeSplit{Returned: 500, Donated: 0}},
		{name: "ClampedHigh", change: 500, returned: 900, want: pricing.ChangeSplit{Returned: 500, Donated: 0}},
		{name: "ClampedNegative", change: 500, returned: -100, want: pricing.ChangeSplit{Returned: 0, Donated: 500}},
		{name: "ZeroChange", change: 0, returned: 300, want: pricing.ChangeSplit{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.SplitByReturned(tt.change, tt.returned))
		})
	}
}

func TestSplitByDonated(t *testing.T) {
	type testCase struct {
		name            string
		change, donated int64
		want            pricing.ChangeSplit
	}

	tests := []testCase{
		{name: "Partial", change: 500, donated: 150, want: pricing.ChangeSplit{Returned: 350, Donated: 150}},
		{name: "ClampedHigh", change: 500, donated: 700, want: pricing.ChangeSplit{Returned: 0, Donated: 500}},
		{name: "ClampedNegative", change: 500, donated: -1, want: pricing.ChangeSplit{Returned: 500, Donated: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.SplitByDonated(tt.change, tt.donated))
		})
	}
}

func TestChangeSplit_PartsAlwaysSumToChange(t *testing.T) {
	for change := int64(0); change <= 1000; change += 97 {
		for edit := int64(-200); edit <= change+200; edit += 113 {
			byReturned := pricing.SplitByReturned(change, edit)
			assert.Equal(t, change, byReturned.Returned+byReturned.Donated)

			byDonated := pricing.SplitByDonated(change, edit)
			assert.Equal(t, change, byDonated.Returned+byDonated.Donated)
		}
	}
}

func TestReturnAllAndDonateAll(t *testing.T) {
	assert.Equal(t, pricing.ChangeSplit{Returned: 400, Donated: 0}, pricing.ReturnAll(400))
	assert.Equal(t, pricing.ChangeSplit{Returned: 0, Donated: 400}, pricing.DonateAll(400))
}
