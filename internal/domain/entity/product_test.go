package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazarlivre/pos-api/internal/domain/entity"
)

func TestProductPriceConversions(t *testing.T) {
	var p entity.Product
	p.SetSalePriceFromDecimal(12.99)
	assert.Equal(t, int64(1299), p.SalePrice)
	assert.Equal(t, 12.99, p.GetSalePriceDecimal())

	// rounding guards against float representation drift
	p.SetSalePriceFromDecimal(0.29)
	assert.Equal(t, int64(29), p.SalePrice)
}

func TestProductMarshalDecimalPrice(t *testing.T) {
	p := entity.Product{Name: "Bolo de Chocolate", SalePrice: 1050, Quantity: 3, Category: "Doces"}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 10.5, doc["salePrice"])
	assert.Equal(t, 3.0, doc["quantity"])
	assert.NotContains(t, string(data), "SalePrice")
}