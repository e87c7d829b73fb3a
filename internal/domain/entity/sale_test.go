package entity_test

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazarlivre/pos-api/internal/domain/entity"
	"github.com/bazarlivre/pos-api/internal/domain/enum"
)

func TestSaleMarshalDocumentLayout(t *testing.T) {
	productID := uuid.New()
	sale := entity.Sale{
		Code:          "V1718000000000ABCDE",
		Vendedor:      "Maria",
		CustomerName:  "JOÃO SILVA",
		CustomerPhone: "11 99999-0000",
		Items: []entity.SaleItem{
			{SaleCode: "V1718000000000ABCDE", ProductID: productID, Nome: "Brigadeiro", Preco: 250, Qtd: 4, Pago: true},
		},
		ValorTotal:     1000,
		ValorPago:      1000,
		Troco:          150,
		Doacao:         50,
		Desconto:       200,
		Status:         "Pago",
		PaymentStatus:  enum.PaymentStatusPago,
		DeliveryStatus: enum.DeliveryStatusPendente,
		Pago:           true,
		CreatedAt:      time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(sale)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "V1718000000000ABCDE", doc["id"])
	assert.Equal(t, "Maria", doc["vendedor"])
	assert.Equal(t, map[string]any{"name": "JOÃO SILVA", "phone": "11 99999-0000"}, doc["cliente"])
	assert.Equal(t, 10.0, doc["valorTotal"])
	assert.Equal(t, 10.0, doc["valorPago"])
	assert.Equal(t, 1.5, doc["troco"])
	assert.Equal(t, 0.5, doc["doacao"])
	assert.Equal(t, 2.0, doc["desconto"])
	assert.Equal(t, "Pago", doc["status"])
	assert.Equal(t, "Pago", doc["statusPagamento"])
	assert.Equal(t, "Pendente", doc["deliveryStatus"])
	assert.Equal(t, true, doc["pago"])

	itens, ok := doc["itens"].([]any)
	require.True(t, ok)
	require.Len(t, itens, 1)
	item := itens[0].(map[string]any)
	assert.Equal(t, productID.String(), item["id"])
	assert.Equal(t, "Brigadeiro", item["nome"])
	assert.Equal(t, 2.5, item["preco"])
	assert.Equal(t, 4.0, item["quantidade"])
	assert.Equal(t, true, item["pago"])
	assert.Equal(t, false, item["entregue"])

	// cents and the sale-code column stay internal
	assert.NotContains(t, doc, "Code")
	assert.NotContains(t, string(data), "sale_code")
}

func TestSaleItemSubtotal(t *testing.T) {
	item := entity.SaleItem{Preco: 250, Qtd: 4}
	assert.Equal(t, int64(1000), item.Subtotal())
}

func TestNewSaleCode(t *testing.T) {
	pattern := regexp.MustCompile(`^V\d{13}[0-9A-F]{5}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := entity.NewSaleCode()
		assert.Regexp(t, pattern, code)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "JOÃO SILVA", entity.NormalizeName("  joão silva "))
	assert.Equal(t, "MARIA", entity.NormalizeName("Maria"))
	assert.Equal(t, "", entity.NormalizeName("   "))
}