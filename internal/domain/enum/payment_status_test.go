package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentStatusJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect PaymentStatus
	}{
		{name: "pendente", input: `"Pendente"`, expect: PaymentStatusPendente},
		{name: "parcial", input: `"Parcial"`, expect: PaymentStatusParcial},
		{name: "pago", input: `"Pago"`, expect: PaymentStatusPago},
		{name: "numeric form", input: `2`, expect: PaymentStatusPago},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s PaymentStatus
			require.NoError(t, json.Unmarshal([]byte(tt.input), &s))
			assert.Equal(t, tt.expect, s)
		})
	}
}

func TestPaymentStatusUnmarshalRejectsUnknown(t *testing.T) {
	var s PaymentStatus
	err := json.Unmarshal([]byte(`"Quitado"`), &s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Quitado")
}

func TestPaymentStatusMarshal(t *testing.T) {
	out, err := json.Marshal(PaymentStatusParcial)
	require.NoError(t, err)
	assert.Equal(t, `"Parcial"`, string(out))
}
