package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentStatus represents how much of a sale has been paid for
type PaymentStatus int

const (
	PaymentStatusPendente PaymentStatus = 0
	PaymentStatusParcial  PaymentStatus = 1
	PaymentStatusPago     PaymentStatus = 2
)

func (s PaymentStatus) String() string {
	return [...]string{"Pendente", "Parcial", "Pago"}[s]
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	switch str {
	case "Pendente":
		*s = PaymentStatusPendente
	case "Parcial":
		*s = PaymentStatusParcial
	case "Pago":
		*s = PaymentStatusPago
	default:
		return fmt.Errorf("unknown payment status %q", str)
	}
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusPendente
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}
