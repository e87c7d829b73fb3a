package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DeliveryStatus represents whether all items of a sale were handed over
type DeliveryStatus int

const (
	DeliveryStatusPendente DeliveryStatus = 0
	DeliveryStatusEntregue DeliveryStatus = 1
)

func (s DeliveryStatus) String() string {
	return [...]string{"Pendente", "Entregue"}[s]
}

func (s DeliveryStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *DeliveryStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = DeliveryStatus(i)
		return nil
	}
	switch str {
	case "Pendente":
		*s = DeliveryStatusPendente
	case "Entregue":
		*s = DeliveryStatusEntregue
	}
	return nil
}

func (s DeliveryStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *DeliveryStatus) Scan(value interface{}) error {
	if value == nil {
		*s = DeliveryStatusPendente
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = DeliveryStatus(v)
	case int:
		*s = DeliveryStatus(v)
	}
	return nil
}
