package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bazarlivre/pos-api/internal/domain/enum"
	"github.com/google/uuid"
)

// Sale is a finalized sale record. Amounts are stored in cents and exposed
// as currency decimals in JSON; the JSON layout matches the historical sale
// document (vendedor/cliente/itens/valorTotal/...).
type Sale struct {
	Code           string              `gorm:"size:40;primaryKey"`
	Vendedor       string              `gorm:"size:255;not null"`
	CustomerName   string              `gorm:"size:255;not null"`
	CustomerPhone  string              `gorm:"size:50"`
	Items          []SaleItem          `gorm:"foreignKey:SaleCode;constraint:OnDelete:CASCADE"`
	ValorTotal     int64               `gorm:"default:0"`
	ValorPago      int64               `gorm:"default:0"`
	Doacao         int64               `gorm:"default:0"`
	Troco          int64               `gorm:"default:0"`
	Desconto       int64               `gorm:"default:0"`
	Status         string              `gorm:"size:20;not null"`
	PaymentStatus  enum.PaymentStatus  `gorm:"default:0"`
	DeliveryStatus enum.DeliveryStatus `gorm:"default:0"`
	Pago           bool                `gorm:"default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is one line of a finalized sale
type SaleItem struct {
	SaleCode  string    `gorm:"size:40;primaryKey" json:"-"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Nome      string    `gorm:"size:255;not null" json:"nome"`
	Preco     int64     `gorm:"default:0" json:"-"` // cents
	Qtd       int       `gorm:"column:quantidade;default:0" json:"quantidade"`
	Pago      bool      `gorm:"default:false" json:"pago"`
	Entregue  bool      `gorm:"default:false" json:"entregue"`
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// Subtotal returns the line value in cents
func (i SaleItem) Subtotal() int64 {
	return i.Preco * int64(i.Qtd)
}

type saleItemJSON struct {
	ID         uuid.UUID `json:"id"`
	Nome       string    `json:"nome"`
	Preco      float64   `json:"preco"`
	Quantidade int       `json:"quantidade"`
	Pago       bool      `json:"pago"`
	Entregue   bool      `json:"entregue"`
}

// MarshalJSON converts SaleItem to JSON with a decimal price
func (i SaleItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(saleItemJSON{
		ID:         i.ProductID,
		Nome:       i.Nome,
		Preco:      float64(i.Preco) / 100,
		Quantidade: i.Qtd,
		Pago:       i.Pago,
		Entregue:   i.Entregue,
	})
}

type saleCliente struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type saleJSON struct {
	ID             string              `json:"id"`
	Vendedor       string              `json:"vendedor"`
	Cliente        saleCliente         `json:"cliente"`
	Itens          []SaleItem          `json:"itens"`
	ValorTotal     float64             `json:"valorTotal"`
	ValorPago      float64             `json:"valorPago"`
	Doacao         float64             `json:"doacao"`
	Troco          float64             `json:"troco"`
	Desconto       float64             `json:"desconto"`
	Status         string              `json:"status"`
	StatusPag      enum.PaymentStatus  `json:"statusPagamento"`
	DeliveryStatus enum.DeliveryStatus `json:"deliveryStatus"`
	Pago           bool                `json:"pago"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// MarshalJSON converts Sale to the historical sale document layout
func (s Sale) MarshalJSON() ([]byte, error) {
	return json.Marshal(saleJSON{
		ID:             s.Code,
		Vendedor:       s.Vendedor,
		Cliente:        saleCliente{Name: s.CustomerName, Phone: s.CustomerPhone},
		Itens:          s.Items,
		ValorTotal:     float64(s.ValorTotal) / 100,
		ValorPago:      float64(s.ValorPago) / 100,
		Doacao:         float64(s.Doacao) / 100,
		Troco:          float64(s.Troco) / 100,
		Desconto:       float64(s.Desconto) / 100,
		Status:         s.Status,
		StatusPag:      s.PaymentStatus,
		DeliveryStatus: s.DeliveryStatus,
		Pago:           s.Pago,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	})
}

// NewSaleCode generates a sale identifier. The timestamp keeps codes roughly
// sortable; the random suffix guards against same-millisecond collisions.
func NewSaleCode() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:5]
	return strings.ToUpper(fmt.Sprintf("V%d%s", time.Now().UnixMilli(), suffix))
}
