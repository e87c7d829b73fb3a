package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is an inventory item available for sale
type Product struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	SalePrice int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Quantity  int            `gorm:"default:0" json:"quantity"`
	Category  string         `gorm:"size:255" json:"category,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetSalePriceDecimal returns the sale price as a decimal (for display)
func (p *Product) GetSalePriceDecimal() float64 {
	return float64(p.SalePrice) / 100
}

// SetSalePriceFromDecimal sets the sale price from a decimal value
func (p *Product) SetSalePriceFromDecimal(price float64) {
	p.SalePrice = int64(price*100 + 0.5)
}

// productJSON is a helper struct for JSON marshaling with a decimal price
type productJSON struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SalePrice float64   `json:"salePrice"`
	Quantity  int       `json:"quantity"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MarshalJSON converts Product to JSON with a decimal price
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productJSON{
		ID:        p.ID,
		Name:      p.Name,
		SalePrice: p.GetSalePriceDecimal(),
		Quantity:  p.Quantity,
		Category:  p.Category,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})
}
