package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bazarlivre/pos-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Criterion is one matching rule of a promotion. The set of variants is
// closed: TotalQuantity, ProductQuantity and ProductCombo. A promotion
// matches a cart only when every criterion in its list is satisfied.
type Criterion interface {
	criterionType() enum.CriterionType
}

// TotalQuantity requires the cart to hold at least MinQuantity units overall
type TotalQuantity struct {
	MinQuantity int
}

func (TotalQuantity) criterionType() enum.CriterionType { return enum.CriterionTotalQuantity }

// ProductQuantity requires at least MinQuantity units of a named product.
// Name matching is a case-insensitive substring test in either direction,
// summed across every cart line that matches.
type ProductQuantity struct {
	ProductName string
	MinQuantity int
}

func (ProductQuantity) criterionType() enum.CriterionType { return enum.CriterionProductQuantity }

// ProductCombo requires every listed product name to match at least one
// cart line.
type ProductCombo struct {
	Products []string
}

func (ProductCombo) criterionType() enum.CriterionType { return enum.CriterionProductCombo }

// CriterionList is the ordered criteria of a promotion, persisted as a JSONB
// array of tagged objects: {type, minQuantity?, productName?, products?}.
type CriterionList []Criterion

// criterionWire is the stored/JSON form of a single criterion
type criterionWire struct {
	Type        enum.CriterionType `json:"type"`
	MinQuantity int                `json:"minQuantity,omitempty"`
	ProductName string             `json:"productName,omitempty"`
	Products    []string           `json:"products,omitempty"`
}

func (l CriterionList) MarshalJSON() ([]byte, error) {
	wire := make([]criterionWire, 0, len(l))
	for _, c := range l {
		switch v := c.(type) {
		case TotalQuantity:
			wire = append(wire, criterionWire{Type: enum.CriterionTotalQuantity, MinQuantity: v.MinQuantity})
		case ProductQuantity:
			wire = append(wire, criterionWire{Type: enum.CriterionProductQuantity, MinQuantity: v.MinQuantity, ProductName: v.ProductName})
		case ProductCombo:
			wire = append(wire, criterionWire{Type: enum.CriterionProductCombo, Products: v.Products})
		default:
			return nil, fmt.Errorf("unknown criterion variant %T", c)
		}
	}
	return json.Marshal(wire)
}

func (l *CriterionList) UnmarshalJSON(data []byte) error {
	var wire []criterionWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	out := make(CriterionList, 0, len(wire))
	for _, w := range wire {
		switch w.Type {
		case enum.CriterionTotalQuantity:
			out = append(out, TotalQuantity{MinQuantity: w.MinQuantity})
		case enum.CriterionProductQuantity:
			out = append(out, ProductQuantity{ProductName: w.ProductName, MinQuantity: w.MinQuantity})
		case enum.CriterionProductCombo:
			out = append(out, ProductCombo{Products: w.Products})
		default:
			return fmt.Errorf("unknown criterion type %q", w.Type)
		}
	}
	*l = out
	return nil
}

// Value serializes the list for a JSONB column
func (l CriterionList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := l.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan deserializes the list from a JSONB column
func (l *CriterionList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return l.UnmarshalJSON(v)
	case string:
		return l.UnmarshalJSON([]byte(v))
	}
	return fmt.Errorf("unsupported criterion column type %T", value)
}

// Promotion is an automatic discount rule. Promotions are authored by the
// management screens; the sale engine only reads them. The discount value is
// a percentage for percentage promotions and a currency decimal for fixed
// ones; dates are day-granular ISO strings compared inclusively.
type Promotion struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name         string            `gorm:"size:255;not null" json:"name"`
	Discount     float64           `gorm:"not null" json:"discount"`
	DiscountType enum.DiscountType `gorm:"size:20;not null" json:"discountType"`
	MaxDiscount  *float64          `json:"maxDiscount,omitempty"`
	IsActive     bool              `gorm:"default:true" json:"isActive"`
	StartDate    *string           `gorm:"size:10" json:"startDate,omitempty"` // YYYY-MM-DD
	EndDate      *string           `gorm:"size:10" json:"endDate,omitempty"`   // YYYY-MM-DD
	Criteria     CriterionList     `gorm:"type:jsonb" json:"criterio"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	DeletedAt    gorm.DeletedAt    `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new promotion
func (p *Promotion) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Promotion model
func (Promotion) TableName() string {
	return "promotions"
}

// ValidOn reports whether the promotion is active and inside its date window
// on the given day. Dates are inclusive; a missing bound is open.
func (p *Promotion) ValidOn(day time.Time) bool {
	if !p.IsActive {
		return false
	}
	today := day.Format(time.DateOnly)
	if p.StartDate != nil && *p.StartDate != "" && today < *p.StartDate {
		return false
	}
	if p.EndDate != nil && *p.EndDate != "" && today > *p.EndDate {
		return false
	}
	return true
}
