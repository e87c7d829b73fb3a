package enum

// CriterionType tags the variant of a promotion criterion
type CriterionType string

const (
	CriterionTotalQuantity   CriterionType = "total_quantity"
	CriterionProductQuantity CriterionType = "product_quantity"
	CriterionProductCombo    CriterionType = "product_combo"
)

// Valid reports whether the value is one of the known criterion types
func (t CriterionType) Valid() bool {
	switch t {
	case CriterionTotalQuantity, CriterionProductQuantity, CriterionProductCombo:
		return true
	}
	return false
}
