package enum

import "encoding/json"

// SaleStep is the position of an in-progress sale in the capture workflow.
// Change is conditional: it is entered only when the tendered amount exceeds
// the discounted total.
type SaleStep int

const (
	StepCustomer SaleStep = 1
	StepItems    SaleStep = 2
	StepPayment  SaleStep = 3
	StepChange   SaleStep = 4
	StepComplete SaleStep = 5
)

func (s SaleStep) String() string {
	switch s {
	case StepCustomer:
		return "customer"
	case StepItems:
		return "items"
	case StepPayment:
		return "payment"
	case StepChange:
		return "change"
	case StepComplete:
		return "complete"
	}
	return "unknown"
}

func (s SaleStep) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
