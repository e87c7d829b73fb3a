package pricing

// ChangeSplit divides a change amount between what goes back to the customer
// and what is donated. The two parts always sum to the full change.
type ChangeSplit struct {
	Returned int64
	Donated  int64
}

// clampChange bounds an edited value to [0, change]
func clampChange(change, value int64) int64 {
	if value < 0 {
		return 0
	}
	if value > change {
		return change
	}
	return value
}

// SplitByReturned recomputes the split after the "return" field was edited
func SplitByReturned(change, returned int64) ChangeSplit {
	returned = clampChange(change, returned)
	return ChangeSplit{Returned: returned, Donated: change - returned}
}

// SplitByDonated recomputes the split after the "donate" field was edited
func SplitByDonated(change, donated int64) ChangeSplit {
	donated = clampChange(change, donated)
	return ChangeSplit{Returned: change - donated, Donated: donated}
}

// ReturnAll hands the full change back to the customer
func ReturnAll(change int64) ChangeSplit {
	return ChangeSplit{Returned: change, Donated: 0}
}

// DonateAll donates the full change
func DonateAll(change int64) ChangeSplit {
	return ChangeSplit{Returned: 0, Donated: change}
}
