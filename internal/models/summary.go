package models

import "strconv"

// UserCost is one user's total (items plus proportional tax) in a summary.
type UserCost struct {
	// UserID is zero when the user could not be resolved; Name is then the key.
	UserID int64
	Name   string
	Cost   float64
}

// Key identifies the user within a summary: the ID when known, else the name.
func (c UserCost) Key() string {
	if c.UserID != 0 {
		return strconv.FormatInt(c.UserID, 10)
	}
	return c.Name
}

// CalculationSummary is the finalized per-user breakdown of a bill.
//
// It is produced either from the gateway's text response or by the local
// fallback calculator; consumers must treat both origins the same way.
type CalculationSummary struct {
	Users      []UserCost
	Subtotal   float64
	Tax        float64
	GrandTotal float64
}

// CostFor returns the cost recorded under the given key.
func (s CalculationSummary) CostFor(key string) (float64, bool) {
	for _, u := range s.Users {
		if u.Key() == key {
			return u.Cost, true
		}
	}
	return 0, false
}

// DisplayTotal returns GrandTotal, or the sum of user costs when the
// summary carried no grand total.
func (s CalculationSummary) DisplayTotal() float64 {
	if s.GrandTotal != 0 {
		return s.GrandTotal
	}
	var sum float64
	for _, u := range s.Users {
		sum += u.Cost
	}
	return sum
}
