package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitter/internal/models"
)

const (
	// ratioPlaces is the precision of intermediate share and subtotal ratios.
	ratioPlaces = 10
	// amountPlaces is the precision of every stored or reported amount.
	amountPlaces = 3
)

// ExactShareCost is the gateway's authoritative cost for one share:
//
//	round(round(share / total, 10) × price, 3)
//
// with half-up rounding. It is zero when the total share is zero.
func ExactShareCost(share, totalShares, price float64) decimal.Decimal {
	if totalShares == 0 {
		return decimal.Zero
	}
	ratio := decimal.NewFromFloat(share).DivRound(decimal.NewFromFloat(totalShares), ratioPlaces)
	return ratio.Mul(decimal.NewFromFloat(price)).Round(amountPlaces)
}

// ExactUserTotal is one user's authoritative amount.
type ExactUserTotal struct {
	UserID   int64
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ExactBillTotals are the authoritative bill-level amounts.
type ExactBillTotals struct {
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
}

// ExactTotals aggregates stored share records into per-user totals with
// proportional tax, ordered by user ID.
//
// The bill subtotal is the stored receipt subtotal, or the sum of item prices
// when the receipt did not carry one, matching BillSubtotal.
func ExactTotals(records []models.RemoteShareRecord, items []models.BillItem, totals models.BillTotals) ([]ExactUserTotal, ExactBillTotals) {
	billSubtotal := decimal.NewFromFloat(totals.Subtotal)
	if totals.Subtotal <= 0 {
		billSubtotal = decimal.Zero
		for _, item := range items {
			billSubtotal = billSubtotal.Add(decimal.NewFromFloat(item.Price))
		}
	}
	tax := decimal.NewFromFloat(totals.Tax)

	subtotals := make(map[int64]decimal.Decimal)
	var order []int64
	for _, r := range records {
		if _, seen := subtotals[r.UserID]; !seen {
			order = append(order, r.UserID)
			subtotals[r.UserID] = decimal.Zero
		}
		subtotals[r.UserID] = subtotals[r.UserID].Add(decimal.NewFromFloat(r.Cost))
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	users := make([]ExactUserTotal, 0, len(order))
	for _, id := range order {
		subtotal := subtotals[id]
		taxShare := decimal.Zero
		if billSubtotal.IsPositive() {
			taxShare = subtotal.DivRound(billSubtotal, ratioPlaces).Mul(tax).Round(amountPlaces)
		}
		users = append(users, ExactUserTotal{
			UserID:   id,
			Subtotal: subtotal,
			Tax:      taxShare,
			Total:    subtotal.Add(taxShare).Round(amountPlaces),
		})
	}

	return users, ExactBillTotals{
		Subtotal:   billSubtotal.Round(amountPlaces),
		Tax:        tax.Round(amountPlaces),
		GrandTotal: billSubtotal.Add(tax).Round(amountPlaces),
	}
}
