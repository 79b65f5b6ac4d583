package calculator

import "github.com/mmynk/splitter/internal/models"

// UserSubtotal is the sum of a user's costs across all items.
func UserSubtotal(userID int64, splits []models.ItemSplit) float64 {
	var subtotal float64
	for _, s := range splits {
		if sh, ok := s.ShareFor(userID); ok {
			subtotal += sh.Cost
		}
	}
	return subtotal
}

// BillSubtotal returns the stored receipt subtotal, or the sum of item prices
// when the receipt did not carry one.
func BillSubtotal(splits []models.ItemSplit, totals models.BillTotals) float64 {
	if totals.Subtotal > 0 {
		return totals.Subtotal
	}
	var sum float64
	for _, s := range splits {
		sum += s.Item.Price
	}
	return sum
}

// TaxShare apportions the bill's tax to one user in proportion to their subtotal:
//
//	tax_u = subtotal_u / bill_subtotal × tax
//
// It is zero when the bill subtotal is zero.
func TaxShare(userID int64, splits []models.ItemSplit, totals models.BillTotals) float64 {
	billSubtotal := BillSubtotal(splits, totals)
	if billSubtotal <= 0 {
		return 0
	}
	return UserSubtotal(userID, splits) / billSubtotal * totals.Tax
}

// UserTotal is what one user owes: their subtotal plus their share of tax.
// Per-user totals sum to GrandTotal only within floating-point tolerance.
func UserTotal(userID int64, splits []models.ItemSplit, totals models.BillTotals) float64 {
	return UserSubtotal(userID, splits) + TaxShare(userID, splits, totals)
}

// GrandTotal is the bill subtotal plus tax, independent of per-user rounding.
func GrandTotal(splits []models.ItemSplit, totals models.BillTotals) float64 {
	return BillSubtotal(splits, totals) + totals.Tax
}
