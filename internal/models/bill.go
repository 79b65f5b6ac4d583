package models

import "fmt"

// Bill represents a receipt to be split among the users on its roster.
type Bill struct {
	// ID is the receipt identifier assigned by the gateway.
	ID int64

	// StoreName is informational only.
	StoreName string

	// Items are the line items in receipt order. Order matters: the
	// reconciler falls back to positional matching.
	Items []BillItem

	// Subtotal is the pre-tax amount printed on the receipt.
	// Zero means unknown; the sum of item prices is used instead.
	Subtotal float64

	// Tax is the total tax printed on the receipt.
	Tax float64

	// CreatedAt is the Unix timestamp when the bill was stored.
	CreatedAt int64
}

// Totals returns the bill-level totals.
func (b Bill) Totals() BillTotals {
	return BillTotals{Subtotal: b.Subtotal, Tax: b.Tax}
}

// BillItem represents a single line item on a bill.
// Items are immutable once the bill is loaded.
type BillItem struct {
	// ID is the item identifier. Zero when the receipt source did not assign one.
	ID int64

	// Name is the item description (e.g., "Soda").
	Name string

	// Price is the pre-tax price of the whole item.
	Price float64
}

// Label is the item's name, or "Item n" for an unnamed item at 0-based pos.
func (i BillItem) Label(pos int) string {
	if i.Name == "" {
		return fmt.Sprintf("Item %d", pos+1)
	}
	return i.Name
}

// BillTotals holds the authoritative bill-level amounts.
type BillTotals struct {
	Subtotal float64
	Tax      float64
}

// GrandTotal is always Subtotal + Tax.
func (t BillTotals) GrandTotal() float64 {
	return t.Subtotal + t.Tax
}
