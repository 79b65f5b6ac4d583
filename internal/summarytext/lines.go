// Package summarytext reads and writes the line-oriented calculation summary
// exchanged with the gateway.
//
// Each line is a comma-separated list of "Key: value" fields. Recognised lines:
//
//	UserId: 3, Name: Ann, Total Cost: 12.50   legacy user line
//	Name: Ann, Total Cost: 12.50              named user line
//	UserId: 3, Total Cost: 12.5               id-only user line (gateway server)
//	Subtotal: 20.00
//	Tax: 2.00
//	Grand Total: 22.00
//
// Anything else is ignored.
package summarytext

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	keyUserID     = "UserId"
	keyName       = "Name"
	keyTotalCost  = "Total Cost"
	keySubtotal   = "Subtotal"
	keyTax        = "Tax"
	keyGrandTotal = "Grand Total"
)

var knownKeys = map[string]bool{
	keyUserID:     true,
	keyName:       true,
	keyTotalCost:  true,
	keySubtotal:   true,
	keyTax:        true,
	keyGrandTotal: true,
}

// Line is one recognised line of a calculation summary.
type Line interface {
	String() string
	line()
}

// LegacyUserLine carries both the user's ID and name.
type LegacyUserLine struct {
	UserID int64
	Name   string
	Cost   decimal.Decimal
}

// NamedUserLine carries only the user's name; the ID is resolved by roster lookup.
type NamedUserLine struct {
	Name string
	Cost decimal.Decimal
}

// IDUserLine carries only the user's ID; the name is resolved by roster lookup.
type IDUserLine struct {
	UserID int64
	Cost   decimal.Decimal
}

// SubtotalLine carries the bill subtotal.
type SubtotalLine struct{ Amount decimal.Decimal }

// TaxLine carries the bill tax.
type TaxLine struct{ Amount decimal.Decimal }

// GrandTotalLine carries the bill grand total.
type GrandTotalLine struct{ Amount decimal.Decimal }

func (LegacyUserLine) line() {}
func (NamedUserLine) line()  {}
func (IDUserLine) line()     {}
func (SubtotalLine) line()   {}
func (TaxLine) line()        {}
func (GrandTotalLine) line() {}

func (l LegacyUserLine) String() string {
	return field(keyUserID, strconv.FormatInt(l.UserID, 10)) + ", " +
		field(keyName, l.Name) + ", " +
		field(keyTotalCost, formatAmount(l.Cost))
}

func (l NamedUserLine) String() string {
	return field(keyName, l.Name) + ", " + field(keyTotalCost, formatAmount(l.Cost))
}

func (l IDUserLine) String() string {
	return field(keyUserID, strconv.FormatInt(l.UserID, 10)) + ", " + field(keyTotalCost, formatAmount(l.Cost))
}

func (l SubtotalLine) String() string   { return field(keySubtotal, formatAmount(l.Amount)) }
func (l TaxLine) String() string        { return field(keyTax, formatAmount(l.Amount)) }
func (l GrandTotalLine) String() string { return field(keyGrandTotal, formatAmount(l.Amount)) }

func field(key, value string) string {
	return key + ": " + value
}

// formatAmount writes cents with two decimals and keeps any finer precision.
func formatAmount(d decimal.Decimal) string {
	if d.Equal(d.Round(2)) {
		return d.StringFixed(2)
	}
	return d.String()
}

// ParseLine recognises a single summary line. It reports false for headers,
// blank lines, and user lines that are missing a name/ID or a valid cost.
func ParseLine(s string) (Line, bool) {
	fields := splitFields(s)

	if costText, ok := fields[keyTotalCost]; ok {
		cost, ok := parseAmount(costText)
		if !ok {
			return nil, false
		}
		id, hasID := parseUserID(fields[keyUserID])
		name, hasName := fields[keyName]
		hasName = hasName && name != ""
		switch {
		case hasID && hasName:
			return LegacyUserLine{UserID: id, Name: name, Cost: cost}, true
		case hasName:
			return NamedUserLine{Name: name, Cost: cost}, true
		case hasID:
			return IDUserLine{UserID: id, Cost: cost}, true
		default:
			return nil, false
		}
	}

	if v, ok := fields[keySubtotal]; ok {
		if amount, ok := parseAmount(v); ok {
			return SubtotalLine{Amount: amount}, true
		}
	}
	if v, ok := fields[keyTax]; ok {
		if amount, ok := parseAmount(v); ok {
			return TaxLine{Amount: amount}, true
		}
	}
	if v, ok := fields[keyGrandTotal]; ok {
		if amount, ok := parseAmount(v); ok {
			return GrandTotalLine{Amount: amount}, true
		}
	}
	return nil, false
}

// splitFields turns "A: 1, B: x" into {"A": "1", "B": "x"} for the
// recognised keys. The first occurrence of a key wins; values are trimmed.
// A Name value runs until the next recognised key, so names may contain
// commas: "Name: Smith, J, Total Cost: 5" yields Name "Smith, J".
func splitFields(s string) map[string]string {
	fields := make(map[string]string)
	open := ""
	for _, part := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(part, ":")
		key = strings.TrimSpace(key)
		if !ok || !knownKeys[key] {
			if open == keyName {
				fields[keyName] += "," + part
			}
			continue
		}
		open = ""
		if _, dup := fields[key]; dup {
			continue
		}
		fields[key] = value
		open = key
	}
	for k, v := range fields {
		fields[k] = strings.TrimSpace(v)
	}
	return fields
}

func parseUserID(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// parseAmount accepts unsigned decimals only ("12", "12.5", "12.50").
func parseAmount(s string) (decimal.Decimal, bool) {
	if s == "" || strings.ContainsAny(s, "+-eE") {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
