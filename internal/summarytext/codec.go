package summarytext

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitter/internal/models"
)

// Header is written as the first line of every encoded summary.
// Decoders ignore it.
const Header = "Total cost per user:"

// Parse returns the recognised lines of a summary in order.
func Parse(text string) []Line {
	var lines []Line
	for _, raw := range strings.Split(text, "\n") {
		if l, ok := ParseLine(strings.TrimRight(raw, "\r")); ok {
			lines = append(lines, l)
		}
	}
	return lines
}

// Decode parses a summary into its typed form.
//
// Rosters are searched in order to resolve users: pass the gateway's roster
// first and the locally known users second. A named user that no roster
// knows keeps its name as key; an ID-only user that no roster knows is
// dropped. A line carrying both ID and name keeps its ID when a roster
// agrees on the pair; otherwise the roster's ID for that name wins, and an
// unknown name keeps the line's ID. Missing totals are zero; a repeated
// total keeps the last value.
func Decode(text string, rosters ...[]models.User) models.CalculationSummary {
	var summary models.CalculationSummary
	for _, l := range Parse(text) {
		switch l := l.(type) {
		case LegacyUserLine:
			id := l.UserID
			if u, ok := lookupByID(rosters, id); !ok || u.Name != l.Name {
				if u, ok := lookupByName(rosters, l.Name); ok {
					id = u.ID
				}
			}
			summary.Users = append(summary.Users, models.UserCost{
				UserID: id,
				Name:   l.Name,
				Cost:   l.Cost.InexactFloat64(),
			})
		case NamedUserLine:
			var id int64
			if u, ok := lookupByName(rosters, l.Name); ok {
				id = u.ID
			}
			summary.Users = append(summary.Users, models.UserCost{
				UserID: id,
				Name:   l.Name,
				Cost:   l.Cost.InexactFloat64(),
			})
		case IDUserLine:
			u, ok := lookupByID(rosters, l.UserID)
			if !ok {
				continue
			}
			summary.Users = append(summary.Users, models.UserCost{
				UserID: u.ID,
				Name:   u.Name,
				Cost:   l.Cost.InexactFloat64(),
			})
		case SubtotalLine:
			summary.Subtotal = l.Amount.InexactFloat64()
		case TaxLine:
			summary.Tax = l.Amount.InexactFloat64()
		case GrandTotalLine:
			summary.GrandTotal = l.Amount.InexactFloat64()
		}
	}
	return summary
}

// Encode writes a summary in the legacy user-line form followed by the three
// total lines, so that Decode(Encode(s)) reproduces s for cent-rounded values.
func Encode(summary models.CalculationSummary) string {
	lines := make([]Line, 0, len(summary.Users)+3)
	for _, u := range summary.Users {
		lines = append(lines, LegacyUserLine{
			UserID: u.UserID,
			Name:   u.Name,
			Cost:   decimal.NewFromFloat(u.Cost),
		})
	}
	lines = append(lines,
		SubtotalLine{Amount: decimal.NewFromFloat(summary.Subtotal)},
		TaxLine{Amount: decimal.NewFromFloat(summary.Tax)},
		GrandTotalLine{Amount: decimal.NewFromFloat(summary.GrandTotal)},
	)
	return Write(lines)
}

// Write renders lines under the standard header.
func Write(lines []Line) string {
	var b strings.Builder
	b.WriteString(Header)
	for _, l := range lines {
		b.WriteByte('\n')
		b.WriteString(l.String())
	}
	return b.String()
}

func lookupByName(rosters [][]models.User, name string) (models.User, bool) {
	for _, roster := range rosters {
		if u, ok := models.FindUserByName(roster, name); ok {
			return u, true
		}
	}
	return models.User{}, false
}

func lookupByID(rosters [][]models.User, id int64) (models.User, bool) {
	for _, roster := range rosters {
		if u, ok := models.FindUserByID(roster, id); ok {
			return u, true
		}
	}
	return models.User{}, false
}
