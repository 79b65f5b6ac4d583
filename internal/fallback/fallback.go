// Package fallback computes the calculation summary locally, for use when the
// gateway cannot produce an authoritative one.
//
// The result has the same shape and text encoding as a gateway summary, so
// callers never need to know which side produced it.
package fallback

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitter/internal/calculator"
	"github.com/mmynk/splitter/internal/models"
	"github.com/mmynk/splitter/internal/summarytext"
)

// Compute builds the summary from local state: each user's UserTotal plus the
// bill subtotal, tax and grand total, all rounded to cents.
func Compute(users []models.User, splits []models.ItemSplit, totals models.BillTotals) models.CalculationSummary {
	summary := models.CalculationSummary{
		Subtotal: cents(calculator.BillSubtotal(splits, totals)),
		Tax:      cents(totals.Tax),
	}
	summary.GrandTotal = cents(calculator.GrandTotal(splits, totals))

	for _, u := range users {
		summary.Users = append(summary.Users, models.UserCost{
			UserID: u.ID,
			Name:   u.Name,
			Cost:   cents(calculator.UserTotal(u.ID, splits, totals)),
		})
	}
	return summary
}

// Render computes the summary and its text encoding.
func Render(users []models.User, splits []models.ItemSplit, totals models.BillTotals) (models.CalculationSummary, string) {
	summary := Compute(users, splits, totals)
	return summary, summarytext.Encode(summary)
}

func cents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
