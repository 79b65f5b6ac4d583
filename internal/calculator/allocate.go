// Package calculator implements the bill allocation arithmetic: converting
// share weights into per-user costs, apportioning tax by subtotal, and
// validating splits before they are finalized.
package calculator

import (
	"math"

	"github.com/mmynk/splitter/internal/models"
)

// TotalShares returns the sum of the (clamped) share weights on an item.
func TotalShares(split models.ItemSplit) float64 {
	var total float64
	for _, sh := range split.Shares {
		total += NormalizeShare(sh.Share)
	}
	return total
}

// Allocate recomputes every user's cost on an item in proportion to their share:
//
//	cost_i = share_i / Σ share × price
//
// Negative shares are clamped to zero first. When no user holds a share every
// cost is zero; rejecting such items is Validate's job, not Allocate's.
// The input split is not modified.
func Allocate(split models.ItemSplit) models.ItemSplit {
	out := split.Clone()
	for i := range out.Shares {
		out.Shares[i].Share = NormalizeShare(out.Shares[i].Share)
	}

	total := TotalShares(out)
	for i := range out.Shares {
		if total > 0 {
			out.Shares[i].Cost = out.Shares[i].Share / total * out.Item.Price
		} else {
			out.Shares[i].Cost = 0
		}
	}
	return out
}

// EqualSplit gives every user on the item a share of 1/N and reallocates.
// No rounding is applied, so costs may carry floating remainders.
func EqualSplit(split models.ItemSplit) models.ItemSplit {
	out := split.Clone()
	if len(out.Shares) == 0 {
		return out
	}
	equal := 1 / float64(len(out.Shares))
	for i := range out.Shares {
		out.Shares[i].Share = equal
	}
	return Allocate(out)
}

// EqualSplitAll applies EqualSplit to every item of a bill.
func EqualSplitAll(splits []models.ItemSplit) []models.ItemSplit {
	out := make([]models.ItemSplit, len(splits))
	for i, s := range splits {
		out[i] = EqualSplit(s)
	}
	return out
}

// AllocateAll applies Allocate to every item of a bill.
func AllocateAll(splits []models.ItemSplit) []models.ItemSplit {
	out := make([]models.ItemSplit, len(splits))
	for i, s := range splits {
		out[i] = Allocate(s)
	}
	return out
}

// NormalizeShare maps negative and non-finite weights to zero.
func NormalizeShare(share float64) float64 {
	if share > 0 && !math.IsInf(share, 1) {
		return share
	}
	return 0
}
