// Package reconcile seeds a bill's editable splits from the share records the
// gateway already holds.
//
// The gateway does not key its records by a stable foreign key, so matching
// is a best-effort heuristic in three tiers, highest priority first:
//
//  1. record.ItemID equals the local item ID
//  2. record.ItemID equals the item's 1-based position in the bill
//  3. record.ItemName equals the local item name
//
// Tier 2 is unsafe if item order changes between save and reload: a record
// saved for one item silently attaches to whichever item now sits at that
// position. It is kept because records written before items had stable IDs
// can only be found that way.
package reconcile

import (
	"math"

	"github.com/mmynk/splitter/internal/models"
)

// Reconcile builds one ItemSplit per item with one ShareAssignment per user,
// taking share and cost from the best matching remote record.
//
// Pairs without a match start at zero. When fetchErr is non-nil or there are
// no records at all, every pair starts at zero, as for a bill with no prior
// state. Records that match nothing are dropped.
func Reconcile(items []models.BillItem, users []models.User, records []models.RemoteShareRecord, fetchErr error) []models.ItemSplit {
	if fetchErr != nil {
		records = nil
	}

	splits := make([]models.ItemSplit, len(items))
	for pos, item := range items {
		shares := make([]models.ShareAssignment, len(users))
		for i, u := range users {
			shares[i] = models.ShareAssignment{UserID: u.ID}
			if rec, ok := match(records, item, pos, u.ID); ok {
				shares[i].Share = nonNegative(rec.Share)
				shares[i].Cost = nonNegative(rec.Cost)
			}
		}
		splits[pos] = models.ItemSplit{Item: item, Shares: shares}
	}
	return splits
}

type tier func(rec models.RemoteShareRecord, item models.BillItem, pos int) bool

var tiers = []tier{
	func(rec models.RemoteShareRecord, item models.BillItem, _ int) bool {
		return rec.ItemID != 0 && item.ID != 0 && rec.ItemID == item.ID
	},
	func(rec models.RemoteShareRecord, _ models.BillItem, pos int) bool {
		return rec.ItemID != 0 && rec.ItemID == int64(pos+1)
	},
	func(rec models.RemoteShareRecord, item models.BillItem, _ int) bool {
		return rec.ItemName != "" && rec.ItemName == item.Name
	},
}

// match returns the first record for the user in the highest tier that has one.
func match(records []models.RemoteShareRecord, item models.BillItem, pos int, userID int64) (models.RemoteShareRecord, bool) {
	for _, matches := range tiers {
		for _, rec := range records {
			if rec.UserID == userID && matches(rec, item, pos) {
				return rec, true
			}
		}
	}
	return models.RemoteShareRecord{}, false
}

func nonNegative(v float64) float64 {
	if v > 0 && !math.IsInf(v, 1) {
		return v
	}
	return 0
}
