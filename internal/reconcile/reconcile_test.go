package reconcile

import (
	"errors"
	"testing"

	"github.com/mmynk/splitter/internal/models"
)

var (
	threeUsers = []models.User{{ID: 7, Name: "Ann"}, {ID: 8, Name: "Ben"}, {ID: 9, Name: "Cat"}}
	twoItems   = []models.BillItem{{ID: 1, Name: "Soda", Price: 2}, {ID: 2, Name: "Fries", Price: 4}}
)

func assertShare(t *testing.T, split models.ItemSplit, userID int64, wantShare, wantCost float64) {
	t.Helper()
	sh, ok := split.ShareFor(userID)
	if !ok {
		t.Fatalf("%s: no share for user %d", split.Item.Name, userID)
	}
	if sh.Share != wantShare || sh.Cost != wantCost {
		t.Errorf("%s user %d = {share:%v cost:%v}, want {share:%v cost:%v}",
			split.Item.Name, userID, sh.Share, sh.Cost, wantShare, wantCost)
	}
}

func TestReconcile_NoRecords(t *testing.T) {
	splits := Reconcile(twoItems, threeUsers, nil, nil)

	if len(splits) != 2 {
		t.Fatalf("got %d splits, want 2", len(splits))
	}
	count := 0
	for _, s := range splits {
		if len(s.Shares) != 3 {
			t.Errorf("%s has %d shares, want 3", s.Item.Name, len(s.Shares))
		}
		for _, sh := range s.Shares {
			count++
			if sh.Share != 0 || sh.Cost != 0 {
				t.Errorf("%s user %d not zero: %+v", s.Item.Name, sh.UserID, sh)
			}
		}
	}
	if count != 6 {
		t.Errorf("got %d assignments, want 6", count)
	}
}

func TestReconcile_FetchFailureIgnoresRecords(t *testing.T) {
	records := []models.RemoteShareRecord{{ItemID: 1, UserID: 7, Share: 1, Cost: 2}}
	splits := Reconcile(twoItems, threeUsers, records, errors.New("connection refused"))

	assertShare(t, splits[0], 7, 0, 0)
}

func TestReconcile_MatchByName(t *testing.T) {
	records := []models.RemoteShareRecord{{ItemName: "Soda", UserID: 7, Share: 1, Cost: 2}}
	items := []models.BillItem{{ID: 1, Name: "Soda", Price: 2}}
	splits := Reconcile(items, threeUsers, records, nil)

	assertShare(t, splits[0], 7, 1, 2)
	assertShare(t, splits[0], 8, 0, 0)
	assertShare(t, splits[0], 9, 0, 0)
}

func TestReconcile_Tiers(t *testing.T) {
	tests := []struct {
		name      string
		items     []models.BillItem
		records   []models.RemoteShareRecord
		wantShare []float64 // user 7's share on each item
	}{
		{
			name:  "id beats position and name",
			items: []models.BillItem{{ID: 11, Name: "Soda"}, {ID: 1, Name: "Fries"}},
			records: []models.RemoteShareRecord{
				{ItemName: "Soda", UserID: 7, Share: 3},
				{ItemID: 1, UserID: 7, Share: 2},
				{ItemID: 11, UserID: 7, Share: 1},
			},
			// Soda: id 11 matches. Fries: id 1 matches (tier 1) before anything else.
			wantShare: []float64{1, 2},
		},
		{
			name:  "position beats name",
			items: []models.BillItem{{Name: "Soda"}, {Name: "Fries"}},
			records: []models.RemoteShareRecord{
				{ItemName: "Fries", UserID: 7, Share: 5},
				{ItemID: 2, UserID: 7, Share: 4},
			},
			wantShare: []float64{0, 4},
		},
		{
			name:      "first record in a tier wins",
			items:     []models.BillItem{{ID: 1, Name: "Soda"}},
			records:   []models.RemoteShareRecord{{ItemID: 1, UserID: 7, Share: 1}, {ItemID: 1, UserID: 7, Share: 2}},
			wantShare: []float64{1},
		},
		{
			name:      "absent identifiers never match",
			items:     []models.BillItem{{Name: ""}},
			records:   []models.RemoteShareRecord{{UserID: 7, Share: 1}},
			wantShare: []float64{0},
		},
		{
			name:      "unmatched records are dropped",
			items:     []models.BillItem{{ID: 1, Name: "Soda"}},
			records:   []models.RemoteShareRecord{{ItemID: 40, ItemName: "Wine", UserID: 7, Share: 1}},
			wantShare: []float64{0},
		},
		{
			name:      "negative remote share is clamped",
			items:     []models.BillItem{{ID: 1, Name: "Soda"}},
			records:   []models.RemoteShareRecord{{ItemID: 1, UserID: 7, Share: -2}},
			wantShare: []float64{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits := Reconcile(tt.items, threeUsers, tt.records, nil)
			for i, want := range tt.wantShare {
				sh, _ := splits[i].ShareFor(7)
				if sh.Share != want {
					t.Errorf("item %d share = %v, want %v", i, sh.Share, want)
				}
			}
		})
	}
}

func TestReconcile_UserOrderIsConsistent(t *testing.T) {
	splits := Reconcile(twoItems, threeUsers, nil, nil)
	for _, s := range splits {
		for i, u := range threeUsers {
			if s.Shares[i].UserID != u.ID {
				t.Errorf("%s position %d has user %d, want %d", s.Item.Name, i, s.Shares[i].UserID, u.ID)
			}
		}
	}
}
