package models

// ShareAssignment is one user's weight on one item and the cost derived from it.
type ShareAssignment struct {
	UserID int64

	// Share is a relative, non-negative weight. Shares on an item are not
	// required to sum to 1.
	Share float64

	// Cost is derived from Share; it is never authoritative input.
	Cost float64
}

// ItemSplit is the allocation of one bill item among all current users.
// Shares holds exactly one entry per user, in the same user order for every
// ItemSplit of a bill.
type ItemSplit struct {
	Item   BillItem
	Shares []ShareAssignment
}

// Clone returns a deep copy of the split.
func (s ItemSplit) Clone() ItemSplit {
	shares := make([]ShareAssignment, len(s.Shares))
	copy(shares, s.Shares)
	return ItemSplit{Item: s.Item, Shares: shares}
}

// ShareFor returns the assignment for the given user.
func (s ItemSplit) ShareFor(userID int64) (ShareAssignment, bool) {
	for _, sh := range s.Shares {
		if sh.UserID == userID {
			return sh, true
		}
	}
	return ShareAssignment{}, false
}

// RemoteShareRecord is a share row as stored by the gateway.
//
// The gateway keys records by its own scheme, which is not guaranteed to
// agree with local item IDs. ItemID 0 and ItemName "" mean absent.
type RemoteShareRecord struct {
	ItemID   int64
	ItemName string
	UserID   int64
	Share    float64
	Cost     float64
}

// SubmittedShare is one user's weight in a finalize payload.
type SubmittedShare struct {
	UserID int64
	Share  float64
}

// SubmittedSplit is one item of a finalize payload.
type SubmittedSplit struct {
	ItemID   int64
	ItemName string
	Price    float64
	Shares   []SubmittedShare
}

// ToSubmitted converts edited splits into the finalize payload.
// Costs are dropped; the gateway derives its own.
func ToSubmitted(splits []ItemSplit) []SubmittedSplit {
	out := make([]SubmittedSplit, len(splits))
	for i, s := range splits {
		name := s.Item.Label(i)
		itemID := s.Item.ID
		if itemID == 0 {
			itemID = int64(i + 1)
		}
		shares := make([]SubmittedShare, len(s.Shares))
		for j, sh := range s.Shares {
			shares[j] = SubmittedShare{UserID: sh.UserID, Share: sh.Share}
		}
		out[i] = SubmittedSplit{
			ItemID:   itemID,
			ItemName: name,
			Price:    s.Item.Price,
			Shares:   shares,
		}
	}
	return out
}
