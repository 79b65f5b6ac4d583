// Package editor holds the share-editing state of one bill.
//
// A State is a snapshot: every mutation returns a new State and leaves the
// receiver untouched. Derived values (per-user totals, grand total) are
// computed on demand and never stored.
package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmynk/splitter/internal/calculator"
	"github.com/mmynk/splitter/internal/models"
)

var (
	// ErrNoUsers is returned by equal-split operations on an empty roster.
	ErrNoUsers = errors.New("no users available for equal splitting")
	// ErrItemIndex is returned for an item position outside the bill.
	ErrItemIndex = errors.New("item index out of range")
	// ErrUnknownUser is returned when a user is not on the roster.
	ErrUnknownUser = errors.New("user not on roster")
)

// State is an immutable snapshot of a bill being split.
type State struct {
	bill   models.Bill
	users  []models.User
	splits []models.ItemSplit
}

// New builds a state from reconciled splits. Costs are recomputed from shares.
func New(bill models.Bill, users []models.User, splits []models.ItemSplit) State {
	return State{
		bill:   bill,
		users:  append([]models.User(nil), users...),
		splits: calculator.AllocateAll(splits),
	}
}

// Bill returns the bill being split.
func (s State) Bill() models.Bill { return s.bill }

// Users returns a copy of the roster.
func (s State) Users() []models.User {
	return append([]models.User(nil), s.users...)
}

// Splits returns a deep copy of the current splits.
func (s State) Splits() []models.ItemSplit {
	out := make([]models.ItemSplit, len(s.splits))
	for i, sp := range s.splits {
		out[i] = sp.Clone()
	}
	return out
}

// Totals returns the bill-level totals used for tax allocation.
func (s State) Totals() models.BillTotals { return s.bill.Totals() }

// UpdateShare sets one user's weight on one item and reallocates that item.
// Negative, NaN and infinite weights are stored as zero.
func (s State) UpdateShare(itemIndex int, userID int64, share float64) (State, error) {
	if itemIndex < 0 || itemIndex >= len(s.splits) {
		return s, fmt.Errorf("%w: %d", ErrItemIndex, itemIndex)
	}
	next := s.withSplits()
	item := next.splits[itemIndex]
	found := false
	for i := range item.Shares {
		if item.Shares[i].UserID == userID {
			item.Shares[i].Share = calculator.NormalizeShare(share)
			found = true
		}
	}
	if !found {
		return s, fmt.Errorf("%w: %d", ErrUnknownUser, userID)
	}
	next.splits[itemIndex] = calculator.Allocate(item)
	return next, nil
}

// UpdateShareText is UpdateShare for free-form input; anything that does not
// parse as a finite number counts as zero.
func (s State) UpdateShareText(itemIndex int, userID int64, value string) (State, error) {
	share, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		share = 0
	}
	return s.UpdateShare(itemIndex, userID, share)
}

// EqualSplitItem gives every user 1/N of one item.
func (s State) EqualSplitItem(itemIndex int) (State, error) {
	if len(s.users) == 0 {
		return s, ErrNoUsers
	}
	if itemIndex < 0 || itemIndex >= len(s.splits) {
		return s, fmt.Errorf("%w: %d", ErrItemIndex, itemIndex)
	}
	next := s.withSplits()
	next.splits[itemIndex] = calculator.EqualSplit(next.splits[itemIndex])
	return next, nil
}

// EqualSplitAll gives every user 1/N of every item.
func (s State) EqualSplitAll() (State, error) {
	if len(s.users) == 0 {
		return s, ErrNoUsers
	}
	next := s.withSplits()
	next.splits = calculator.EqualSplitAll(next.splits)
	return next, nil
}

// AddItem appends an item with a zero share for every user.
func (s State) AddItem(item models.BillItem) State {
	next := s.withSplits()
	next.bill.Items = append(append([]models.BillItem(nil), s.bill.Items...), item)
	shares := make([]models.ShareAssignment, len(s.users))
	for i, u := range s.users {
		shares[i] = models.ShareAssignment{UserID: u.ID}
	}
	next.splits = append(next.splits, models.ItemSplit{Item: item, Shares: shares})
	return next
}

// RemoveUser drops a user from the roster and from every item, then
// reallocates so the remaining users absorb the item prices.
func (s State) RemoveUser(userID int64) (State, error) {
	if _, ok := models.FindUserByID(s.users, userID); !ok {
		return s, fmt.Errorf("%w: %d", ErrUnknownUser, userID)
	}
	next := s.withSplits()
	next.users = next.users[:0:0]
	for _, u := range s.users {
		if u.ID != userID {
			next.users = append(next.users, u)
		}
	}
	for i, sp := range next.splits {
		kept := sp.Shares[:0]
		for _, sh := range sp.Shares {
			if sh.UserID != userID {
				kept = append(kept, sh)
			}
		}
		sp.Shares = kept
		next.splits[i] = calculator.Allocate(sp)
	}
	return next, nil
}

// TotalShares returns the total weight on one item.
func (s State) TotalShares(itemIndex int) float64 {
	if itemIndex < 0 || itemIndex >= len(s.splits) {
		return 0
	}
	return calculator.TotalShares(s.splits[itemIndex])
}

// UserTotal returns what one user currently owes including tax.
func (s State) UserTotal(userID int64) float64 {
	return calculator.UserTotal(userID, s.splits, s.Totals())
}

// Subtotal returns the bill subtotal used for tax allocation.
func (s State) Subtotal() float64 {
	return calculator.BillSubtotal(s.splits, s.Totals())
}

// GrandTotal returns the bill subtotal plus tax.
func (s State) GrandTotal() float64 {
	return calculator.GrandTotal(s.splits, s.Totals())
}

// Validate reports the first item nobody holds a share of.
func (s State) Validate() error {
	return calculator.Validate(s.splits)
}

// withSplits returns a copy whose splits may be modified freely.
func (s State) withSplits() State {
	next := s
	next.users = append([]models.User(nil), s.users...)
	next.splits = s.Splits()
	return next
}
