package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitter/internal/gateway"
	"github.com/mmynk/splitter/internal/models"
)

// formatMoney renders an amount in the currency's minor units and format.
func formatMoney(v float64, code string) string {
	cur := money.New(0, code).Currency()
	minor := decimal.NewFromFloat(v).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}

// describe turns gateway errors into short operator messages.
func describe(err error) error {
	if errors.Is(err, gateway.ErrUnavailable) {
		return errors.New(gateway.Describe(err))
	}
	return err
}

type shareSpec struct {
	item, user, weight string
}

// parseShare splits "item=user:weight".
func parseShare(s string) (shareSpec, error) {
	item, rest, ok := strings.Cut(s, "=")
	if !ok {
		return shareSpec{}, fmt.Errorf("share %q: want item=user:weight", s)
	}
	user, weight, ok := strings.Cut(rest, ":")
	if !ok {
		return shareSpec{}, fmt.Errorf("share %q: want item=user:weight", s)
	}
	spec := shareSpec{
		item:   strings.TrimSpace(item),
		user:   strings.TrimSpace(user),
		weight: strings.TrimSpace(weight),
	}
	if spec.item == "" || spec.user == "" {
		return shareSpec{}, fmt.Errorf("share %q: item and user are required", s)
	}
	return spec, nil
}

// resolveItem accepts a 1-based position or a case-insensitive name.
func resolveItem(items []models.BillItem, ref string) (int, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(items) {
			return 0, fmt.Errorf("item %d: bill has %d items", n, len(items))
		}
		return n - 1, nil
	}
	for i, item := range items {
		if strings.EqualFold(item.Name, ref) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no item named %q", ref)
}

// resolveUser accepts a user ID or a case-insensitive name.
func resolveUser(users []models.User, ref string) (int64, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		if _, ok := models.FindUserByID(users, id); ok {
			return id, nil
		}
		return 0, fmt.Errorf("no user with ID %d", id)
	}
	for _, u := range users {
		if strings.EqualFold(u.Name, ref) {
			return u.ID, nil
		}
	}
	return 0, fmt.Errorf("no user named %q", ref)
}
