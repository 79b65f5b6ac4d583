package fallback

import (
	"math"
	"testing"

	"github.com/mmynk/splitter/internal/calculator"
	"github.com/mmynk/splitter/internal/models"
	"github.com/mmynk/splitter/internal/summarytext"
)

var users = []models.User{{ID: 1, Name: "Ann"}, {ID: 2, Name: "Bob"}, {ID: 3, Name: "Cy"}}

func split(id int64, name string, price float64, shares ...float64) models.ItemSplit {
	s := models.ItemSplit{Item: models.BillItem{ID: id, Name: name, Price: price}}
	for i, sh := range shares {
		s.Shares = append(s.Shares, models.ShareAssignment{UserID: users[i].ID, Share: sh})
	}
	return calculator.Allocate(s)
}

func TestCompute_TwoHalves(t *testing.T) {
	two := users[:2]
	splits := []models.ItemSplit{split(1, "Pizza", 10, 0.5, 0.5)}
	got := Compute(two, splits, models.BillTotals{Subtotal: 10, Tax: 1})

	if len(got.Users) != 2 {
		t.Fatalf("got %d users, want 2", len(got.Users))
	}
	for _, u := range got.Users {
		if u.Cost != 5.5 {
			t.Errorf("%s cost = %v, want 5.5", u.Name, u.Cost)
		}
	}
	if got.Subtotal != 10 || got.Tax != 1 || got.GrandTotal != 11 {
		t.Errorf("totals = %v/%v/%v, want 10/1/11", got.Subtotal, got.Tax, got.GrandTotal)
	}
}

func TestCompute_MatchesUserTotal(t *testing.T) {
	splits := []models.ItemSplit{
		split(1, "Pizza", 17.99, 1, 1, 1),
		split(2, "Wine", 23.5, 2, 1, 0),
		split(3, "Salad", 8.25, 0, 0, 1),
	}
	totals := models.BillTotals{Tax: 4.13}
	got := Compute(users, splits, totals)

	for i, u := range users {
		want := calculator.UserTotal(u.ID, splits, totals)
		if math.Abs(got.Users[i].Cost-want) > 0.005 {
			t.Errorf("%s cost = %v, want ≈ %v", u.Name, got.Users[i].Cost, want)
		}
	}
	if got.Subtotal != 49.74 {
		t.Errorf("subtotal = %v, want 49.74 (sum of prices)", got.Subtotal)
	}
}

func TestRender_RoundTrip(t *testing.T) {
	splits := []models.ItemSplit{
		split(1, "Pizza", 17.99, 1, 1, 1),
		split(2, "Wine", 23.5, 2, 1, 0),
		split(3, "Salad", 8.25, 0, 0, 1),
	}
	summary, text := Render(users, splits, models.BillTotals{Subtotal: 49.74, Tax: 4.13})
	decoded := summarytext.Decode(text)

	if len(decoded.Users) != len(summary.Users) {
		t.Fatalf("decoded %d users, want %d", len(decoded.Users), len(summary.Users))
	}
	for i := range summary.Users {
		if decoded.Users[i] != summary.Users[i] {
			t.Errorf("user %d = %+v, want %+v", i, decoded.Users[i], summary.Users[i])
		}
	}
	if decoded.Subtotal != summary.Subtotal || decoded.Tax != summary.Tax || decoded.GrandTotal != summary.GrandTotal {
		t.Errorf("totals = %+v, want %+v", decoded, summary)
	}
}
