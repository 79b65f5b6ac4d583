package commands

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/mmynk/splitter/internal/editor"
	"github.com/mmynk/splitter/internal/models"
	"github.com/mmynk/splitter/internal/reconcile"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{6.6, "$6.60"},
		{1234.5, "$1,234.50"},
		{0.005, "$0.01"},
		{0, "$0.00"},
	}
	for _, tt := range tests {
		if got := formatMoney(tt.v, "USD"); got != tt.want {
			t.Errorf("formatMoney(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestParseShare(t *testing.T) {
	tests := []struct {
		in      string
		want    shareSpec
		wantErr bool
	}{
		{in: "pizza=ann:2", want: shareSpec{"pizza", "ann", "2"}},
		{in: " 1 = 7 : 0.5 ", want: shareSpec{"1", "7", "0.5"}},
		{in: "pizza=ann:", want: shareSpec{"pizza", "ann", ""}},
		{in: "pizza:ann=2", wantErr: true},
		{in: "pizza=ann", wantErr: true},
		{in: "=ann:1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseShare(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseShare failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseShare() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func testState() editor.State {
	bill := models.Bill{
		ID:       1,
		Items:    []models.BillItem{{ID: 1, Name: "Pizza", Price: 9}, {ID: 2, Name: "Soda", Price: 2}},
		Subtotal: 11,
		Tax:      1.1,
	}
	users := []models.User{{ID: 7, Name: "Ann"}, {ID: 8, Name: "Bob"}}
	return editor.New(bill, users, reconcile.Reconcile(bill.Items, users, nil, nil))
}

func TestApplyShare(t *testing.T) {
	state := testState()

	var err error
	for _, s := range []string{"pizza=ann:2", "1=8:1", "Soda=BOB:1"} {
		if state, err = applyShare(state, s); err != nil {
			t.Fatalf("applyShare(%q) failed: %v", s, err)
		}
	}

	pizza := state.Splits()[0]
	ann, _ := pizza.ShareFor(7)
	bob, _ := pizza.ShareFor(8)
	if math.Abs(ann.Cost-6) > 1e-9 || math.Abs(bob.Cost-3) > 1e-9 {
		t.Errorf("pizza costs = %v/%v, want 6/3", ann.Cost, bob.Cost)
	}
	if err := state.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	for _, bad := range []string{"3=ann:1", "cake=ann:1", "pizza=9:1", "pizza=cy:1"} {
		if _, err := applyShare(state, bad); err == nil {
			t.Errorf("applyShare(%q) should fail", bad)
		}
	}
}

func TestPrintSummary(t *testing.T) {
	currency = "USD"
	var buf bytes.Buffer
	err := printSummary(&buf, models.CalculationSummary{
		Users:    []models.UserCost{{UserID: 7, Name: "Ann", Cost: 6.6}, {Name: "Cy", Cost: 1}},
		Subtotal: 7,
		Tax:      0.6,
	})
	if err != nil {
		t.Fatalf("printSummary failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Ann", "$6.60", "Cy", "Grand Total", "$7.60"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
