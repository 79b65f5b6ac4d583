package calculator

import (
	"fmt"
	"math"

	"github.com/mmynk/splitter/internal/models"
)

// ValidationError reports an item nobody holds a share of.
// It blocks finalization and is never sent to the gateway.
type ValidationError struct {
	ItemName string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("please assign shares for %q", e.ItemName)
}

// Validate checks that every item has a positive, finite total share.
// It stops at the first failing item and reports only that one; unnamed
// items are reported by position.
func Validate(splits []models.ItemSplit) error {
	for i, s := range splits {
		total := TotalShares(s)
		if !(total > 0) || math.IsInf(total, 0) {
			return &ValidationError{ItemName: s.Item.Label(i)}
		}
	}
	return nil
}
