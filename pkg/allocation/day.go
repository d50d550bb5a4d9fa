package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Set returns the value as a daily budget, clamped to zero and rounded.
func Set(value decimal.Decimal) decimal.Decimal {
	return clamp(Round2(value))
}

// Adjust returns current + delta rounded and clamped to zero.
func Adjust(current, delta decimal.Decimal) decimal.Decimal {
	return clamp(Round2(current.Add(delta)))
}

func clamp(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}

	return d
}

// Share recomputes the allocation of the whole itinerary and returns the
// value for the day at the 1-based index. Only ModeEqual and
// ModeProportional are valid here.
func Share(mode Mode, total decimal.Decimal, spent []decimal.Decimal, index int) (decimal.Decimal, error) {
	if mode == ModeExternal {
		return decimal.Zero, fmt.Errorf("%w '%s' for a single day", ErrInvalidMode, mode)
	}

	if index < 1 || index > len(spent) {
		return decimal.Zero, fmt.Errorf("day %d is out of range 1..%d", index, len(spent))
	}

	allocation, _, err := Allocate(mode, total, spent, nil)
	if err != nil {
		return decimal.Zero, err
	}

	return allocation[index-1], nil
}
