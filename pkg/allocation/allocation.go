// Package allocation splits a total budget over the days of an itinerary.
//
// All results are rounded half up to two decimals. The sum of an allocation
// may differ from the total by up to 0.01 per day and is never corrected.
package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tolerance is the allowed rounding drift per day
var Tolerance = decimal.New(1, -2)

// CandidateTolerance is the allowed difference between the sum of an
// external candidate and the total, independent of the number of days.
var CandidateTolerance = decimal.New(1, -2)

// FallbackReason describes why an external allocation was not applied.
type FallbackReason string

const (
	ReasonNone        FallbackReason = ""
	ReasonUnavailable FallbackReason = "unavailable"
	ReasonLength      FallbackReason = "length_mismatch"
	ReasonNegative    FallbackReason = "negative_value"
	ReasonSumMismatch FallbackReason = "sum_mismatch"
	ReasonNoSpend     FallbackReason = "no_spend"
)

// Outcome reports the policy that produced an allocation.
type Outcome struct {
	Applied Mode
	Reason  FallbackReason
}

// Fallback reports whether the requested policy could not be applied.
func (o Outcome) Fallback() bool {
	return o.Reason != ReasonNone
}

// Round2 rounds half up to two decimals.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Equal gives every one of n days round2(total / n).
func Equal(total decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return []decimal.Decimal{}
	}

	share := total.DivRound(decimal.NewFromInt(int64(n)), 2)

	allocation := make([]decimal.Decimal, n)
	for i := range allocation {
		allocation[i] = share
	}

	return allocation
}

// Proportional weights the total by spend, falling back to Equal when
// there is no spend at all.
func Proportional(total decimal.Decimal, spent []decimal.Decimal) []decimal.Decimal {
	allocation, _ := proportional(total, spent)
	return allocation
}

func proportional(total decimal.Decimal, spent []decimal.Decimal) ([]decimal.Decimal, Outcome) {
	sum := decimal.Sum(decimal.Zero, spent...)
	if !sum.IsPositive() {
		return Equal(total, len(spent)), Outcome{Applied: ModeEqual, Reason: ReasonNoSpend}
	}

	allocation := make([]decimal.Decimal, len(spent))
	for i, s := range spent {
		allocation[i] = total.Mul(s).DivRound(sum, 2)
	}

	return allocation, Outcome{Applied: ModeProportional}
}

// External validates a candidate allocation from an outside source.
//
// The candidate is accepted when it has one non-negative value per day and
// its sum is within CandidateTolerance of the total. Otherwise the result
// of Proportional is returned. A nil candidate means the source was not available.
func External(total decimal.Decimal, spent []decimal.Decimal, candidate []decimal.Decimal) ([]decimal.Decimal, Outcome) {
	reason := validate(total, len(spent), candidate)
	if reason == ReasonNone {
		allocation := make([]decimal.Decimal, len(candidate))
		for i, c := range candidate {
			allocation[i] = Round2(c)
		}

		return allocation, Outcome{Applied: ModeExternal}
	}

	allocation, outcome := proportional(total, spent)
	outcome.Reason = reason

	return allocation, outcome
}

func validate(total decimal.Decimal, n int, candidate []decimal.Decimal) FallbackReason {
	if candidate == nil {
		return ReasonUnavailable
	}

	if len(candidate) != n {
		return ReasonLength
	}

	sum := decimal.Zero
	for _, c := range candidate {
		if c.IsNegative() {
			return ReasonNegative
		}
		sum = sum.Add(c)
	}

	if sum.Sub(total).Abs().GreaterThan(CandidateTolerance) {
		return ReasonSumMismatch
	}

	return ReasonNone
}

// Allocate computes the allocation for the given mode. candidate is only
// used by ModeExternal.
func Allocate(mode Mode, total decimal.Decimal, spent []decimal.Decimal, candidate []decimal.Decimal) ([]decimal.Decimal, Outcome, error) {
	switch mode {
	case ModeEqual:
		return Equal(total, len(spent)), Outcome{Applied: ModeEqual}, nil
	case ModeProportional:
		allocation, outcome := proportional(total, spent)
		return allocation, outcome, nil
	case ModeExternal:
		allocation, outcome := External(total, spent, candidate)
		return allocation, outcome, nil
	}

	return nil, Outcome{}, fmt.Errorf("%w '%s'", ErrInvalidMode, mode)
}
