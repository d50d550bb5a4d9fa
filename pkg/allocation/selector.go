package allocation

import (
	"errors"

	"github.com/tripbudget/backend/internal/types"
)

var (
	ErrNoSelector       = errors.New("a day index or a date is required")
	ErrUnknownStartDate = errors.New("the itinerary has no start date, select the day by index")
)

// DaySelector identifies a single day of an itinerary, either by its
// 1-based index or by its calendar date.
type DaySelector interface {
	// Resolve returns the 1-based day index for an itinerary starting on start.
	Resolve(start types.Date) (int, error)
	selector()
}

type ByIndex int

func (i ByIndex) Resolve(types.Date) (int, error) {
	return int(i), nil
}

func (ByIndex) selector() {}

type ByDate types.Date

func (d ByDate) Resolve(start types.Date) (int, error) {
	if start.IsZero() {
		return 0, ErrUnknownStartDate
	}

	return types.Date(d).DaysSince(start) + 1, nil
}

func (ByDate) selector() {}

// Select builds a selector from optional request values. A positive index
// takes precedence over the date. It returns nil when neither is set.
func Select(index int, date types.Date) DaySelector {
	if index > 0 {
		return ByIndex(index)
	}

	if !date.IsZero() {
		return ByDate(date)
	}

	return nil
}
