package budget

import (
	"errors"
	"fmt"
)

var (
	ErrItineraryNotFound = errors.New("there is no itinerary matching your query")
	ErrNoDays            = errors.New("the itinerary has no days")
	ErrDayNotFound       = errors.New("there is no itinerary day matching your query")
	ErrRecordNotFound    = errors.New("there is no budget record matching your query")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidBudget     = fmt.Errorf("%w: newBudget is required", ErrInvalidInput)
	ErrDeltaRequired     = fmt.Errorf("%w: delta is required", ErrInvalidInput)
	ErrNegativeTotal     = fmt.Errorf("%w: the total budget must not be negative", ErrInvalidInput)
)
