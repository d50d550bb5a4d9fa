package models

import (
	"errors"
)

var (
	ErrGeneral           = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound  = errors.New("there is no")
	ErrDayIndexNotUnique = errors.New("the day index must be unique per itinerary")
)
