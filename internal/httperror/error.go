package httperror

import (
	"errors"
	"net/http"

	"github.com/tripbudget/backend/pkg/budget"
	"github.com/tripbudget/backend/pkg/models"
)

type Error struct {
	Message string `json:"error" example:"no itinerary found matching your query"`
}

func New(e error) Error {
	return Error{
		Message: e.Error(),
	}
}

// Status returns the HTTP status for an error returned by the service layer
func Status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) ||
		errors.Is(err, budget.ErrItineraryNotFound) ||
		errors.Is(err, budget.ErrDayNotFound) ||
		errors.Is(err, budget.ErrRecordNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}
