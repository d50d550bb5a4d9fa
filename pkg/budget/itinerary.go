package budget

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tripbudget/backend/pkg/allocation"
	"github.com/tripbudget/backend/pkg/models"
)

// CreateItinerary stores an itinerary with its days.
//
// The days are numbered 1..N in the given order. When no day has a budget,
// the total budget is split equally.
func (s *Service) CreateItinerary(ctx context.Context, it models.Itinerary) (models.Itinerary, error) {
	if it.Budget.IsNegative() {
		return models.Itinerary{}, ErrNegativeTotal
	}

	it.Days = append([]models.ItineraryDay(nil), it.Days...)

	budgeted := false
	for i := range it.Days {
		it.Days[i].DayIndex = i + 1
		it.Days[i].DailyBudget = allocation.Set(it.Days[i].DailyBudget)
		budgeted = budgeted || !it.Days[i].DailyBudget.IsZero()
	}

	if !budgeted {
		for i, b := range allocation.Equal(it.Budget, len(it.Days)) {
			it.Days[i].DailyBudget = b
		}
	}

	if err := s.store.CreateItinerary(ctx, &it); err != nil {
		return models.Itinerary{}, err
	}

	return s.itinerary(ctx, it.ID)
}

func (s *Service) GetItinerary(ctx context.Context, id uuid.UUID) (models.Itinerary, error) {
	return s.itinerary(ctx, id)
}

func (s *Service) ListItineraries(ctx context.Context) ([]models.Itinerary, error) {
	return s.store.ListItineraries(ctx)
}

// DeleteItinerary deletes the itinerary and its days. Budget records are kept.
func (s *Service) DeleteItinerary(ctx context.Context, id uuid.UUID) error {
	err := s.store.DeleteItinerary(ctx, id)
	if errors.Is(err, models.ErrResourceNotFound) {
		return ErrItineraryNotFound
	}

	return err
}
