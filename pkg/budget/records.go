package budget

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/tripbudget/backend/internal/types"
	"github.com/tripbudget/backend/pkg/models"
)

// RecordFilter narrows down a record listing. Zero values do not filter.
type RecordFilter struct {
	ItineraryID *uuid.UUID
	Date        types.Date
	Category    string // Glob pattern, e.g. "food*"
}

func (f RecordFilter) match(r models.BudgetRecord) bool {
	if !f.Date.IsZero() && !r.Date.Equal(f.Date) {
		return false
	}

	if f.Category != "" && !glob.Glob(f.Category, r.Category) {
		return false
	}

	return true
}

// AddRecord creates a budget record. The ID is generated unless set and
// the date defaults to today.
func (s *Service) AddRecord(ctx context.Context, record *models.BudgetRecord) error {
	if record.ItineraryID != nil {
		if _, err := s.itinerary(ctx, *record.ItineraryID); err != nil {
			return err
		}
	}

	return s.store.CreateRecord(ctx, record)
}

func (s *Service) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	err := s.store.DeleteRecord(ctx, id)
	if errors.Is(err, models.ErrResourceNotFound) {
		return ErrRecordNotFound
	}

	return err
}

// ListRecords returns the records matching the filter ordered by date.
func (s *Service) ListRecords(ctx context.Context, filter RecordFilter) ([]models.BudgetRecord, error) {
	records, err := s.store.ListRecords(ctx, filter.ItineraryID)
	if err != nil {
		return nil, err
	}

	matching := make([]models.BudgetRecord, 0, len(records))
	for _, r := range records {
		if filter.match(r) {
			matching = append(matching, r)
		}
	}

	return matching, nil
}
