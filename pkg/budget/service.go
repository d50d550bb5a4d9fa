// Package budget implements the budget operations of itineraries: daily
// budget reallocation, single day edits, summaries and spend analysis.
//
// The optional advisor only ever improves results. When it is missing, slow
// or returns garbage, the local allocation and the heuristic suggestions are
// used instead and no error is returned for it.
package budget

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tripbudget/backend/pkg/advisor"
	"github.com/tripbudget/backend/pkg/models"
	"github.com/tripbudget/backend/pkg/summary"
	"golang.org/x/text/language"
)

const defaultAdvisorTimeout = 15 * time.Second

// Store persists itineraries, their days and budget records.
type Store interface {
	CreateItinerary(ctx context.Context, itinerary *models.Itinerary) error
	GetItinerary(ctx context.Context, id uuid.UUID) (models.Itinerary, error)
	ListItineraries(ctx context.Context) ([]models.Itinerary, error)
	DeleteItinerary(ctx context.Context, id uuid.UUID) error
	SetDayBudgets(ctx context.Context, days []models.ItineraryDay) error
	SetAllocation(ctx context.Context, id uuid.UUID, days []models.ItineraryDay, total *decimal.Decimal) error

	CreateRecord(ctx context.Context, record *models.BudgetRecord) error
	DeleteRecord(ctx context.Context, id uuid.UUID) error
	ListRecords(ctx context.Context, itineraryID *uuid.UUID) ([]models.BudgetRecord, error)

	Ping(ctx context.Context) error
}

// Advisor suggests allocations and analysis texts, usually by asking a
// language model.
type Advisor interface {
	SuggestAllocation(ctx context.Context, total decimal.Decimal, spent []decimal.Decimal) ([]decimal.Decimal, error)
	SuggestAnalysis(ctx context.Context, in advisor.AnalysisInput) ([]string, error)
}

type Options struct {
	// Advisor is optional
	Advisor Advisor

	// AdvisorTimeout bounds every advisor call
	AdvisorTimeout time.Duration

	// Locale of the heuristic suggestions
	Locale language.Tag
}

type Service struct {
	store     Store
	advisor   Advisor
	timeout   time.Duration
	suggester summary.Suggester
}

func NewService(store Store, opts Options) *Service {
	timeout := opts.AdvisorTimeout
	if timeout <= 0 {
		timeout = defaultAdvisorTimeout
	}

	locale := opts.Locale
	if locale == language.Und {
		locale = language.English
	}

	return &Service{
		store:     store,
		advisor:   opts.Advisor,
		timeout:   timeout,
		suggester: summary.NewSuggester(locale),
	}
}

// itinerary loads an itinerary with its days ordered by index.
func (s *Service) itinerary(ctx context.Context, id uuid.UUID) (models.Itinerary, error) {
	it, err := s.store.GetItinerary(ctx, id)
	if errors.Is(err, models.ErrResourceNotFound) {
		return models.Itinerary{}, ErrItineraryNotFound
	}

	return it, err
}

// scheduled loads an itinerary that must have at least one day.
func (s *Service) scheduled(ctx context.Context, id uuid.UUID) (models.Itinerary, error) {
	it, err := s.itinerary(ctx, id)
	if err != nil {
		return it, err
	}

	if len(it.Days) == 0 {
		return it, ErrNoDays
	}

	return it, nil
}

func (s *Service) records(ctx context.Context, itineraryID uuid.UUID) ([]models.BudgetRecord, error) {
	return s.store.ListRecords(ctx, &itineraryID)
}

// Summary returns the budget summary of an itinerary.
func (s *Service) Summary(ctx context.Context, id uuid.UUID) (summary.Summary, error) {
	it, err := s.itinerary(ctx, id)
	if err != nil {
		return summary.Summary{}, err
	}

	records, err := s.records(ctx, id)
	if err != nil {
		return summary.Summary{}, err
	}

	return summary.Build(it, records), nil
}

// Ping checks that the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
