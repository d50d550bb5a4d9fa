package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/tripbudget/backend/pkg/allocation"
	"github.com/tripbudget/backend/pkg/models"
	"github.com/tripbudget/backend/pkg/summary"
)

// AIOptions are the optional inputs of an advisor reallocation.
type AIOptions struct {
	// Total replaces the stored total budget for the calculation when positive
	Total *decimal.Decimal

	// Records replace the stored records when not nil. Their itinerary ID is ignored.
	Records []models.BudgetRecord
}

// totalFor returns the override when it is positive and the stored total
// otherwise. A negative stored total is rejected.
func totalFor(it models.Itinerary, override *decimal.Decimal) (decimal.Decimal, error) {
	if override != nil && override.IsPositive() {
		return *override, nil
	}

	if it.Budget.IsNegative() {
		return decimal.Zero, ErrNegativeTotal
	}

	return it.Budget, nil
}

func spentPerDay(it models.Itinerary, records []models.BudgetRecord) []decimal.Decimal {
	return summary.Build(it, records).SpentPerDay()
}

// writeAllocation stores the allocation, one value per day in day order,
// and the new total when it is not nil.
func (s *Service) writeAllocation(ctx context.Context, it models.Itinerary, budgets []decimal.Decimal, total *decimal.Decimal) error {
	if len(budgets) != len(it.Days) {
		return fmt.Errorf("allocation has %d values for %d days", len(budgets), len(it.Days))
	}

	for i := range it.Days {
		it.Days[i].DailyBudget = budgets[i]
	}

	return s.store.SetAllocation(ctx, it.ID, it.Days, total)
}

// Reallocate splits the total budget over all days of the itinerary.
//
// A positive newTotal replaces the stored total budget. ModeExternal asks
// the advisor and falls back to the local policies.
func (s *Service) Reallocate(ctx context.Context, id uuid.UUID, newTotal *decimal.Decimal, mode allocation.Mode) (summary.Summary, error) {
	it, err := s.scheduled(ctx, id)
	if err != nil {
		return summary.Summary{}, err
	}

	records, err := s.records(ctx, id)
	if err != nil {
		return summary.Summary{}, err
	}

	total, err := totalFor(it, newTotal)
	if err != nil {
		return summary.Summary{}, err
	}
	spent := spentPerDay(it, records)

	var budgets []decimal.Decimal
	var outcome allocation.Outcome
	if mode == allocation.ModeExternal {
		budgets, outcome = s.externalAllocation(ctx, id, total, spent)
	} else {
		budgets, outcome, err = allocation.Allocate(mode, total, spent, nil)
		if err != nil {
			return summary.Summary{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	var stored *decimal.Decimal
	if newTotal != nil && newTotal.IsPositive() {
		stored = newTotal
	}

	if err := s.writeAllocation(ctx, it, budgets, stored); err != nil {
		return summary.Summary{}, err
	}

	log.Info().
		Str("itinerary", id.String()).
		Str("mode", string(mode)).
		Str("applied", string(outcome.Applied)).
		Str("total", total.String()).
		Int("days", len(budgets)).
		Msg("Budget.Reallocate")

	return s.Summary(ctx, id)
}

// AIReallocate lets the advisor split the total budget over the days.
//
// Advisor failures never surface: an invalid or missing suggestion is
// replaced by the proportional allocation, which itself falls back to
// the equal allocation when nothing has been spent yet.
func (s *Service) AIReallocate(ctx context.Context, id uuid.UUID, opts AIOptions) (summary.Summary, error) {
	it, err := s.scheduled(ctx, id)
	if err != nil {
		return summary.Summary{}, err
	}

	records := opts.Records
	if records == nil {
		records, err = s.records(ctx, id)
		if err != nil {
			return summary.Summary{}, err
		}
	} else {
		records = bindRecords(records, id)
	}

	total, err := totalFor(it, opts.Total)
	if err != nil {
		return summary.Summary{}, err
	}

	budgets, _ := s.externalAllocation(ctx, id, total, spentPerDay(it, records))

	if err := s.writeAllocation(ctx, it, budgets, nil); err != nil {
		return summary.Summary{}, err
	}

	return s.Summary(ctx, id)
}

// bindRecords returns copies of the records bound to the itinerary.
func bindRecords(records []models.BudgetRecord, id uuid.UUID) []models.BudgetRecord {
	bound := make([]models.BudgetRecord, len(records))
	for i, r := range records {
		r.ItineraryID = &id
		bound[i] = r
	}

	return bound
}

func (s *Service) externalAllocation(ctx context.Context, id uuid.UUID, total decimal.Decimal, spent []decimal.Decimal) ([]decimal.Decimal, allocation.Outcome) {
	logger := log.With().Str("itinerary", id.String()).Str("total", total.String()).Int("days", len(spent)).Logger()
	logger.Info().Msg("Budget.AIReallocate[call]")

	var candidate []decimal.Decimal
	if s.advisor != nil {
		actx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		suggested, err := s.advisor.SuggestAllocation(actx, total, spent)
		if err != nil {
			logger.Warn().Err(err).Msg("Budget.AIReallocate[advisor-failed]")
		} else {
			candidate = suggested
		}
	}

	budgets, outcome := allocation.External(total, spent, candidate)
	countFallback(outcome)

	if outcome.Fallback() {
		logger.Warn().Str("reason", string(outcome.Reason)).Str("applied", string(outcome.Applied)).Msg("Budget.AIReallocate[fallback-used]")
	} else {
		logger.Info().Msg("Budget.AIReallocate[success]")
	}

	return budgets, outcome
}

// locate returns the position of the selected day in it.Days.
func locate(it models.Itinerary, selector allocation.DaySelector) (int, error) {
	if selector == nil {
		return 0, ErrDayNotFound
	}

	index, err := selector.Resolve(it.StartDate)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDayNotFound, err)
	}

	for i, d := range it.Days {
		if d.DayIndex == index {
			return i, nil
		}
	}

	return 0, ErrDayNotFound
}

func (s *Service) writeDay(ctx context.Context, day models.ItineraryDay) error {
	err := s.store.SetDayBudgets(ctx, []models.ItineraryDay{day})
	if errors.Is(err, models.ErrResourceNotFound) {
		return ErrDayNotFound
	}

	return err
}

// UpdateDay sets the budget of a single day. Negative values are stored as zero.
func (s *Service) UpdateDay(ctx context.Context, id uuid.UUID, selector allocation.DaySelector, newBudget *decimal.Decimal) (summary.Summary, error) {
	it, err := s.itinerary(ctx, id)
	if err != nil {
		return summary.Summary{}, err
	}

	if newBudget == nil {
		return summary.Summary{}, ErrInvalidBudget
	}

	i, err := locate(it, selector)
	if err != nil {
		return summary.Summary{}, err
	}

	day := it.Days[i]
	day.DailyBudget = allocation.Set(*newBudget)
	if err := s.writeDay(ctx, day); err != nil {
		return summary.Summary{}, err
	}

	return s.Summary(ctx, id)
}

// AdjustDay changes the budget of a single day by delta. The result is
// never negative.
func (s *Service) AdjustDay(ctx context.Context, id uuid.UUID, selector allocation.DaySelector, delta *decimal.Decimal) (summary.Summary, error) {
	it, err := s.itinerary(ctx, id)
	if err != nil {
		return summary.Summary{}, err
	}

	if delta == nil {
		return summary.Summary{}, ErrDeltaRequired
	}

	i, err := locate(it, selector)
	if err != nil {
		return summary.Summary{}, err
	}

	day := it.Days[i]
	day.DailyBudget = allocation.Adjust(day.DailyBudget, *delta)
	if err := s.writeDay(ctx, day); err != nil {
		return summary.Summary{}, err
	}

	return s.Summary(ctx, id)
}

// ResetDay sets a single day to its share of the stored total budget.
//
// The share is taken from an allocation of all days with the given mode,
// but only the selected day is written.
func (s *Service) ResetDay(ctx context.Context, id uuid.UUID, selector allocation.DaySelector, mode allocation.Mode) (summary.Summary, error) {
	if mode == allocation.ModeExternal {
		return summary.Summary{}, fmt.Errorf("%w: %w '%s' for a single day", ErrInvalidInput, allocation.ErrInvalidMode, mode)
	}

	it, err := s.scheduled(ctx, id)
	if err != nil {
		return summary.Summary{}, err
	}

	i, err := locate(it, selector)
	if err != nil {
		return summary.Summary{}, err
	}

	records, err := s.records(ctx, id)
	if err != nil {
		return summary.Summary{}, err
	}

	total, err := totalFor(it, nil)
	if err != nil {
		return summary.Summary{}, err
	}

	share, err := allocation.Share(mode, total, spentPerDay(it, records), i+1)
	if err != nil {
		return summary.Summary{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	day := it.Days[i]
	day.DailyBudget = share
	if err := s.writeDay(ctx, day); err != nil {
		return summary.Summary{}, err
	}

	return s.Summary(ctx, id)
}
