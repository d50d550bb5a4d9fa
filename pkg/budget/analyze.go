package budget

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tripbudget/backend/pkg/advisor"
	"github.com/tripbudget/backend/pkg/ledger"
	"github.com/tripbudget/backend/pkg/summary"
)

// Analyze analyzes the spend of one itinerary or, with a nil id, of the
// whole ledger.
//
// The ledger wide analysis averages over the dates that carry spend and
// always uses the heuristic suggestions. The itinerary analysis averages
// over the days of the itinerary and prefers the advisor suggestions.
func (s *Service) Analyze(ctx context.Context, id *uuid.UUID) (summary.Analysis, error) {
	if id == nil {
		return s.analyzeLedger(ctx)
	}

	return s.analyzeItinerary(ctx, *id)
}

func (s *Service) analyzeLedger(ctx context.Context) (summary.Analysis, error) {
	records, err := s.store.ListRecords(ctx, nil)
	if err != nil {
		return summary.Analysis{}, err
	}

	total := ledger.TotalSpend(records)
	byCategory := ledger.SpendByCategory(records)

	return summary.Analysis{
		Total:       total,
		DailyAvg:    ledger.DailyAverage(total, ledger.SpendDates(records)),
		ByCategory:  byCategory,
		Suggestions: s.suggester.Heuristic(summary.HeuristicInput{ByCategory: byCategory}),
	}, nil
}

func (s *Service) analyzeItinerary(ctx context.Context, id uuid.UUID) (summary.Analysis, error) {
	it, err := s.itinerary(ctx, id)
	if err != nil {
		return summary.Analysis{}, err
	}

	records, err := s.records(ctx, id)
	if err != nil {
		return summary.Analysis{}, err
	}

	total := ledger.TotalSpend(records)
	byCategory := ledger.SpendByCategory(records)
	sum := summary.Build(it, records)

	suggestions := s.suggestAnalysis(ctx, id, advisor.AnalysisInput{
		TotalBudget:  it.Budget,
		DailyBudgets: sum.DailyBudgets(),
		SpentPerDay:  sum.SpentPerDay(),
		ByCategory:   byCategory,
	})

	if len(suggestions) == 0 {
		analysisFallbacks.Inc()
		suggestions = s.suggester.Heuristic(summary.HeuristicInput{
			TotalBudget:  &it.Budget,
			DailyBudgets: sum.DailyBudgets(),
			SpentPerDay:  sum.SpentPerDay(),
			ByCategory:   byCategory,
		})
	}

	return summary.Analysis{
		Total:       total,
		DailyAvg:    ledger.DailyAverage(total, len(it.Days)),
		ByCategory:  byCategory,
		Suggestions: suggestions,
	}, nil
}

// suggestAnalysis returns the advisor suggestions, or nil when there are none.
func (s *Service) suggestAnalysis(ctx context.Context, id uuid.UUID, in advisor.AnalysisInput) []string {
	if s.advisor == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	suggestions, err := s.advisor.SuggestAnalysis(ctx, in)
	if err != nil {
		log.Warn().Err(err).Str("itinerary", id.String()).Msg("Budget.Analyze[advisor-failed]")
		return nil
	}

	return suggestions
}
