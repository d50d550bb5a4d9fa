// Package summary joins the daily budgets of an itinerary with the spend
// recorded in the ledger.
package summary

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tripbudget/backend/internal/types"
	"github.com/tripbudget/backend/pkg/ledger"
	"github.com/tripbudget/backend/pkg/models"
)

// Day is the budget state of a single itinerary day.
type Day struct {
	DayIndex    int             `json:"dayIndex" example:"1"`
	Date        *types.Date     `json:"date" swaggertype:"primitive,string" example:"2024-05-01"` // Calendar date of the day. Empty when the itinerary has no start date
	DailyBudget decimal.Decimal `json:"dailyBudget" example:"200"`
	Spent       decimal.Decimal `json:"spent" example:"100"`
	Remaining   decimal.Decimal `json:"remaining" example:"100"` // Negative when the day is over budget
}

// Summary is the budget state of a whole itinerary.
type Summary struct {
	ItineraryID    uuid.UUID       `json:"itineraryId" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	TotalBudget    decimal.Decimal `json:"totalBudget" example:"300"` // Stored total budget of the itinerary
	TotalSpent     decimal.Decimal `json:"totalSpent" example:"150"`  // Sum of the spend on all days
	TotalRemaining decimal.Decimal `json:"totalRemaining" example:"150"`
	Days           []Day           `json:"days"`
}

// Build computes the summary for an itinerary. The days of the itinerary
// must be ordered by their index.
func Build(itinerary models.Itinerary, records []models.BudgetRecord) Summary {
	s := Summary{
		ItineraryID: itinerary.ID,
		TotalBudget: itinerary.Budget,
		TotalSpent:  decimal.Zero,
		Days:        make([]Day, 0, len(itinerary.Days)),
	}

	for _, d := range itinerary.Days {
		day := Day{
			DayIndex:    d.DayIndex,
			DailyBudget: d.DailyBudget,
			Spent:       decimal.Zero,
		}

		if date, ok := d.Date(itinerary.StartDate); ok {
			day.Date = &date
			day.Spent = ledger.SpendForDate(records, itinerary.ID, date)
		}

		day.Remaining = day.DailyBudget.Sub(day.Spent)
		s.TotalSpent = s.TotalSpent.Add(day.Spent)
		s.Days = append(s.Days, day)
	}

	s.TotalRemaining = s.TotalBudget.Sub(s.TotalSpent)
	return s
}

// DailyBudgets returns the budget of every day in order.
func (s Summary) DailyBudgets() []decimal.Decimal {
	budgets := make([]decimal.Decimal, len(s.Days))
	for i, d := range s.Days {
		budgets[i] = d.DailyBudget
	}

	return budgets
}

// SpentPerDay returns the spend of every day in order.
func (s Summary) SpentPerDay() []decimal.Decimal {
	spent := make([]decimal.Decimal, len(s.Days))
	for i, d := range s.Days {
		spent[i] = d.Spent
	}

	return spent
}

// Analysis is the spend analysis of an itinerary or of the whole ledger.
type Analysis struct {
	Total       decimal.Decimal            `json:"total" example:"729"`    // Total spend
	DailyAvg    decimal.Decimal            `json:"dailyAvg" example:"243"` // Average spend per day
	ByCategory  map[string]decimal.Decimal `json:"byCategory"`             // Spend grouped by category
	Suggestions []string                   `json:"suggestions"`            // Human readable advice
}
