// Package ledger aggregates spend from budget records.
//
// Only records with a negative amount are expenses. Their absolute value is
// the spend, positive and zero amounts are ignored everywhere.
package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tripbudget/backend/internal/types"
	"github.com/tripbudget/backend/pkg/models"
)

func spend(r models.BudgetRecord) (decimal.Decimal, bool) {
	if !r.IsSpend() {
		return decimal.Zero, false
	}

	return r.Amount.Abs(), true
}

func belongsTo(r models.BudgetRecord, itineraryID uuid.UUID) bool {
	return r.ItineraryID != nil && *r.ItineraryID == itineraryID
}

// SpendForDate returns the spend of an itinerary on a single date.
func SpendForDate(records []models.BudgetRecord, itineraryID uuid.UUID, date types.Date) decimal.Decimal {
	total := decimal.Zero

	for _, r := range records {
		if !belongsTo(r, itineraryID) || !r.Date.Equal(date) {
			continue
		}

		if s, ok := spend(r); ok {
			total = total.Add(s)
		}
	}

	return total
}

// SpendByCategory groups the spend of records by their category.
func SpendByCategory(records []models.BudgetRecord) map[string]decimal.Decimal {
	byCategory := make(map[string]decimal.Decimal)

	for _, r := range records {
		s, ok := spend(r)
		if !ok {
			continue
		}

		byCategory[r.Category] = byCategory[r.Category].Add(s)
	}

	return byCategory
}

// TotalSpend sums the spend of all records.
func TotalSpend(records []models.BudgetRecord) decimal.Decimal {
	total := decimal.Zero

	for _, r := range records {
		if s, ok := spend(r); ok {
			total = total.Add(s)
		}
	}

	return total
}

// SpendPerDay returns the spend of an itinerary for the days 1..n, indexed
// from 0. Day i is start + (i-1) days. Records outside of that range are
// ignored, and an unknown start date yields zero spend for every day.
func SpendPerDay(records []models.BudgetRecord, itineraryID uuid.UUID, start types.Date, n int) []decimal.Decimal {
	if n <= 0 {
		return []decimal.Decimal{}
	}

	perDay := make([]decimal.Decimal, n)
	for i := range perDay {
		perDay[i] = decimal.Zero
	}

	if start.IsZero() {
		return perDay
	}

	for _, r := range records {
		if !belongsTo(r, itineraryID) {
			continue
		}

		s, ok := spend(r)
		if !ok {
			continue
		}

		offset := r.Date.DaysSince(start)
		if offset < 0 || offset >= n {
			continue
		}

		perDay[offset] = perDay[offset].Add(s)
	}

	return perDay
}

// SpendDates returns the number of distinct dates with spend.
func SpendDates(records []models.BudgetRecord) int {
	dates := make(map[string]struct{})

	for _, r := range records {
		if r.IsSpend() {
			dates[r.Date.String()] = struct{}{}
		}
	}

	return len(dates)
}

// DailyAverage returns total / n rounded half up to two decimals, zero for n == 0.
func DailyAverage(total decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}

	return total.DivRound(decimal.NewFromInt(int64(n)), 2)
}
