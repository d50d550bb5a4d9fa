package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tripbudget/backend/internal/types"
)

// Itinerary is a planned trip with a total budget that is split over its days.
type Itinerary struct {
	DefaultModel
	Destination string          `json:"destination" example:"Kyoto"`
	StartDate   types.Date      `json:"startDate" swaggertype:"primitive,string" example:"2024-05-01"` // First day of the trip. May be unknown
	Budget      decimal.Decimal `json:"budget" gorm:"type:DECIMAL(20,8)" example:"1500"`               // Total budget for the whole trip
	PeopleCount int             `json:"peopleCount" example:"2"`
	Preferences string          `json:"preferences" example:"food, temples"`
	Summary     string          `json:"summary" example:"Five relaxed days in Kyoto"`
	Days        []ItineraryDay  `json:"days" gorm:"constraint:OnDelete:CASCADE"`
}

// ItineraryDay is the schedule entry for a single day of an itinerary.
//
// Days are numbered 1..N and day i takes place on StartDate + (i-1) days.
type ItineraryDay struct {
	DefaultModel
	ItineraryID uuid.UUID       `json:"itineraryId" gorm:"type:uuid;uniqueIndex:idx_itinerary_day" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	DayIndex    int             `json:"dayIndex" gorm:"uniqueIndex:idx_itinerary_day" example:"1"`
	DailyBudget decimal.Decimal `json:"dailyBudget" gorm:"type:DECIMAL(20,8)" example:"300"`
	Summary     string          `json:"summary" example:"Fushimi Inari in the morning"`
}

// Date returns the calendar date of the day. The second return value
// is false when the itinerary start date is unknown.
func (d ItineraryDay) Date(start types.Date) (types.Date, bool) {
	if start.IsZero() {
		return types.Date{}, false
	}

	return start.AddDays(d.DayIndex - 1), true
}
