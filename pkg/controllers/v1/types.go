package v1

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tripbudget/backend/internal/types"
	ez_uuid "github.com/tripbudget/backend/internal/uuid"
	"github.com/tripbudget/backend/pkg/allocation"
	"github.com/tripbudget/backend/pkg/budget"
	"github.com/tripbudget/backend/pkg/models"
	"github.com/tripbudget/backend/pkg/summary"
)

var (
	errItineraryIDParameter = errors.New("the itineraryId parameter must be set")
	errExportFormat         = errors.New("the format parameter must be one of [xlsx pdf]")
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id"` // The ID of the resource
}

type QueryItinerary struct {
	ItineraryID ez_uuid.UUID `form:"itineraryId"` // ID of the itinerary
}

// require returns the itinerary ID or an error if it is not set.
func (q QueryItinerary) require() (uuid.UUID, error) {
	if q.ItineraryID == ez_uuid.Nil {
		return uuid.Nil, errItineraryIDParameter
	}

	return q.ItineraryID.UUID, nil
}

type QueryExport struct {
	QueryItinerary
	Format string `form:"format" example:"xlsx"` // Export format, "xlsx" or "pdf"
}

type RecordQueryFilter struct {
	ItineraryID ez_uuid.UUID `form:"itineraryId"`                // Filter by itinerary
	Date        types.Date   `form:"date" example:"2024-05-02"` // Filter by date
	Category    string       `form:"category" example:"food*"`  // Filter by category. Supports glob patterns
}

func (f RecordQueryFilter) filter() budget.RecordFilter {
	return budget.RecordFilter{
		ItineraryID: f.ItineraryID.Ptr(),
		Date:        f.Date,
		Category:    f.Category,
	}
}

// ItineraryDayEditable is a day as sent by clients.
type ItineraryDayEditable struct {
	DailyBudget decimal.Decimal `json:"dailyBudget" example:"300"` // Budget of the day. When no day has a budget, the total is split equally
	Summary     string          `json:"summary" example:"Fushimi Inari in the morning"`
}

// ItineraryEditable is an itinerary as sent by clients. Days are numbered
// in the order they are sent.
type ItineraryEditable struct {
	Destination string                 `json:"destination" example:"Kyoto"`
	StartDate   types.Date             `json:"startDate" swaggertype:"primitive,string" example:"2024-05-01"`
	Budget      decimal.Decimal        `json:"budget" example:"1500"`
	PeopleCount int                    `json:"peopleCount" example:"2"`
	Preferences string                 `json:"preferences" example:"food, temples"`
	Summary     string                 `json:"summary" example:"Five relaxed days in Kyoto"`
	Days        []ItineraryDayEditable `json:"days"`
}

func (e ItineraryEditable) model() models.Itinerary {
	days := make([]models.ItineraryDay, 0, len(e.Days))
	for _, d := range e.Days {
		days = append(days, models.ItineraryDay{
			DailyBudget: d.DailyBudget,
			Summary:     d.Summary,
		})
	}

	return models.Itinerary{
		Destination: e.Destination,
		StartDate:   e.StartDate,
		Budget:      e.Budget,
		PeopleCount: e.PeopleCount,
		Preferences: e.Preferences,
		Summary:     e.Summary,
		Days:        days,
	}
}

type Itinerary struct {
	models.Itinerary
	Links ItineraryLinks `json:"links"`
}

type ItineraryLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/itineraries/65392deb-5e92-4268-b114-297faad6cdce"`                   // The itinerary itself
	Summary string `json:"summary" example:"https://example.com/api/v1/budget/summary?itineraryId=65392deb-5e92-4268-b114-297faad6cdce"` // Budget summary of the itinerary
	Analyze string `json:"analyze" example:"https://example.com/api/v1/budget/analyze?itineraryId=65392deb-5e92-4268-b114-297faad6cdce"` // Spend analysis of the itinerary
	Records string `json:"records" example:"https://example.com/api/v1/budget/records?itineraryId=65392deb-5e92-4268-b114-297faad6cdce"` // Budget records of the itinerary
}

func newItinerary(url string, m models.Itinerary) Itinerary {
	query := "?itineraryId=" + m.ID.String()

	return Itinerary{
		Itinerary: m,
		Links: ItineraryLinks{
			Self:    url + "/v1/itineraries/" + m.ID.String(),
			Summary: url + "/v1/budget/summary" + query,
			Analyze: url + "/v1/budget/analyze" + query,
			Records: url + "/v1/budget/records" + query,
		},
	}
}

type ItineraryResponse struct {
	Error *string    `json:"error" example:"the itinerary has no days"` // The error, if any occurred
	Data  *Itinerary `json:"data"`                                      // Data for the itinerary
}

type ItineraryListResponse struct {
	Error *string     `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
	Data  []Itinerary `json:"data"`                                                                // List of itineraries
}

// RecordEditable is a budget record as sent by clients.
type RecordEditable struct {
	ItineraryID *uuid.UUID      `json:"itineraryId" example:"65392deb-5e92-4268-b114-297faad6cdce"` // Itinerary the record belongs to. Optional
	Category    string          `json:"category" example:"food"`
	Amount      decimal.Decimal `json:"amount" example:"-12.50"` // Negative amounts are expenses
	Description string          `json:"description" example:"Ramen for lunch"`
	Date        types.Date      `json:"date" swaggertype:"primitive,string" example:"2024-05-02"` // Defaults to today
}

func (e RecordEditable) model() models.BudgetRecord {
	return models.BudgetRecord{
		ItineraryID: e.ItineraryID,
		Category:    e.Category,
		Amount:      e.Amount,
		Description: e.Description,
		Date:        e.Date,
	}
}

type Record struct {
	models.BudgetRecord
	Links RecordLinks `json:"links"`
}

type RecordLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/budget/records/4a0a4c7d-8f2a-4c55-9a5c-2bd0c0a4c7a1"` // The record itself
}

func newRecord(url string, m models.BudgetRecord) Record {
	return Record{
		BudgetRecord: m,
		Links: RecordLinks{
			Self: url + "/v1/budget/records/" + m.ID.String(),
		},
	}
}

type RecordResponse struct {
	Error *string `json:"error" example:"there is no itinerary matching your query"` // The error, if any occurred
	Data  *Record `json:"data"`                                                      // Data for the record
}

type RecordListResponse struct {
	Error *string  `json:"error" example:"the query string contains unparseable data. Please check the values"` // The error, if any occurred
	Data  []Record `json:"data"`                                                                                 // List of records
}

type SummaryResponse struct {
	Error *string          `json:"error" example:"there is no itinerary day matching your query"` // The error, if any occurred
	Data  *summary.Summary `json:"data"`                                                          // Budget summary of the itinerary
}

type AnalysisResponse struct {
	Error *string           `json:"error" example:"there is no itinerary matching your query"` // The error, if any occurred
	Data  *summary.Analysis `json:"data"`                                                      // Spend analysis
}

// ReallocateRequest splits the total budget over all days.
type ReallocateRequest struct {
	ItineraryID uuid.UUID        `json:"itineraryId" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Mode        string           `json:"mode" example:"proportional"` // One of "equal", "proportional", "external" or "ai". Defaults to "equal"
	NewTotal    *decimal.Decimal `json:"newTotal" example:"1800"`     // Replaces the total budget when positive
	Records     []RecordEditable `json:"records"`                     // Records to use instead of the stored ones. Only used by the external mode
}

// DayRequest selects a single day by its index or its date. The index
// takes precedence.
type DayRequest struct {
	ItineraryID uuid.UUID  `json:"itineraryId" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	DayIndex    int        `json:"dayIndex" example:"2"`
	Date        types.Date `json:"date" swaggertype:"primitive,string" example:"2024-05-02"`
}

func (r DayRequest) selector() allocation.DaySelector {
	return allocation.Select(r.DayIndex, r.Date)
}

type DayUpdateRequest struct {
	DayRequest
	NewBudget *decimal.Decimal `json:"newBudget" example:"120"` // New budget of the day. Negative values are stored as zero
}

type DayAdjustRequest struct {
	DayRequest
	Delta *decimal.Decimal `json:"delta" example:"-25"` // Change of the budget. The result is never negative
}

type DayResetRequest struct {
	DayRequest
	Mode string `json:"mode" example:"equal"` // "equal" or "proportional". Defaults to "equal"
}
