package v1_test

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tripbudget/backend/internal/types"
	v1 "github.com/tripbudget/backend/pkg/controllers/v1"
	"github.com/tripbudget/backend/test"
)

var start = types.NewDate(2024, 5, 1)

// threeDays creates the standard scenario: 3 days, a total of 300 and
// spend of 100, 0 and 50 on the days.
func (suite *TestSuiteStandard) threeDays() v1.Itinerary {
	it := suite.createTestItinerary(v1.ItineraryEditable{
		Destination: "Lisbon",
		StartDate:   start,
		Budget:      decimal.NewFromInt(300),
		Days:        make([]v1.ItineraryDayEditable, 3),
	}).Data

	suite.spend(*it, 1, "food", -60)
	suite.spend(*it, 1, "transport", -40)
	suite.spend(*it, 3, "food", -50)

	return *it
}

func (suite *TestSuiteStandard) spend(it v1.Itinerary, day int, category string, amount int64) {
	suite.createTestRecord(v1.RecordEditable{
		ItineraryID: &it.ID,
		Category:    category,
		Amount:      decimal.NewFromInt(amount),
		Date:        it.StartDate.AddDays(day - 1),
	})
}

func (suite *TestSuiteStandard) TestItineraryCreate() {
	it := suite.createTestItinerary(v1.ItineraryEditable{
		Destination: "Kyoto",
		StartDate:   start,
		Budget:      decimal.NewFromInt(100),
		Days: []v1.ItineraryDayEditable{
			{Summary: "Temples"},
			{Summary: "Markets"},
			{Summary: "Departure"},
		},
	}).Data

	suite.Require().NotNil(it)
	suite.Require().Len(it.Days, 3)
	suite.Assert().Equal("Kyoto", it.Destination)
	suite.Assert().Equal("Markets", it.Days[1].Summary)
	for i, d := range it.Days {
		suite.Assert().Equal(i+1, d.DayIndex)
		suite.Assert().True(decimal.RequireFromString("33.33").Equal(d.DailyBudget), "day %d: %s", i+1, d.DailyBudget)
	}

	suite.Assert().Equal(baseURL+"/v1/itineraries/"+it.ID.String(), it.Links.Self)
	suite.Assert().Equal(baseURL+"/v1/budget/summary?itineraryId="+it.ID.String(), it.Links.Summary)
}

func (suite *TestSuiteStandard) TestItineraryCreateInvalidBody() {
	tests := []struct {
		name string
		body any
	}{
		{"Empty body", ""},
		{"Broken JSON", `{ "destination": "Kyoto"`},
		{"Invalid date", `{ "startDate": "May first" }`},
		{"Negative budget", `{ "budget": -300, "days": [{}, {}, {}] }`},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "/v1/itineraries", tt.body)
			test.AssertHTTPStatus(suite.T(), r, http.StatusBadRequest)

			var response v1.ItineraryResponse
			test.DecodeResponse(suite.T(), r, &response)
			suite.Assert().NotNil(response.Error)
			suite.Assert().Nil(response.Data)
		})
	}
}

func (suite *TestSuiteStandard) TestItineraryGetAndList() {
	it := suite.threeDays()

	r := suite.request(http.MethodGet, "/v1/itineraries/"+it.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), r, http.StatusOK)

	var response v1.ItineraryResponse
	test.DecodeResponse(suite.T(), r, &response)
	suite.Assert().Equal(it.ID, response.Data.ID)
	suite.Assert().Len(response.Data.Days, 3)

	r = suite.request(http.MethodGet, "/v1/itineraries", nil)
	test.AssertHTTPStatus(suite.T(), r, http.StatusOK)

	var list v1.ItineraryListResponse
	test.DecodeResponse(suite.T(), r, &list)
	suite.Require().Len(list.Data, 1)
	suite.Assert().Equal(it.ID, list.Data[0].ID)
}

func (suite *TestSuiteStandard) TestItineraryGetErrors() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No itinerary with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodGet, "/v1/itineraries/"+tt.id, nil)
			test.AssertHTTPStatus(suite.T(), r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestItineraryDelete() {
	it := suite.threeDays()

	r := suite.request(http.MethodDelete, "/v1/itineraries/"+it.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), r, http.StatusNoContent)

	r = suite.request(http.MethodGet, "/v1/itineraries/"+it.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), r, http.StatusNotFound)

	r = suite.request(http.MethodDelete, "/v1/itineraries/"+it.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), r, http.StatusNotFound)
	suite.Assert().Contains(test.DecodeError(suite.T(), r.Body.Bytes()), "there is no itinerary")

	// Records are kept
	r = suite.request(http.MethodGet, "/v1/budget/records?itineraryId="+it.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), r, http.StatusOK)

	var records v1.RecordListResponse
	test.DecodeResponse(suite.T(), r, &records)
	suite.Assert().Len(records.Data, 3)
}

func (suite *TestSuiteStandard) TestItineraryOptions() {
	tests := []struct {
		path  string
		allow string
	}{
		{"/v1", "OPTIONS, GET"},
		{"/v1/itineraries", "OPTIONS, GET, POST"},
		{"/v1/itineraries/" + uuid.New().String(), "OPTIONS, GET, DELETE"},
		{"/v1/budget/records", "OPTIONS, GET, POST"},
		{"/v1/budget/records/" + uuid.New().String(), "OPTIONS, DELETE"},
		{"/v1/budget/summary", "OPTIONS, GET"},
		{"/v1/budget/reallocate", "OPTIONS, POST"},
		{"/v1/budget/days/reset", "OPTIONS, POST"},
	}

	for _, tt := range tests {
		suite.Run(tt.path, func() {
			r := suite.request(http.MethodOptions, tt.path, nil)
			test.AssertHTTPStatus(suite.T(), r, http.StatusNoContent)
			suite.Assert().Equal(tt.allow, r.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestDatabaseClosed() {
	suite.CloseDB()

	r := suite.request(http.MethodGet, "/v1/itineraries", nil)
	test.AssertHTTPStatus(suite.T(), r, http.StatusInternalServerError)

	r = suite.request(http.MethodGet, "/healthz", nil)
	test.AssertHTTPStatus(suite.T(), r, http.StatusInternalServerError)
}
