package v1_test

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tripbudget/backend/internal/types"
	v1 "github.com/tripbudget/backend/pkg/controllers/v1"
	"github.com/tripbudget/backend/test"
)

func (suite *TestSuiteStandard) TestRecordCreate() {
	r := suite.createTestRecord(v1.RecordEditable{
		Category:    " souvenirs ",
		Amount:      decimal.RequireFromString("-12.5"),
		Description: "Fans",
	}).Data

	suite.Require().NotNil(r)
	suite.Assert().Equal("souvenirs", r.Category)
	suite.Assert().Nil(r.ItineraryID)
	suite.Assert().True(types.Today().Equal(r.Date), "date defaults to today, got %s", r.Date)
	suite.Assert().Equal(baseURL+"/v1/budget/records/"+r.ID.String(), r.Links.Self)
}

func (suite *TestSuiteStandard) TestRecordCreateErrors() {
	unknown := uuid.New()

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Empty body", "", http.StatusBadRequest},
		{"Amount is not a number", `{"amount": "a lot"}`, http.StatusBadRequest},
		{"Unknown itinerary", v1.RecordEditable{ItineraryID: &unknown, Amount: decimal.NewFromInt(-1)}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "/v1/budget/records", tt.body)
			test.AssertHTTPStatus(suite.T(), r, tt.status)
			suite.Assert().NotEmpty(test.DecodeError(suite.T(), r.Body.Bytes()))
		})
	}
}

func (suite *TestSuiteStandard) TestRecordList() {
	it := suite.threeDays()
	suite.createTestRecord(v1.RecordEditable{Category: "food", Amount: decimal.NewFromInt(-5), Date: start})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 4},
		{"Itinerary", "?itineraryId=" + it.ID.String(), 3},
		{"Date", "?date=2024-05-01", 3},
		{"Category glob", "?category=f*", 3},
		{"Combined", "?itineraryId=" + it.ID.String() + "&date=2024-05-01&category=trans*", 1},
		{"No match", "?category=lodging", 0},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodGet, "/v1/budget/records"+tt.query, nil)
			test.AssertHTTPStatus(suite.T(), r, http.StatusOK)

			var response v1.RecordListResponse
			test.DecodeResponse(suite.T(), r, &response)
			suite.Assert().Len(response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestRecordListInvalidQuery() {
	for _, query := range []string{"?itineraryId=NotAUUID", "?date=tomorrow"} {
		r := suite.request(http.MethodGet, "/v1/budget/records"+query, nil)
		test.AssertHTTPStatus(suite.T(), r, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestRecordDelete() {
	record := suite.createTestRecord(v1.RecordEditable{Category: "food", Amount: decimal.NewFromInt(-5)}).Data

	path := strings.TrimPrefix(record.Links.Self, baseURL)

	r := suite.request(http.MethodDelete, path, nil)
	test.AssertHTTPStatus(suite.T(), r, http.StatusNoContent)

	r = suite.request(http.MethodDelete, path, nil)
	test.AssertHTTPStatus(suite.T(), r, http.StatusNotFound)

	r = suite.request(http.MethodDelete, "/v1/budget/records/NotAUUID", nil)
	test.AssertHTTPStatus(suite.T(), r, http.StatusBadRequest)
}
