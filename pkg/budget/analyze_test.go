package budget_test

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tripbudget/backend/pkg/budget"
	"github.com/tripbudget/backend/pkg/models"
)

func (suite *TestSuiteStandard) TestAnalyzeLedger() {
	it := suite.threeDays()
	suite.spend(it, 2, "refund", "20")

	free := models.BudgetRecord{Category: "food", Amount: decimal.NewFromInt(-30), Date: start}
	suite.Require().NoError(suite.service().AddRecord(suite.ctx, &free))

	a, err := suite.service().Analyze(suite.ctx, nil)
	suite.Require().NoError(err)

	suite.assertDecimal("180", a.Total)
	// Spend on two distinct dates
	suite.assertDecimal("90", a.DailyAvg)
	suite.Require().Len(a.ByCategory, 2)
	suite.assertDecimal("140", a.ByCategory["food"])
	suite.assertDecimal("40", a.ByCategory["transport"])
	suite.Assert().Equal([]string{"Most of the spending goes to food. Look for discounts, alternatives or book in advance to lower these costs."}, a.Suggestions)
}

func (suite *TestSuiteStandard) TestAnalyzeLedgerEmpty() {
	a, err := suite.service().Analyze(suite.ctx, nil)
	suite.Require().NoError(err)

	suite.assertDecimal("0", a.Total)
	suite.assertDecimal("0", a.DailyAvg)
	suite.Assert().Empty(a.ByCategory)
	suite.Require().Len(a.Suggestions, 1)
	suite.Assert().Contains(a.Suggestions[0], "on track")
}

func (suite *TestSuiteStandard) TestAnalyzeItineraryHeuristic() {
	it := suite.threeDays()

	a, err := suite.service().Analyze(suite.ctx, &it.ID)
	suite.Require().NoError(err)

	suite.assertDecimal("150", a.Total)
	suite.assertDecimal("50", a.DailyAvg)
	suite.assertDecimal("110", a.ByCategory["food"])

	// Every day has a budget of 100, so none is over budget
	suite.Require().Len(a.Suggestions, 2)
	suite.Assert().Contains(a.Suggestions[0], "goes to food")
	suite.Assert().Contains(a.Suggestions[1], "There are 150.00 left")
}

func (suite *TestSuiteStandard) TestAnalyzeItineraryOverspend() {
	it := suite.threeDays()
	suite.spend(it, 3, "hotel", "-200")

	a, err := suite.service().Analyze(suite.ctx, &it.ID)
	suite.Require().NoError(err)

	suite.Require().Len(a.Suggestions, 3)
	suite.Assert().Contains(a.Suggestions[0], "Day 3: spent 250.00, which is over the budget of 100.00")
	suite.Assert().Contains(a.Suggestions[1], "goes to hotel")
	suite.Assert().Contains(a.Suggestions[2], "exceeded by 50.00")
}

func (suite *TestSuiteStandard) TestAnalyzeItineraryAdvisor() {
	it := suite.threeDays()
	adv := &fakeAdvisor{suggestions: []string{"Walk more"}}

	a, err := suite.serviceWithAdvisor(adv).Analyze(suite.ctx, &it.ID)
	suite.Require().NoError(err)

	suite.Assert().Equal(1, adv.analysisCalls)
	suite.Assert().Equal([]string{"Walk more"}, a.Suggestions)
}

func (suite *TestSuiteStandard) TestAnalyzeItineraryAdvisorFallback() {
	tests := []struct {
		name    string
		advisor *fakeAdvisor
	}{
		{"Empty suggestions", &fakeAdvisor{suggestions: []string{}}},
		{"Advisor error", &fakeAdvisor{err: errors.New("quota exceeded")}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			it := suite.threeDays()

			a, err := suite.serviceWithAdvisor(tt.advisor).Analyze(suite.ctx, &it.ID)
			suite.Require().NoError(err)
			suite.Assert().Equal(1, tt.advisor.analysisCalls)

			// Only the heuristic suggestions, never merged with the advisor
			suite.Require().Len(a.Suggestions, 2)
			suite.Assert().Contains(a.Suggestions[0], "goes to food")
		})
	}
}

func (suite *TestSuiteStandard) TestAnalyzeItineraryNotFound() {
	id := uuid.New()
	_, err := suite.service().Analyze(suite.ctx, &id)
	suite.Assert().ErrorIs(err, budget.ErrItineraryNotFound)
}
