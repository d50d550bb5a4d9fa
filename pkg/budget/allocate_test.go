package budget_test

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tripbudget/backend/internal/types"
	"github.com/tripbudget/backend/pkg/allocation"
	"github.com/tripbudget/backend/pkg/budget"
	"github.com/tripbudget/backend/pkg/models"
)

// threeDays creates the standard scenario: 3 days, a total of 300 and
// spend of 100, 0 and 50 on the days.
func (suite *TestSuiteStandard) threeDays() models.Itinerary {
	it := suite.createItinerary("300", 3)
	suite.spend(it, 1, "food", "-60")
	suite.spend(it, 1, "transport", "-40")
	suite.spend(it, 3, "food", "-50")
	return it
}

func (suite *TestSuiteStandard) TestReallocateProportional() {
	it := suite.threeDays()

	s, err := suite.service().Reallocate(suite.ctx, it.ID, nil, allocation.ModeProportional)
	suite.Require().NoError(err)

	suite.assertDecimals([]string{"200", "0", "100"}, s.DailyBudgets())
	suite.assertDecimals([]string{"200", "0", "100"}, suite.dayBudgets(it.ID))
	suite.assertDecimal("300", s.TotalBudget)
	suite.assertDecimal("150", s.TotalSpent)
	suite.assertDecimal("150", s.TotalRemaining)
}

func (suite *TestSuiteStandard) TestReallocateEqual() {
	it := suite.threeDays()
	_, err := suite.service().UpdateDay(suite.ctx, it.ID, allocation.ByIndex(2), decimalPtr("7"))
	suite.Require().NoError(err)

	s, err := suite.service().Reallocate(suite.ctx, it.ID, nil, allocation.ModeEqual)
	suite.Require().NoError(err)

	suite.assertDecimals([]string{"100", "100", "100"}, s.DailyBudgets())
	suite.assertDecimals([]string{"100", "100", "100"}, suite.dayBudgets(it.ID))
}

func (suite *TestSuiteStandard) TestReallocateProportionalWithoutSpend() {
	it := suite.createItinerary("100", 3)
	suite.spend(it, 1, "refund", "20")

	s, err := suite.service().Reallocate(suite.ctx, it.ID, nil, allocation.ModeProportional)
	suite.Require().NoError(err)

	suite.assertDecimals([]string{"33.33", "33.33", "33.33"}, s.DailyBudgets())
}

func (suite *TestSuiteStandard) TestReallocateNewTotal() {
	it := suite.threeDays()

	s, err := suite.service().Reallocate(suite.ctx, it.ID, decimalPtr("600"), allocation.ModeEqual)
	suite.Require().NoError(err)

	suite.assertDecimals([]string{"200", "200", "200"}, s.DailyBudgets())
	suite.assertDecimal("600", s.TotalBudget)

	stored, err := suite.store.GetItinerary(suite.ctx, it.ID)
	suite.Require().NoError(err)
	suite.assertDecimal("600", stored.Budget)
}

func (suite *TestSuiteStandard) TestReallocateIgnoresNonPositiveTotal() {
	it := suite.threeDays()

	s, err := suite.service().Reallocate(suite.ctx, it.ID, decimalPtr("-10"), allocation.ModeEqual)
	suite.Require().NoError(err)

	suite.assertDecimals([]string{"100", "100", "100"}, s.DailyBudgets())
	suite.assertDecimal("300", s.TotalBudget)
}

func (suite *TestSuiteStandard) TestReallocateErrors() {
	empty := suite.createItinerary("100", 0)
	it := suite.threeDays()

	_, err := suite.service().Reallocate(suite.ctx, uuid.New(), nil, allocation.ModeEqual)
	suite.Assert().ErrorIs(err, budget.ErrItineraryNotFound)

	_, err = suite.service().Reallocate(suite.ctx, empty.ID, nil, allocation.ModeEqual)
	suite.Assert().ErrorIs(err, budget.ErrNoDays)

	_, err = suite.service().Reallocate(suite.ctx, it.ID, nil, allocation.Mode("weighted"))
	suite.Assert().ErrorIs(err, budget.ErrInvalidInput)
	suite.Assert().ErrorIs(err, allocation.ErrInvalidMode)
}

func (suite *TestSuiteStandard) TestReallocateExternalAccepted() {
	it := suite.threeDays()
	adv := &fakeAdvisor{budgets: decimals("150", "50", "100")}

	s, err := suite.serviceWithAdvisor(adv).Reallocate(suite.ctx, it.ID, nil, allocation.ModeExternal)
	suite.Require().NoError(err)

	suite.Assert().Equal(1, adv.allocationCalls)
	suite.assertDecimal("300", adv.lastTotal)
	suite.assertDecimals([]string{"100", "0", "50"}, adv.lastSpent)
	suite.assertDecimals([]string{"150", "50", "100"}, s.DailyBudgets())
}

func (suite *TestSuiteStandard) TestAIReallocateFallbacks() {
	tests := []struct {
		name    string
		advisor budget.Advisor
	}{
		{"No advisor", nil},
		{"Wrong length", &fakeAdvisor{budgets: decimals("150", "150")}},
		{"Missing suggestion", &fakeAdvisor{}},
		{"Advisor error", &fakeAdvisor{err: errors.New("connection refused")}},
		{"Advisor timeout", &fakeAdvisor{budgets: decimals("100", "100", "100"), delay: time.Second}},
		{"Sum mismatch", &fakeAdvisor{budgets: decimals("1", "1", "1")}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			it := suite.threeDays()

			s, err := suite.serviceWithAdvisor(tt.advisor).AIReallocate(suite.ctx, it.ID, budget.AIOptions{})
			suite.Require().NoError(err)

			suite.assertDecimals([]string{"200", "0", "100"}, s.DailyBudgets())
			suite.assertDecimals([]string{"200", "0", "100"}, suite.dayBudgets(it.ID))
		})
	}
}

func (suite *TestSuiteStandard) TestAIReallocateFallsBackToEqual() {
	it := suite.createItinerary("300", 3)

	s, err := suite.serviceWithAdvisor(&fakeAdvisor{budgets: decimals("300")}).AIReallocate(suite.ctx, it.ID, budget.AIOptions{})
	suite.Require().NoError(err)

	suite.assertDecimals([]string{"100", "100", "100"}, s.DailyBudgets())
}

func (suite *TestSuiteStandard) TestAIReallocateWithClientData() {
	it := suite.threeDays()
	other := uuid.New()

	records := []models.BudgetRecord{
		{Amount: decimal.NewFromInt(-30), Date: start.AddDays(1), ItineraryID: &other},
		{Amount: decimal.NewFromInt(-10), Date: start.AddDays(2)},
		{Amount: decimal.NewFromInt(99), Date: start},
		{Amount: decimal.NewFromInt(-99), Date: start.AddDays(7)},
	}

	s, err := suite.service().AIReallocate(suite.ctx, it.ID, budget.AIOptions{
		Total:   decimalPtr("400"),
		Records: records,
	})
	suite.Require().NoError(err)

	// The proportional fallback uses the supplied records only
	suite.assertDecimals([]string{"0", "300", "100"}, s.DailyBudgets())

	// The total is only used for the calculation
	suite.assertDecimal("300", s.TotalBudget)
}

func (suite *TestSuiteStandard) TestAIReallocateErrors() {
	empty := suite.createItinerary("100", 0)

	_, err := suite.service().AIReallocate(suite.ctx, uuid.New(), budget.AIOptions{})
	suite.Assert().ErrorIs(err, budget.ErrItineraryNotFound)

	_, err = suite.service().AIReallocate(suite.ctx, empty.ID, budget.AIOptions{})
	suite.Assert().ErrorIs(err, budget.ErrNoDays)
}

func (suite *TestSuiteStandard) TestUpdateDay() {
	it := suite.createItinerary("300", 3)

	s, err := suite.service().UpdateDay(suite.ctx, it.ID, allocation.ByIndex(2), decimalPtr("42.555"))
	suite.Require().NoError(err)
	suite.assertDecimals([]string{"100", "42.56", "100"}, s.DailyBudgets())

	s, err = suite.service().UpdateDay(suite.ctx, it.ID, allocation.ByDate(start.AddDays(2)), decimalPtr("-5"))
	suite.Require().NoError(err)
	suite.assertDecimals([]string{"100", "42.56", "0"}, s.DailyBudgets())
	suite.assertDecimals([]string{"100", "42.56", "0"}, suite.dayBudgets(it.ID))
}

func (suite *TestSuiteStandard) TestUpdateDayErrors() {
	it := suite.createItinerary("300", 3)
	noStart, err := suite.service().CreateItinerary(suite.ctx, models.Itinerary{Days: make([]models.ItineraryDay, 1)})
	suite.Require().NoError(err)

	tests := []struct {
		name     string
		id       uuid.UUID
		selector allocation.DaySelector
		value    *decimal.Decimal
		err      error
	}{
		{"Unknown itinerary", uuid.New(), allocation.ByIndex(1), decimalPtr("1"), budget.ErrItineraryNotFound},
		{"Missing value", it.ID, allocation.ByIndex(1), nil, budget.ErrInvalidBudget},
		{"No selector", it.ID, nil, decimalPtr("1"), budget.ErrDayNotFound},
		{"Index out of range", it.ID, allocation.ByIndex(4), decimalPtr("1"), budget.ErrDayNotFound},
		{"Date before start", it.ID, allocation.ByDate(start.AddDays(-1)), decimalPtr("1"), budget.ErrDayNotFound},
		{"Date without start date", noStart.ID, allocation.ByDate(start), decimalPtr("1"), budget.ErrDayNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service().UpdateDay(suite.ctx, tt.id, tt.selector, tt.value)
			suite.Assert().ErrorIs(err, tt.err)
		})
	}

	suite.Assert().ErrorIs(budget.ErrInvalidBudget, budget.ErrInvalidInput)
}

func (suite *TestSuiteStandard) TestAdjustDay() {
	it := suite.createItinerary("30", 3)

	s, err := suite.service().AdjustDay(suite.ctx, it.ID, allocation.ByIndex(1), decimalPtr("-50"))
	suite.Require().NoError(err)
	suite.assertDecimals([]string{"0", "10", "10"}, s.DailyBudgets())

	s, err = suite.service().AdjustDay(suite.ctx, it.ID, allocation.ByDate(start.AddDays(1)), decimalPtr("2.345"))
	suite.Require().NoError(err)
	suite.assertDecimals([]string{"0", "12.35", "10"}, s.DailyBudgets())

	_, err = suite.service().AdjustDay(suite.ctx, it.ID, allocation.ByIndex(1), nil)
	suite.Assert().ErrorIs(err, budget.ErrInvalidInput)

	_, err = suite.service().AdjustDay(suite.ctx, it.ID, allocation.ByIndex(9), decimalPtr("1"))
	suite.Assert().ErrorIs(err, budget.ErrDayNotFound)
}

func (suite *TestSuiteStandard) TestResetDayEqual() {
	it := suite.createItinerary("400", 4)
	for i := 1; i <= 4; i++ {
		_, err := suite.service().UpdateDay(suite.ctx, it.ID, allocation.ByIndex(i), decimalPtr("7"))
		suite.Require().NoError(err)
	}

	s, err := suite.service().ResetDay(suite.ctx, it.ID, allocation.ByIndex(3), allocation.ModeEqual)
	suite.Require().NoError(err)

	suite.assertDecimals([]string{"7", "7", "100", "7"}, s.DailyBudgets())
	suite.assertDecimals([]string{"7", "7", "100", "7"}, suite.dayBudgets(it.ID))
}

func (suite *TestSuiteStandard) TestResetDayProportional() {
	it := suite.threeDays()

	s, err := suite.service().ResetDay(suite.ctx, it.ID, allocation.ByDate(start), allocation.ModeProportional)
	suite.Require().NoError(err)

	suite.assertDecimals([]string{"200", "100", "100"}, s.DailyBudgets())
}

func (suite *TestSuiteStandard) TestResetDayErrors() {
	it := suite.createItinerary("300", 3)
	empty := suite.createItinerary("300", 0)

	_, err := suite.service().ResetDay(suite.ctx, uuid.New(), allocation.ByIndex(1), allocation.ModeEqual)
	suite.Assert().ErrorIs(err, budget.ErrItineraryNotFound)

	_, err = suite.service().ResetDay(suite.ctx, empty.ID, allocation.ByIndex(1), allocation.ModeEqual)
	suite.Assert().ErrorIs(err, budget.ErrNoDays)

	_, err = suite.service().ResetDay(suite.ctx, it.ID, allocation.ByIndex(4), allocation.ModeEqual)
	suite.Assert().ErrorIs(err, budget.ErrDayNotFound)

	_, err = suite.service().ResetDay(suite.ctx, it.ID, allocation.ByIndex(1), allocation.ModeExternal)
	suite.Assert().ErrorIs(err, budget.ErrInvalidInput)
}

func (suite *TestSuiteStandard) TestSummary() {
	it := suite.threeDays()
	suite.spend(it, 2, "refund", "20")

	s, err := suite.service().Summary(suite.ctx, it.ID)
	suite.Require().NoError(err)

	suite.Require().Len(s.Days, 3)
	suite.assertDecimals([]string{"100", "0", "50"}, s.SpentPerDay())
	suite.assertDecimal("0", s.Days[0].Remaining)
	suite.assertDecimal("100", s.Days[1].Remaining)
	suite.Assert().True(types.NewDate(2024, 5, 2).Equal(*s.Days[1].Date))

	_, err = suite.service().Summary(suite.ctx, uuid.New())
	suite.Assert().ErrorIs(err, budget.ErrItineraryNotFound)
}

func (suite *TestSuiteStandard) TestDatabaseErrorsPropagate() {
	it := suite.threeDays()
	suite.CloseDB()

	_, err := suite.service().Reallocate(suite.ctx, it.ID, nil, allocation.ModeEqual)
	suite.Assert().ErrorIs(err, models.ErrGeneral)

	_, err = suite.service().Summary(suite.ctx, it.ID)
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// A negative total stored before it was rejected on creation must never
// turn into negative daily budgets.
func (suite *TestSuiteStandard) TestNegativeStoredTotal() {
	it := models.Itinerary{StartDate: start, Budget: decimal.NewFromInt(-300)}
	for i := 1; i <= 3; i++ {
		it.Days = append(it.Days, models.ItineraryDay{DayIndex: i, DailyBudget: decimal.NewFromInt(10)})
	}
	suite.Require().NoError(suite.store.CreateItinerary(suite.ctx, &it))

	_, err := suite.service().Reallocate(suite.ctx, it.ID, nil, allocation.ModeEqual)
	suite.Assert().ErrorIs(err, budget.ErrNegativeTotal)

	_, err = suite.service().AIReallocate(suite.ctx, it.ID, budget.AIOptions{})
	suite.Assert().ErrorIs(err, budget.ErrNegativeTotal)

	_, err = suite.service().ResetDay(suite.ctx, it.ID, allocation.ByIndex(1), allocation.ModeEqual)
	suite.Assert().ErrorIs(err, budget.ErrNegativeTotal)
	suite.Assert().ErrorIs(err, budget.ErrInvalidInput)

	suite.assertDecimals([]string{"10", "10", "10"}, suite.dayBudgets(it.ID))

	// A positive new total replaces the broken one
	s, err := suite.service().Reallocate(suite.ctx, it.ID, decimalPtr("300"), allocation.ModeEqual)
	suite.Require().NoError(err)
	suite.assertDecimals([]string{"100", "100", "100"}, s.DailyBudgets())
	suite.assertDecimal("300", s.TotalBudget)
}
