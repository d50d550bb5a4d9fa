package models_test

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tripbudget/backend/internal/types"
	"github.com/tripbudget/backend/pkg/models"
)

func (suite *TestSuiteStandard) createTestItinerary(days int) models.Itinerary {
	itinerary := models.Itinerary{
		Destination: "Lisbon",
		StartDate:   types.NewDate(2024, 5, 1),
		Budget:      decimal.NewFromInt(300),
	}

	for i := 1; i <= days; i++ {
		itinerary.Days = append(itinerary.Days, models.ItineraryDay{DayIndex: i, DailyBudget: decimal.NewFromInt(100)})
	}

	suite.Require().NoError(suite.store.CreateItinerary(suite.ctx, &itinerary))
	return itinerary
}

func (suite *TestSuiteStandard) TestCreateAndGetItinerary() {
	created := suite.createTestItinerary(3)
	suite.Assert().NotEqual(uuid.Nil, created.ID)

	itinerary, err := suite.store.GetItinerary(suite.ctx, created.ID)
	suite.Require().NoError(err)

	suite.Assert().Equal("Lisbon", itinerary.Destination)
	suite.Assert().True(itinerary.StartDate.Equal(types.NewDate(2024, 5, 1)), "Start date is %s", itinerary.StartDate)
	suite.Assert().True(itinerary.Budget.Equal(decimal.NewFromInt(300)))
	suite.Require().Len(itinerary.Days, 3)

	for i, day := range itinerary.Days {
		suite.Assert().Equal(i+1, day.DayIndex)
		suite.Assert().Equal(created.ID, day.ItineraryID)
	}
}

func (suite *TestSuiteStandard) TestGetItineraryNotFound() {
	_, err := suite.store.GetItinerary(suite.ctx, uuid.New())
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Contains(err.Error(), "itinerary matching your query")
}

func (suite *TestSuiteStandard) TestDuplicateDayIndex() {
	itinerary := models.Itinerary{
		Days: []models.ItineraryDay{{DayIndex: 1}, {DayIndex: 1}},
	}

	err := suite.store.CreateItinerary(suite.ctx, &itinerary)
	suite.Assert().ErrorIs(err, models.ErrDayIndexNotUnique)
}

func (suite *TestSuiteStandard) TestSetDayBudgets() {
	itinerary := suite.createTestItinerary(2)

	itinerary.Days[1].DailyBudget = decimal.RequireFromString("42.50")
	suite.Require().NoError(suite.store.SetDayBudgets(suite.ctx, itinerary.Days[1:]))

	reloaded, err := suite.store.GetItinerary(suite.ctx, itinerary.ID)
	suite.Require().NoError(err)
	suite.Assert().True(reloaded.Days[0].DailyBudget.Equal(decimal.NewFromInt(100)))
	suite.Assert().True(reloaded.Days[1].DailyBudget.Equal(decimal.RequireFromString("42.5")), reloaded.Days[1].DailyBudget.String())
}

func (suite *TestSuiteStandard) TestSetDayBudgetsMissingDay() {
	err := suite.store.SetDayBudgets(suite.ctx, []models.ItineraryDay{{DefaultModel: models.DefaultModel{ID: uuid.New()}}})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestSetAllocation() {
	itinerary := suite.createTestItinerary(2)
	itinerary.Days[0].DailyBudget = decimal.NewFromInt(600)
	itinerary.Days[1].DailyBudget = decimal.NewFromInt(300)
	total := decimal.NewFromInt(900)

	suite.Require().NoError(suite.store.SetAllocation(suite.ctx, itinerary.ID, itinerary.Days, &total))

	reloaded, err := suite.store.GetItinerary(suite.ctx, itinerary.ID)
	suite.Require().NoError(err)
	suite.Assert().True(reloaded.Budget.Equal(total))
	suite.Assert().True(reloaded.Days[0].DailyBudget.Equal(decimal.NewFromInt(600)))
	suite.Assert().True(reloaded.Days[1].DailyBudget.Equal(decimal.NewFromInt(300)))
}

func (suite *TestSuiteStandard) TestSetAllocationWithoutTotal() {
	itinerary := suite.createTestItinerary(1)
	before := itinerary.Budget
	itinerary.Days[0].DailyBudget = decimal.NewFromInt(7)

	suite.Require().NoError(suite.store.SetAllocation(suite.ctx, itinerary.ID, itinerary.Days, nil))

	reloaded, err := suite.store.GetItinerary(suite.ctx, itinerary.ID)
	suite.Require().NoError(err)
	suite.Assert().True(reloaded.Budget.Equal(before))
	suite.Assert().True(reloaded.Days[0].DailyBudget.Equal(decimal.NewFromInt(7)))
}

// A failing total update must not leave the new day budgets behind.
func (suite *TestSuiteStandard) TestSetAllocationIsAtomic() {
	itinerary := suite.createTestItinerary(2)
	before := []decimal.Decimal{itinerary.Days[0].DailyBudget, itinerary.Days[1].DailyBudget}

	itinerary.Days[0].DailyBudget = decimal.NewFromInt(600)
	itinerary.Days[1].DailyBudget = decimal.NewFromInt(300)
	total := decimal.NewFromInt(900)

	err := suite.store.SetAllocation(suite.ctx, uuid.New(), itinerary.Days, &total)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	reloaded, err := suite.store.GetItinerary(suite.ctx, itinerary.ID)
	suite.Require().NoError(err)
	suite.Assert().True(reloaded.Days[0].DailyBudget.Equal(before[0]), "day 1: %s", reloaded.Days[0].DailyBudget)
	suite.Assert().True(reloaded.Days[1].DailyBudget.Equal(before[1]), "day 2: %s", reloaded.Days[1].DailyBudget)
	suite.Assert().True(reloaded.Budget.Equal(itinerary.Budget))
}

func (suite *TestSuiteStandard) TestDeleteItineraryKeepsRecords() {
	itinerary := suite.createTestItinerary(2)

	record := models.BudgetRecord{Category: "food", Amount: decimal.NewFromInt(-5), ItineraryID: &itinerary.ID}
	suite.Require().NoError(suite.store.CreateRecord(suite.ctx, &record))

	suite.Require().NoError(suite.store.DeleteItinerary(suite.ctx, itinerary.ID))

	_, err := suite.store.GetItinerary(suite.ctx, itinerary.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	var dayCount int64
	suite.db.Model(&models.ItineraryDay{}).Where("itinerary_id = ?", itinerary.ID).Count(&dayCount)
	suite.Assert().Equal(int64(0), dayCount)

	records, err := suite.store.ListRecords(suite.ctx, &itinerary.ID)
	suite.Require().NoError(err)
	suite.Assert().Len(records, 1)
}

func (suite *TestSuiteStandard) TestRecordDefaults() {
	record := models.BudgetRecord{Category: "  transport ", Description: " tram ", Amount: decimal.NewFromInt(-3)}
	suite.Require().NoError(suite.store.CreateRecord(suite.ctx, &record))

	suite.Assert().NotEqual(uuid.Nil, record.ID)
	suite.Assert().Equal("transport", record.Category)
	suite.Assert().Equal("tram", record.Description)
	suite.Assert().True(record.Date.Equal(types.Today()))
}

func (suite *TestSuiteStandard) TestRecordKeepsProvidedID() {
	id := uuid.New()
	record := models.BudgetRecord{DefaultModel: models.DefaultModel{ID: id}, Amount: decimal.NewFromInt(-1)}
	suite.Require().NoError(suite.store.CreateRecord(suite.ctx, &record))
	suite.Assert().Equal(id, record.ID)
}

func (suite *TestSuiteStandard) TestListAndDeleteRecords() {
	itinerary := suite.createTestItinerary(1)

	bound := models.BudgetRecord{Amount: decimal.NewFromInt(-10), ItineraryID: &itinerary.ID, Date: types.NewDate(2024, 5, 1)}
	free := models.BudgetRecord{Amount: decimal.NewFromInt(-20), Date: types.NewDate(2024, 5, 2)}
	suite.Require().NoError(suite.store.CreateRecord(suite.ctx, &bound))
	suite.Require().NoError(suite.store.CreateRecord(suite.ctx, &free))

	all, err := suite.store.ListRecords(suite.ctx, nil)
	suite.Require().NoError(err)
	suite.Assert().Len(all, 2)

	scoped, err := suite.store.ListRecords(suite.ctx, &itinerary.ID)
	suite.Require().NoError(err)
	suite.Require().Len(scoped, 1)
	suite.Assert().Equal(bound.ID, scoped[0].ID)
	suite.Assert().True(scoped[0].Date.Equal(types.NewDate(2024, 5, 1)))

	suite.Require().NoError(suite.store.DeleteRecord(suite.ctx, bound.ID))
	suite.Assert().ErrorIs(suite.store.DeleteRecord(suite.ctx, bound.ID), models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestDatabaseClosed() {
	suite.CloseDB()

	_, err := suite.store.ListItineraries(suite.ctx)
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestPing() {
	suite.Assert().NoError(suite.store.Ping(suite.ctx))

	suite.CloseDB()
	suite.Assert().ErrorIs(suite.store.Ping(suite.ctx), models.ErrGeneral)
}
