package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/budget_engine/internal/apperrors"
	"github.com/SscSPs/budget_engine/internal/core/conversion"
	"github.com/SscSPs/budget_engine/internal/core/domain"
	"github.com/SscSPs/budget_engine/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type NormalizationServiceTestSuite struct {
	suite.Suite
	records   *MockRecordReader
	scenarios *MockScenarioRepository
	client    *fixedRateClient
	sink      *countingSink
	registry  *conversion.Registry
	service   *services.NormalizationService
	scenario  *domain.Scenario
}

func (suite *NormalizationServiceTestSuite) SetupTest() {
	suite.records = new(MockRecordReader)
	suite.scenarios = new(MockScenarioRepository)
	suite.client = newFixedRateClient(map[domain.CurrencyCode]string{"EUR": "1.1"})
	suite.sink = &countingSink{}
	suite.registry = conversion.NewRegistry(suite.client, nil, conversion.WithTelemetry(suite.sink))
	suite.service = services.NewNormalizationService(suite.records, suite.scenarios, suite.registry,
		services.WithGoalScheduler(newScheduler()))
	suite.scenario = &domain.Scenario{ScenarioID: "sc-1", Name: "Plan A", BaseCurrency: "USD"}

	suite.scenarios.On("FindScenarioByID", mock.Anything, "sc-1").Return(suite.scenario, nil)
	suite.records.On("ListRecords", mock.Anything, "sc-1", domain.DomainIncome).Return([]domain.FinancialRecord{
		incomeRecord("salary", "1200", "EUR", domain.Annual),
	}, nil)
	suite.records.On("ListRecords", mock.Anything, "sc-1", domain.DomainExpense).Return([]domain.FinancialRecord{
		{ID: "rent", ScenarioID: "sc-1", Domain: domain.DomainExpense, Amount: dec("500"), CurrencyCode: "USD", Frequency: domain.Monthly},
	}, nil)
	suite.records.On("ListRecords", mock.Anything, "sc-1", domain.DomainSaving).Return([]domain.FinancialRecord{
		{ID: "pot", ScenarioID: "sc-1", Domain: domain.DomainSaving, Amount: dec("1000"), CurrencyCode: "EUR", Frequency: domain.OneTime},
	}, nil)
	suite.records.On("ListGoals", mock.Anything, "sc-1").Return([]domain.Goal{
		{ID: "house", ScenarioID: "sc-1", TargetAmount: dec("12000"), SavedAmount: dec("0"), CurrencyCode: "EUR",
			StartDate: date(2024, time.January, 1), TargetDate: date(2026, time.January, 1)},
	}, nil)
}

func (suite *NormalizationServiceTestSuite) display(override string) domain.DisplayCurrencyContext {
	d, err := suite.service.DisplayContext(context.Background(), "sc-1", override)
	suite.Require().NoError(err)
	return d
}

func (suite *NormalizationServiceTestSuite) TestScenarioSummary() {
	ctx := context.Background()

	summary, err := suite.service.ScenarioSummary(ctx, suite.display(""))

	suite.Require().NoError(err)
	suite.True(summary.Income.Totals.Monthly.Equal(dec("110")), summary.Income.Totals.Monthly.String())
	suite.True(summary.Expenses.Totals.Monthly.Equal(dec("500")))
	suite.True(summary.Savings.Total.Equal(dec("1100")), summary.Savings.Total.String())
	suite.Require().Len(summary.Goals.Schedules, 1)
	suite.True(summary.Goals.Schedules[0].MonthlyPayment.Equal(dec("1000")))
	suite.True(summary.Goals.TotalMonthlyPayment.Equal(dec("1100")))
	suite.True(summary.Remainder.Equal(dec("-1490")), summary.Remainder.String())
	suite.Equal(3, suite.client.batchCount(), "one batch per collection needing conversion")

	again, err := suite.service.ScenarioSummary(ctx, suite.display(""))
	suite.Require().NoError(err)
	suite.Equal(3, suite.client.batchCount(), "nothing changed, nothing dispatched")
	suite.True(again.Income.Totals.Monthly.Equal(dec("110")))
}

func (suite *NormalizationServiceTestSuite) TestCollectionSummary_Override() {
	display := suite.display("eur")
	suite.True(display.IsOverridden())

	summary, err := suite.service.CollectionSummary(context.Background(), display, domain.DomainIncome)

	suite.Require().NoError(err)
	suite.Equal(domain.CurrencyCode("EUR"), summary.DisplayCurrency)
	suite.True(summary.Totals.Monthly.Equal(dec("100")))
	suite.Zero(suite.client.batchCount(), "records already in the display currency are never sent")
}

func (suite *NormalizationServiceTestSuite) TestCollectionSummary_RejectsStockDomains() {
	_, err := suite.service.CollectionSummary(context.Background(), suite.display(""), domain.DomainGoal)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *NormalizationServiceTestSuite) TestSavingsAndGoals() {
	ctx := context.Background()

	savings, err := suite.service.SavingsSummary(ctx, suite.display(""))
	suite.Require().NoError(err)
	suite.True(savings.Total.Equal(dec("1100")))

	goals, err := suite.service.GoalSchedules(ctx, suite.display(""))
	suite.Require().NoError(err)
	suite.True(goals.Schedules[0].MonthlyPaymentConverted.Equal(dec("1100")))
	suite.True(goals.Schedules[0].Converted)
}

func (suite *NormalizationServiceTestSuite) TestConversionFailureFallsBackToNative() {
	suite.client.err = errors.New("upstream timeout")

	summary, err := suite.service.ScenarioSummary(context.Background(), suite.display(""))

	suite.Require().NoError(err)
	suite.True(summary.Income.Totals.Monthly.Equal(dec("100")), "native interim amount")
	suite.Equal(1, summary.Income.Unconverted)
	suite.False(summary.Goals.Schedules[0].Converted)
	suite.Equal(3, suite.sink.count())
}

func (suite *NormalizationServiceTestSuite) TestDisplayContext_InvalidOverride() {
	_, err := suite.service.DisplayContext(context.Background(), "sc-1", "EURO")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *NormalizationServiceTestSuite) TestScenarioNotFound() {
	suite.scenarios.On("FindScenarioByID", mock.Anything, "missing").Return(nil, nil)

	_, err := suite.service.DisplayContext(context.Background(), "missing", "")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *NormalizationServiceTestSuite) TestRecordSourceErrorPropagates() {
	scenario := &domain.Scenario{ScenarioID: "sc-2", BaseCurrency: "USD"}
	suite.scenarios.On("FindScenarioByID", mock.Anything, "sc-2").Return(scenario, nil)
	suite.records.On("ListRecords", mock.Anything, "sc-2", mock.Anything).Return(nil, errors.New("db down"))
	suite.records.On("ListGoals", mock.Anything, "sc-2").Return([]domain.Goal{}, nil)

	_, err := suite.service.ScenarioSummary(context.Background(), domain.NewDisplayCurrencyContext(*scenario))

	suite.ErrorContains(err, "db down")
}

func (suite *NormalizationServiceTestSuite) TestStaleContextResetsToNewBase() {
	stale := domain.DisplayCurrencyContext{ScenarioID: "sc-1", Base: "GBP", Override: "EUR"}

	summary, err := suite.service.CollectionSummary(context.Background(), stale, domain.DomainIncome)

	suite.Require().NoError(err)
	suite.Equal(domain.CurrencyCode("USD"), summary.DisplayCurrency)
}

func (suite *NormalizationServiceTestSuite) TestCollectionSummary_RecomputesAfterRecordEdit() {
	ctx := context.Background()
	suite.client.rates["GBP"] = dec("1.25")
	records := new(MockRecordReader)
	records.On("ListRecords", mock.Anything, "sc-1", domain.DomainIncome).Return([]domain.FinancialRecord{
		incomeRecord("salary", "1200", "EUR", domain.Annual),
	}, nil).Once()
	records.On("ListRecords", mock.Anything, "sc-1", domain.DomainIncome).Return([]domain.FinancialRecord{
		incomeRecord("salary", "2400", "GBP", domain.Annual),
	}, nil).Once()
	service := services.NewNormalizationService(records, suite.scenarios, suite.registry)

	before, err := service.CollectionSummary(ctx, suite.display(""), domain.DomainIncome)
	suite.Require().NoError(err)
	suite.True(before.Totals.Monthly.Equal(dec("110")), before.Totals.Monthly.String())

	after, err := service.CollectionSummary(ctx, suite.display(""), domain.DomainIncome)
	suite.Require().NoError(err)
	suite.True(after.Totals.Monthly.Equal(dec("250")), after.Totals.Monthly.String())
	suite.True(after.Records[0].Converted)
	suite.Equal(2, suite.client.batchCount())
	records.AssertExpectations(suite.T())
}

func (suite *NormalizationServiceTestSuite) TestGoalSchedules_RecomputeAfterGoalEdit() {
	ctx := context.Background()
	goal := domain.Goal{ID: "house", ScenarioID: "sc-1", TargetAmount: dec("12000"), SavedAmount: dec("0"), CurrencyCode: "EUR",
		StartDate: date(2024, time.January, 1), TargetDate: date(2026, time.January, 1)}
	edited := goal
	edited.TargetAmount = dec("24000")
	records := new(MockRecordReader)
	records.On("ListGoals", mock.Anything, "sc-1").Return([]domain.Goal{goal}, nil).Once()
	records.On("ListGoals", mock.Anything, "sc-1").Return([]domain.Goal{edited}, nil).Once()
	service := services.NewNormalizationService(records, suite.scenarios, suite.registry,
		services.WithGoalScheduler(newScheduler()))

	before, err := service.GoalSchedules(ctx, suite.display(""))
	suite.Require().NoError(err)
	suite.True(before.TotalMonthlyPayment.Equal(dec("1100")), before.TotalMonthlyPayment.String())

	after, err := service.GoalSchedules(ctx, suite.display(""))
	suite.Require().NoError(err)
	suite.True(after.Schedules[0].Converted)
	suite.True(after.TotalMonthlyPayment.Equal(dec("2200")), after.TotalMonthlyPayment.String())
	suite.Equal(2, suite.client.batchCount(), "only the edited target is converted again")
}

func TestNormalizationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NormalizationServiceTestSuite))
}
