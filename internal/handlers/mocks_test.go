package handlers_test

import (
	"context"

	"github.com/SscSPs/budget_engine/internal/core/domain"
	portssvc "github.com/SscSPs/budget_engine/internal/core/ports/services"
	"github.com/SscSPs/budget_engine/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock NormalizationService ---
type MockNormalizationService struct {
	mock.Mock
}

func (m *MockNormalizationService) DisplayContext(ctx context.Context, scenarioID string, override string) (domain.DisplayCurrencyContext, error) {
	args := m.Called(ctx, scenarioID, override)
	return args.Get(0).(domain.DisplayCurrencyContext), args.Error(1)
}
func (m *MockNormalizationService) CollectionSummary(ctx context.Context, display domain.DisplayCurrencyContext, collection domain.CollectionDomain) (*domain.CollectionSummary, error) {
	args := m.Called(ctx, display, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionSummary), args.Error(1)
}
func (m *MockNormalizationService) SavingsSummary(ctx context.Context, display domain.DisplayCurrencyContext) (*domain.SavingsSummary, error) {
	args := m.Called(ctx, display)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsSummary), args.Error(1)
}
func (m *MockNormalizationService) GoalSchedules(ctx context.Context, display domain.DisplayCurrencyContext) (*domain.GoalsSummary, error) {
	args := m.Called(ctx, display)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoalsSummary), args.Error(1)
}
func (m *MockNormalizationService) ScenarioSummary(ctx context.Context, display domain.DisplayCurrencyContext) (*domain.ScenarioSummary, error) {
	args := m.Called(ctx, display)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScenarioSummary), args.Error(1)
}

var _ portssvc.NormalizationSvc = (*MockNormalizationService)(nil)

// --- Mock ScenarioService ---
type MockScenarioService struct {
	mock.Mock
}

func (m *MockScenarioService) GetScenario(ctx context.Context, scenarioID string) (*domain.Scenario, error) {
	args := m.Called(ctx, scenarioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scenario), args.Error(1)
}
func (m *MockScenarioService) UpdateBaseCurrency(ctx context.Context, scenarioID string, currencyCode string, userID string) (*domain.Scenario, error) {
	args := m.Called(ctx, scenarioID, currencyCode, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scenario), args.Error(1)
}

var _ portssvc.ScenarioSvcFacade = (*MockScenarioService)(nil)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}
func (m *MockExchangeRateService) ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, *domain.ExchangeRate, error) {
	args := m.Called(ctx, amount, fromCode, toCode)
	if args.Get(1) == nil {
		return decimal.Zero, nil, args.Error(2)
	}
	return args.Get(0).(decimal.Decimal), args.Get(1).(*domain.ExchangeRate), args.Error(2)
}
func (m *MockExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)
