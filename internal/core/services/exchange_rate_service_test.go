package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/budget_engine/internal/apperrors"
	"github.com/SscSPs/budget_engine/internal/core/domain"
	portssvc "github.com/SscSPs/budget_engine/internal/core/ports/services"
	"github.com/SscSPs/budget_engine/internal/core/services"
	"github.com/SscSPs/budget_engine/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockExchangeRateRepository
	service      portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateExchangeRateRequest{
		FromCurrencyCode: "EUR",
		ToCurrencyCode:   "USD",
		Rate:             decimal.NewFromFloat(1.1),
		DateEffective:    time.Now().Truncate(24 * time.Hour),
	}

	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.NotEmpty(rate.ExchangeRateID)
	suite.Equal(domain.CurrencyCode("EUR"), rate.FromCurrencyCode)
	suite.Equal(domain.CurrencyCode("USD"), rate.ToCurrencyCode)
	suite.True(req.Rate.Equal(rate.Rate))
	suite.Equal(req.DateEffective, rate.DateEffective)
	suite.Equal(creatorUserID, rate.CreatedBy)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_InvalidRate() {
	req := dto.CreateExchangeRateRequest{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Rate: decimal.Zero}

	rate, err := suite.service.CreateExchangeRate(context.Background(), req, "user")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "must be positive")
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_SameCurrency() {
	req := dto.CreateExchangeRateRequest{FromCurrencyCode: "USD", ToCurrencyCode: "USD", Rate: decimal.NewFromInt(1)}

	rate, err := suite.service.CreateExchangeRate(context.Background(), req, "user")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "cannot be the same")
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_UnknownCurrency() {
	req := dto.CreateExchangeRateRequest{FromCurrencyCode: "XYZ", ToCurrencyCode: "EUR", Rate: decimal.NewFromInt(1)}

	rate, err := suite.service.CreateExchangeRate(context.Background(), req, "user")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "'from' currency")
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate")
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_SaveDuplicate() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Rate: decimal.NewFromFloat(0.9)}
	duplicateErr := fmt.Errorf("%w: exchange rate exists", apperrors.ErrDuplicate)

	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(duplicateErr).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req, "user")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_NormalizesCodes() {
	ctx := context.Background()
	expected := &domain.ExchangeRate{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Rate: dec("0.9")}

	suite.mockRateRepo.On("FindExchangeRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("EUR")).Return(expected, nil).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "usd", " eur")

	suite.Require().NoError(err)
	suite.Equal(expected, rate)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_InvalidCode() {
	rate, err := suite.service.GetExchangeRate(context.Background(), "US", "EUR")
	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_NotFound() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindExchangeRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("CHF")).
		Return(nil, apperrors.NewNotFoundError("exchange rate not found")).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "USD", "CHF")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_Success() {
	ctx := context.Background()
	rate := &domain.ExchangeRate{ExchangeRateID: "rate_123", FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Rate: dec("0.85")}
	suite.mockRateRepo.On("FindExchangeRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("EUR")).Return(rate, nil).Once()

	converted, used, err := suite.service.ConvertAmount(ctx, dec("100"), "USD", "EUR")

	suite.Require().NoError(err)
	suite.True(converted.Equal(dec("85")))
	suite.Equal("rate_123", used.ExchangeRateID)
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
