package dto

import (
	"time"

	"github.com/SscSPs/budget_engine/internal/core/domain"
	"github.com/SscSPs/budget_engine/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for creating a new exchange rate.
type CreateExchangeRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,len=3,uppercase"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,len=3,uppercase"`
	Rate             decimal.Decimal `json:"rate" binding:"required"`
	DateEffective    time.Time       `json:"dateEffective"` // zero means now
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy    string          `json:"lastUpdatedBy"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   rate.ExchangeRateID,
		FromCurrencyCode: string(rate.FromCurrencyCode),
		ToCurrencyCode:   string(rate.ToCurrencyCode),
		Rate:             rate.Rate,
		DateEffective:    rate.DateEffective,
		CreatedAt:        rate.CreatedAt,
		CreatedBy:        rate.CreatedBy,
		LastUpdatedAt:    rate.LastUpdatedAt,
		LastUpdatedBy:    rate.LastUpdatedBy,
	}
}

// ConvertAmountResponse is the result of converting one amount with a stored rate.
type ConvertAmountResponse struct {
	Amount           string               `json:"amount"`
	FromCurrencyCode string               `json:"fromCurrencyCode"`
	Converted        string               `json:"converted"`
	ToCurrencyCode   string               `json:"toCurrencyCode"`
	Rate             ExchangeRateResponse `json:"rate"`
}

// ToConvertAmountResponse formats both amounts with their currency's precision.
func ToConvertAmountResponse(amount, converted decimal.Decimal, rate *domain.ExchangeRate) ConvertAmountResponse {
	return ConvertAmountResponse{
		Amount:           utils.FormatAmount(amount, rate.FromCurrencyCode),
		FromCurrencyCode: string(rate.FromCurrencyCode),
		Converted:        utils.FormatAmount(converted, rate.ToCurrencyCode),
		ToCurrencyCode:   string(rate.ToCurrencyCode),
		Rate:             ToExchangeRateResponse(rate),
	}
}
