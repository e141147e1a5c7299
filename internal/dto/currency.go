package dto

import "github.com/SscSPs/budget_engine/internal/core/domain"

// CurrencyResponse describes the currency amounts in a response are expressed in.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Symbol       string `json:"symbol"`
	Precision    int    `json:"precision"`
}

// ToCurrencyResponse looks code up in the ISO 4217 table. Unknown codes keep an empty symbol.
func ToCurrencyResponse(code domain.CurrencyCode) CurrencyResponse {
	c, ok := domain.LookupCurrency(code)
	if !ok {
		return CurrencyResponse{CurrencyCode: string(code), Precision: 2}
	}
	return CurrencyResponse{CurrencyCode: string(c.CurrencyCode), Symbol: c.Symbol, Precision: c.Precision}
}
