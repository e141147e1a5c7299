package utils

import (
	"github.com/SscSPs/budget_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// defaultPrecision is used for codes go-money does not know.
const defaultPrecision = 2

// FormatWithCurrencyPrecision formats an amount with the correct precision for a given currency
// Example: amount 12.3456 with USD (precision 2) returns "12.35"
// Example: amount 12.3456 with JPY (precision 0) returns "12"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return FormatWithPrecision(amount, currency.Precision)
}

// FormatWithPrecision formats an amount with exactly precision fractional digits.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// FormatAmount formats amount for display in code, looking the precision up in the ISO 4217 table.
func FormatAmount(amount decimal.Decimal, code domain.CurrencyCode) string {
	if c, ok := domain.LookupCurrency(code); ok {
		return FormatWithCurrencyPrecision(amount, c)
	}
	return FormatWithPrecision(amount, defaultPrecision)
}
