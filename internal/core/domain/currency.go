package domain

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/SscSPs/budget_engine/internal/apperrors"
)

// CurrencyCode is an upper-case ISO 4217 code such as "USD".
type CurrencyCode string

func (c CurrencyCode) String() string {
	return string(c)
}

// NormalizeCurrencyCode trims and upper-cases code and checks it against the ISO 4217 table.
func NormalizeCurrencyCode(code string) (CurrencyCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != 3 {
		return "", fmt.Errorf("%w: currency code '%s' must be 3 letters", apperrors.ErrValidation, code)
	}
	if money.GetCurrency(normalized) == nil {
		return "", fmt.Errorf("%w: unknown currency code '%s'", apperrors.ErrValidation, code)
	}
	return CurrencyCode(normalized), nil
}

// Currency describes a supported currency.
type Currency struct {
	CurrencyCode CurrencyCode `json:"currencyCode"` // e.g. "USD"
	Symbol       string       `json:"symbol"`       // e.g. "$"
	Precision    int          `json:"precision"`    // number of minor-unit digits
}

// LookupCurrency returns the metadata known for code.
func LookupCurrency(code CurrencyCode) (Currency, bool) {
	c := money.GetCurrency(string(code))
	if c == nil {
		return Currency{}, false
	}
	return Currency{CurrencyCode: code, Symbol: c.Grapheme, Precision: c.Fraction}, true
}
