// Package frequency converts amounts between recurrence frequencies. It never looks at currencies:
// callers pass whichever amount (native or converted) they want normalized.
package frequency

import (
	"fmt"

	"github.com/SscSPs/budget_engine/internal/apperrors"
	"github.com/SscSPs/budget_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// Figures are the comparable views of one amount.
type Figures struct {
	Monthly  decimal.Decimal
	Annual   decimal.Decimal
	Lifetime decimal.Decimal // face value of one-time amounts, zero for recurring ones
}

// MonthlyToAnnual returns amount * 12.
func MonthlyToAnnual(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(monthsPerYear)
}

// AnnualToMonthly returns amount / 12.
func AnnualToMonthly(amount decimal.Decimal) decimal.Decimal {
	return amount.Div(monthsPerYear)
}

// Normalize returns the monthly, annual and lifetime figures of amount recurring at f.
//
// One-time amounts are amortized over a year in the monthly view (amount / 12), shown at face
// value in the annual view and counted once in the lifetime view.
func Normalize(amount decimal.Decimal, f domain.Frequency) (Figures, error) {
	switch f {
	case domain.Monthly:
		return Figures{Monthly: amount, Annual: MonthlyToAnnual(amount), Lifetime: decimal.Zero}, nil
	case domain.Annual:
		return Figures{Monthly: AnnualToMonthly(amount), Annual: amount, Lifetime: decimal.Zero}, nil
	case domain.OneTime:
		return Figures{Monthly: AnnualToMonthly(amount), Annual: amount, Lifetime: amount}, nil
	default:
		return Figures{}, fmt.Errorf("%w: unknown frequency '%s'", apperrors.ErrValidation, f)
	}
}

// MonthlyEquivalent is Normalize(amount, f).Monthly.
func MonthlyEquivalent(amount decimal.Decimal, f domain.Frequency) (decimal.Decimal, error) {
	fig, err := Normalize(amount, f)
	if err != nil {
		return decimal.Zero, err
	}
	return fig.Monthly, nil
}

// AnnualEquivalent is Normalize(amount, f).Annual.
func AnnualEquivalent(amount decimal.Decimal, f domain.Frequency) (decimal.Decimal, error) {
	fig, err := Normalize(amount, f)
	if err != nil {
		return decimal.Zero, err
	}
	return fig.Annual, nil
}
