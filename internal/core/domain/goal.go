package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/budget_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Goal is a savings target with a schedule.
type Goal struct {
	ID           string          `json:"id" db:"goal_id"`
	ScenarioID   string          `json:"scenarioID" db:"scenario_id"`
	Name         string          `json:"name" db:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount" db:"target_amount"`
	SavedAmount  decimal.Decimal `json:"savedAmount" db:"saved_amount"`
	CurrencyCode CurrencyCode    `json:"currency" db:"currency_code"`
	StartDate    time.Time       `json:"startDate" db:"start_date"`
	TargetDate   time.Time       `json:"targetDate" db:"target_date"`
	AuditFields
}

// Validate checks the invariants a goal needs for scheduling.
func (g Goal) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("%w: goal id is required", apperrors.ErrValidation)
	}
	if g.TargetAmount.IsNegative() || g.SavedAmount.IsNegative() {
		return fmt.Errorf("%w: goal '%s': amounts must not be negative", apperrors.ErrValidation, g.ID)
	}
	if !g.StartDate.IsZero() && g.TargetDate.Before(g.StartDate) {
		return fmt.Errorf("%w: goal '%s': target date is before start date", apperrors.ErrValidation, g.ID)
	}
	if _, err := NormalizeCurrencyCode(string(g.CurrencyCode)); err != nil {
		return fmt.Errorf("goal '%s': %w", g.ID, err)
	}
	return nil
}

// GoalPart distinguishes the two convertible amounts of a goal.
type GoalPart string

const (
	GoalTarget GoalPart = "target"
	GoalSaved  GoalPart = "saved"
)

// GoalAmount exposes one amount of a goal as an ordinary convertible record.
type GoalAmount struct {
	GoalID       string
	Part         GoalPart
	Amount       decimal.Decimal
	CurrencyCode CurrencyCode
}

func (a GoalAmount) RecordID() string              { return a.GoalID + ":" + string(a.Part) }
func (a GoalAmount) NativeAmount() decimal.Decimal { return a.Amount }
func (a GoalAmount) Currency() CurrencyCode        { return a.CurrencyCode }

// Target returns the goal's target amount as a convertible record.
func (g Goal) Target() GoalAmount {
	return GoalAmount{GoalID: g.ID, Part: GoalTarget, Amount: g.TargetAmount, CurrencyCode: g.CurrencyCode}
}

// Saved returns the goal's saved amount as a convertible record.
func (g Goal) Saved() GoalAmount {
	return GoalAmount{GoalID: g.ID, Part: GoalSaved, Amount: g.SavedAmount, CurrencyCode: g.CurrencyCode}
}

// GoalConvertibles flattens goals into their target and saved amounts.
func GoalConvertibles(goals []Goal) []Convertible {
	out := make([]Convertible, 0, len(goals)*2)
	for _, g := range goals {
		out = append(out, g.Target(), g.Saved())
	}
	return out
}

// GoalSchedule holds the derived, never persisted, figures of a goal.
type GoalSchedule struct {
	Goal                    Goal            `json:"goal"`
	Due                     bool            `json:"due"`        // target date reached; excluded from projections
	MonthsLeft              int             `json:"monthsLeft"` // zero when Due
	MonthlyPayment          decimal.Decimal `json:"monthlyPayment"`
	MonthlyPaymentConverted decimal.Decimal `json:"monthlyPaymentConverted"`
	DisplayCurrency         CurrencyCode    `json:"displayCurrency"`
	Converted               bool            `json:"converted"` // false while the display figure falls back to native amounts
}

// GoalsSummary folds the schedules of a goal collection.
type GoalsSummary struct {
	DisplayCurrency     CurrencyCode    `json:"displayCurrency"`
	Schedules           []GoalSchedule  `json:"schedules"`
	TotalMonthlyPayment decimal.Decimal `json:"totalMonthlyPayment"` // display currency, due goals excluded
}
