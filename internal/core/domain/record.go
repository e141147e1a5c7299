package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/budget_engine/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Frequency is the recurrence of a record's amount.
type Frequency string

const (
	Monthly Frequency = "MONTHLY"
	Annual  Frequency = "ANNUAL"
	OneTime Frequency = "ONE_TIME"
)

// ParseFrequency accepts the canonical names plus the lower-case aliases used by the UI.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MONTHLY":
		return Monthly, nil
	case "ANNUAL", "ANNUALLY", "YEARLY":
		return Annual, nil
	case "ONE_TIME", "ONE-TIME", "ONETIME", "ONCE":
		return OneTime, nil
	}
	return "", fmt.Errorf("%w: unknown frequency '%s'", apperrors.ErrValidation, s)
}

// CollectionDomain names one of the independent record collections of a scenario.
type CollectionDomain string

const (
	DomainIncome  CollectionDomain = "income"
	DomainExpense CollectionDomain = "expense"
	DomainSaving  CollectionDomain = "saving"
	DomainGoal    CollectionDomain = "goal"
)

// ParseCollectionDomain maps a path segment (singular or plural) to a CollectionDomain.
func ParseCollectionDomain(s string) (CollectionDomain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "incomes":
		return DomainIncome, nil
	case "expense", "expenses":
		return DomainExpense, nil
	case "saving", "savings":
		return DomainSaving, nil
	case "goal", "goals":
		return DomainGoal, nil
	}
	return "", fmt.Errorf("%w: unknown collection '%s'", apperrors.ErrValidation, s)
}

// Convertible is the minimal capability the conversion engine needs from a record.
type Convertible interface {
	RecordID() string
	NativeAmount() decimal.Decimal
	Currency() CurrencyCode
}

// FinancialRecord is one income, expense or saving entry.
// The engine never mutates Amount or CurrencyCode; it only derives figures from them.
type FinancialRecord struct {
	ID           string           `json:"id" db:"record_id" validate:"required"`
	ScenarioID   string           `json:"scenarioID" db:"scenario_id" validate:"required"`
	Domain       CollectionDomain `json:"domain" db:"domain" validate:"required,oneof=income expense saving"`
	Name         string           `json:"name" db:"name"`
	Amount       decimal.Decimal  `json:"amount" db:"amount"`
	CurrencyCode CurrencyCode     `json:"currency" db:"currency_code" validate:"required,len=3"`
	Frequency    Frequency        `json:"frequency" db:"frequency" validate:"required,oneof=MONTHLY ANNUAL ONE_TIME"`
	AuditFields
}

func (r FinancialRecord) RecordID() string              { return r.ID }
func (r FinancialRecord) NativeAmount() decimal.Decimal { return r.Amount }
func (r FinancialRecord) Currency() CurrencyCode        { return r.CurrencyCode }

var validate = validator.New()

// Validate checks the structural constraints of a record loaded from an untrusted source.
func (r FinancialRecord) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: record '%s': %s", apperrors.ErrValidation, r.ID, err.Error())
	}
	if r.Amount.IsNegative() {
		return fmt.Errorf("%w: record '%s': amount must not be negative", apperrors.ErrValidation, r.ID)
	}
	if _, err := NormalizeCurrencyCode(string(r.CurrencyCode)); err != nil {
		return fmt.Errorf("record '%s': %w", r.ID, err)
	}
	return nil
}

// Convertibles adapts a record slice to the engine's capability.
func Convertibles(records []FinancialRecord) []Convertible {
	out := make([]Convertible, len(records))
	for i, r := range records {
		out[i] = r
	}
	return out
}
