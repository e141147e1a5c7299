package domain

import "github.com/shopspring/decimal"

// AggregateTotals are the roll-up figures of one collection in one display currency.
type AggregateTotals struct {
	Monthly  decimal.Decimal `json:"monthly"`
	Annual   decimal.Decimal `json:"annual"`
	Lifetime decimal.Decimal `json:"lifetime"` // one-time amounts at face value
}

// NormalizedRecord is a record with its frequency-normalized figures in native and display currency.
type NormalizedRecord struct {
	Record         FinancialRecord `json:"record"`
	NativeMonthly  decimal.Decimal `json:"nativeMonthly"`
	NativeAnnual   decimal.Decimal `json:"nativeAnnual"`
	DisplayAmount  decimal.Decimal `json:"displayAmount"`
	DisplayMonthly decimal.Decimal `json:"displayMonthly"`
	DisplayAnnual  decimal.Decimal `json:"displayAnnual"`
	Converted      bool            `json:"converted"` // false while display figures fall back to the native amount
}

// CollectionSummary is the aggregated view of an income or expense collection.
type CollectionSummary struct {
	Domain          CollectionDomain   `json:"domain"`
	DisplayCurrency CurrencyCode       `json:"displayCurrency"`
	Records         []NormalizedRecord `json:"records"`
	Totals          AggregateTotals    `json:"totals"`
	Unconverted     int                `json:"unconverted"` // records shown at their native amount
}

// SavingsSummary treats savings as a stock: amounts are summed directly, never frequency-normalized.
type SavingsSummary struct {
	DisplayCurrency CurrencyCode       `json:"displayCurrency"`
	Records         []NormalizedRecord `json:"records"`
	Total           decimal.Decimal    `json:"total"`
	Unconverted     int                `json:"unconverted"`
}

// ScenarioSummary combines every collection of a scenario in one display currency.
type ScenarioSummary struct {
	ScenarioID string                 `json:"scenarioID"`
	Display    DisplayCurrencyContext `json:"display"`
	Income     CollectionSummary      `json:"income"`
	Expenses   CollectionSummary      `json:"expenses"`
	Savings    SavingsSummary         `json:"savings"`
	Goals      GoalsSummary           `json:"goals"`
	Remainder  decimal.Decimal        `json:"remainder"` // income.monthly - expenses.monthly - goals payment
}
