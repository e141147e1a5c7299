package dto

import (
	"time"

	"github.com/SscSPs/budget_engine/internal/core/domain"
	"github.com/SscSPs/budget_engine/internal/utils"
)

// DisplayResponse describes which currency a view is shown in.
type DisplayResponse struct {
	ScenarioID   string           `json:"scenarioID"`
	BaseCurrency CurrencyResponse `json:"baseCurrency"`
	Currency     CurrencyResponse `json:"currency"`
	Overridden   bool             `json:"overridden"`
}

// TotalsResponse are formatted roll-up totals.
type TotalsResponse struct {
	Monthly  string `json:"monthly"`
	Annual   string `json:"annual"`
	Lifetime string `json:"lifetime"`
}

// RecordResponse is one normalized record. Native figures use the record's currency, display ones the view's.
type RecordResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	Frequency      string `json:"frequency"`
	NativeMonthly  string `json:"nativeMonthly"`
	NativeAnnual   string `json:"nativeAnnual"`
	DisplayAmount  string `json:"displayAmount"`
	DisplayMonthly string `json:"displayMonthly"`
	DisplayAnnual  string `json:"displayAnnual"`
	Converted      bool   `json:"converted"`
}

// CollectionSummaryResponse is the API shape of an income or expense collection.
type CollectionSummaryResponse struct {
	Domain      string           `json:"domain"`
	Currency    CurrencyResponse `json:"currency"`
	Records     []RecordResponse `json:"records"`
	Totals      TotalsResponse   `json:"totals"`
	Unconverted int              `json:"unconverted"`
}

// SavingsSummaryResponse is the API shape of the saving collection.
type SavingsSummaryResponse struct {
	Currency    CurrencyResponse `json:"currency"`
	Records     []RecordResponse `json:"records"`
	Total       string           `json:"total"`
	Unconverted int              `json:"unconverted"`
}

// GoalScheduleResponse is one goal with its derived schedule.
type GoalScheduleResponse struct {
	ID                      string    `json:"id"`
	Name                    string    `json:"name"`
	Currency                string    `json:"currency"`
	TargetAmount            string    `json:"targetAmount"`
	SavedAmount             string    `json:"savedAmount"`
	StartDate               time.Time `json:"startDate"`
	TargetDate              time.Time `json:"targetDate"`
	Due                     bool      `json:"due"`
	MonthsLeft              int       `json:"monthsLeft"`
	MonthlyPayment          string    `json:"monthlyPayment"`
	MonthlyPaymentConverted string    `json:"monthlyPaymentConverted"`
	Converted               bool      `json:"converted"`
}

// GoalsSummaryResponse lists goal schedules and their combined monthly payment.
type GoalsSummaryResponse struct {
	Currency            CurrencyResponse       `json:"currency"`
	Goals               []GoalScheduleResponse `json:"goals"`
	TotalMonthlyPayment string                 `json:"totalMonthlyPayment"`
}

// ScenarioSummaryResponse is the API shape of a full scenario summary.
type ScenarioSummaryResponse struct {
	Display   DisplayResponse           `json:"display"`
	Income    CollectionSummaryResponse `json:"income"`
	Expenses  CollectionSummaryResponse `json:"expenses"`
	Savings   SavingsSummaryResponse    `json:"savings"`
	Goals     GoalsSummaryResponse      `json:"goals"`
	Remainder string                    `json:"remainder"`
}

// ToDisplayResponse converts a display-currency context.
func ToDisplayResponse(d domain.DisplayCurrencyContext) DisplayResponse {
	return DisplayResponse{
		ScenarioID:   d.ScenarioID,
		BaseCurrency: ToCurrencyResponse(d.Base),
		Currency:     ToCurrencyResponse(d.Effective()),
		Overridden:   d.IsOverridden(),
	}
}

func toRecordResponses(records []domain.NormalizedRecord, display domain.CurrencyCode) []RecordResponse {
	out := make([]RecordResponse, len(records))
	for i, r := range records {
		native := r.Record.CurrencyCode
		out[i] = RecordResponse{
			ID:             r.Record.ID,
			Name:           r.Record.Name,
			Amount:         utils.FormatAmount(r.Record.Amount, native),
			Currency:       string(native),
			Frequency:      string(r.Record.Frequency),
			NativeMonthly:  utils.FormatAmount(r.NativeMonthly, native),
			NativeAnnual:   utils.FormatAmount(r.NativeAnnual, native),
			DisplayAmount:  utils.FormatAmount(r.DisplayAmount, display),
			DisplayMonthly: utils.FormatAmount(r.DisplayMonthly, display),
			DisplayAnnual:  utils.FormatAmount(r.DisplayAnnual, display),
			Converted:      r.Converted,
		}
	}
	return out
}

// ToCollectionSummaryResponse converts a domain.CollectionSummary.
func ToCollectionSummaryResponse(s *domain.CollectionSummary) CollectionSummaryResponse {
	return CollectionSummaryResponse{
		Domain:   string(s.Domain),
		Currency: ToCurrencyResponse(s.DisplayCurrency),
		Records:  toRecordResponses(s.Records, s.DisplayCurrency),
		Totals: TotalsResponse{
			Monthly:  utils.FormatAmount(s.Totals.Monthly, s.DisplayCurrency),
			Annual:   utils.FormatAmount(s.Totals.Annual, s.DisplayCurrency),
			Lifetime: utils.FormatAmount(s.Totals.Lifetime, s.DisplayCurrency),
		},
		Unconverted: s.Unconverted,
	}
}

// ToSavingsSummaryResponse converts a domain.SavingsSummary.
func ToSavingsSummaryResponse(s *domain.SavingsSummary) SavingsSummaryResponse {
	return SavingsSummaryResponse{
		Currency:    ToCurrencyResponse(s.DisplayCurrency),
		Records:     toRecordResponses(s.Records, s.DisplayCurrency),
		Total:       utils.FormatAmount(s.Total, s.DisplayCurrency),
		Unconverted: s.Unconverted,
	}
}

// ToGoalsSummaryResponse converts a domain.GoalsSummary.
func ToGoalsSummaryResponse(s *domain.GoalsSummary) GoalsSummaryResponse {
	goals := make([]GoalScheduleResponse, len(s.Schedules))
	for i, sc := range s.Schedules {
		g := sc.Goal
		goals[i] = GoalScheduleResponse{
			ID:                      g.ID,
			Name:                    g.Name,
			Currency:                string(g.CurrencyCode),
			TargetAmount:            utils.FormatAmount(g.TargetAmount, g.CurrencyCode),
			SavedAmount:             utils.FormatAmount(g.SavedAmount, g.CurrencyCode),
			StartDate:               g.StartDate,
			TargetDate:              g.TargetDate,
			Due:                     sc.Due,
			MonthsLeft:              sc.MonthsLeft,
			MonthlyPayment:          utils.FormatAmount(sc.MonthlyPayment, g.CurrencyCode),
			MonthlyPaymentConverted: utils.FormatAmount(sc.MonthlyPaymentConverted, sc.DisplayCurrency),
			Converted:               sc.Converted,
		}
	}
	return GoalsSummaryResponse{
		Currency:            ToCurrencyResponse(s.DisplayCurrency),
		Goals:               goals,
		TotalMonthlyPayment: utils.FormatAmount(s.TotalMonthlyPayment, s.DisplayCurrency),
	}
}

// ToScenarioSummaryResponse converts a domain.ScenarioSummary.
func ToScenarioSummaryResponse(s *domain.ScenarioSummary) ScenarioSummaryResponse {
	return ScenarioSummaryResponse{
		Display:   ToDisplayResponse(s.Display),
		Income:    ToCollectionSummaryResponse(&s.Income),
		Expenses:  ToCollectionSummaryResponse(&s.Expenses),
		Savings:   ToSavingsSummaryResponse(&s.Savings),
		Goals:     ToGoalsSummaryResponse(&s.Goals),
		Remainder: utils.FormatAmount(s.Remainder, s.Display.Effective()),
	}
}
