package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/SscSPs/budget_engine/internal/apperrors"
	"github.com/SscSPs/budget_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_engine/internal/core/ports/repositories"
	"github.com/pelletier/go-toml"
	"github.com/shopspring/decimal"
)

const fileDateFormat = "2006-01-02"

// budgetFile is the on-disk TOML layout. Amounts and rates are strings so no precision is
// lost through floats.
//
//	[scenario]
//	id = "plan"
//	base_currency = "USD"
//
//	[rates]
//	pivot = "USD"
//	  [rates.table]
//	  EUR = "1.10"
//
//	[[income]]
//	id = "salary"
//	amount = "5000"
//	currency = "EUR"
//	frequency = "monthly"
//
//	[[goal]]
//	id = "car"
//	target = "12000"
//	saved = "0"
//	currency = "EUR"
//	target_date = "2026-01-01"
type budgetFile struct {
	Scenario struct {
		ID           string `toml:"id"`
		Name         string `toml:"name"`
		BaseCurrency string `toml:"base_currency"`
	} `toml:"scenario"`
	Rates struct {
		Pivot string            `toml:"pivot"`
		Table map[string]string `toml:"table"`
	} `toml:"rates"`
	Income  []fileRecord `toml:"income"`
	Expense []fileRecord `toml:"expense"`
	Saving  []fileRecord `toml:"saving"`
	Goal    []fileGoal   `toml:"goal"`
}

type fileRecord struct {
	ID        string `toml:"id"`
	Name      string `toml:"name"`
	Amount    string `toml:"amount"`
	Currency  string `toml:"currency"`
	Frequency string `toml:"frequency"`
}

type fileGoal struct {
	ID         string `toml:"id"`
	Name       string `toml:"name"`
	Target     string `toml:"target"`
	Saved      string `toml:"saved"`
	Currency   string `toml:"currency"`
	StartDate  string `toml:"start_date"`
	TargetDate string `toml:"target_date"`
}

// budget is a parsed and validated budget file. It serves as the record source of the engine.
type budget struct {
	scenario domain.Scenario
	pivot    domain.CurrencyCode
	rates    map[domain.CurrencyCode]decimal.Decimal
	records  map[domain.CollectionDomain][]domain.FinancialRecord
	goals    []domain.Goal
}

var (
	_ portsrepo.RecordReader   = (*budget)(nil)
	_ portsrepo.ScenarioReader = (*budget)(nil)
)

func loadBudgetFile(path string) (*budget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read budget file: %w", err)
	}
	return parseBudget(data)
}

func parseBudget(data []byte) (*budget, error) {
	var f budgetFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parse budget file: %s", apperrors.ErrValidation, err.Error())
	}

	b := &budget{
		rates:   make(map[domain.CurrencyCode]decimal.Decimal),
		records: make(map[domain.CollectionDomain][]domain.FinancialRecord),
	}

	base, err := domain.NormalizeCurrencyCode(f.Scenario.BaseCurrency)
	if err != nil {
		return nil, fmt.Errorf("scenario base currency: %w", err)
	}
	id := f.Scenario.ID
	if id == "" {
		id = "default"
	}
	b.scenario = domain.Scenario{ScenarioID: id, Name: f.Scenario.Name, BaseCurrency: base}

	b.pivot = base
	if f.Rates.Pivot != "" {
		if b.pivot, err = domain.NormalizeCurrencyCode(f.Rates.Pivot); err != nil {
			return nil, fmt.Errorf("rates pivot: %w", err)
		}
	}
	for code, raw := range f.Rates.Table {
		if err := b.setRate(code, raw); err != nil {
			return nil, err
		}
	}

	sections := []struct {
		domain  domain.CollectionDomain
		records []fileRecord
	}{
		{domain.DomainIncome, f.Income},
		{domain.DomainExpense, f.Expense},
		{domain.DomainSaving, f.Saving},
	}
	// ids key the conversion cache of a collection and must be unique within it
	for _, section := range sections {
		seen := make(map[string]bool, len(section.records))
		for _, fr := range section.records {
			rec, err := fr.toRecord(id, section.domain)
			if err != nil {
				return nil, err
			}
			if seen[rec.ID] {
				return nil, fmt.Errorf("%w: duplicate %s id '%s'", apperrors.ErrValidation, section.domain, rec.ID)
			}
			seen[rec.ID] = true
			b.records[section.domain] = append(b.records[section.domain], rec)
		}
	}
	seenGoals := make(map[string]bool, len(f.Goal))
	for _, fg := range f.Goal {
		g, err := fg.toGoal(id)
		if err != nil {
			return nil, err
		}
		if seenGoals[g.ID] {
			return nil, fmt.Errorf("%w: duplicate goal id '%s'", apperrors.ErrValidation, g.ID)
		}
		seenGoals[g.ID] = true
		b.goals = append(b.goals, g)
	}
	return b, nil
}

// setRate parses one "CODE = rate" entry, overriding any previous rate for the code.
func (b *budget) setRate(code, raw string) error {
	c, err := domain.NormalizeCurrencyCode(code)
	if err != nil {
		return fmt.Errorf("rate table: %w", err)
	}
	r, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: rate for %s: %s", apperrors.ErrValidation, c, err.Error())
	}
	b.rates[c] = r
	return nil
}

func parseAmount(owner, field, raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: '%s' %s: %s", apperrors.ErrValidation, owner, field, err.Error())
	}
	return d, nil
}

func parseDate(owner, field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(fileDateFormat, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: '%s' %s must be YYYY-MM-DD", apperrors.ErrValidation, owner, field)
	}
	return t, nil
}

func (fr fileRecord) toRecord(scenarioID string, d domain.CollectionDomain) (domain.FinancialRecord, error) {
	amount, err := parseAmount(fr.ID, "amount", fr.Amount)
	if err != nil {
		return domain.FinancialRecord{}, err
	}
	frequency := domain.Frequency("")
	if d == domain.DomainSaving && fr.Frequency == "" {
		// savings are a stock; the frequency is only informative
		frequency = domain.OneTime
	} else if frequency, err = domain.ParseFrequency(fr.Frequency); err != nil {
		return domain.FinancialRecord{}, fmt.Errorf("record '%s': %w", fr.ID, err)
	}
	rec := domain.FinancialRecord{
		ID:           fr.ID,
		ScenarioID:   scenarioID,
		Domain:       d,
		Name:         fr.Name,
		Amount:       amount,
		CurrencyCode: domain.CurrencyCode(strings.ToUpper(strings.TrimSpace(fr.Currency))),
		Frequency:    frequency,
	}
	if err := rec.Validate(); err != nil {
		return domain.FinancialRecord{}, err
	}
	return rec, nil
}

func (fg fileGoal) toGoal(scenarioID string) (domain.Goal, error) {
	target, err := parseAmount(fg.ID, "target", fg.Target)
	if err != nil {
		return domain.Goal{}, err
	}
	saved, err := parseAmount(fg.ID, "saved", fg.Saved)
	if err != nil {
		return domain.Goal{}, err
	}
	start, err := parseDate(fg.ID, "start_date", fg.StartDate)
	if err != nil {
		return domain.Goal{}, err
	}
	targetDate, err := parseDate(fg.ID, "target_date", fg.TargetDate)
	if err != nil {
		return domain.Goal{}, err
	}
	if targetDate.IsZero() {
		return domain.Goal{}, fmt.Errorf("%w: goal '%s': target_date is required", apperrors.ErrValidation, fg.ID)
	}
	g := domain.Goal{
		ID:           fg.ID,
		ScenarioID:   scenarioID,
		Name:         fg.Name,
		TargetAmount: target,
		SavedAmount:  saved,
		CurrencyCode: domain.CurrencyCode(strings.ToUpper(strings.TrimSpace(fg.Currency))),
		StartDate:    start,
		TargetDate:   targetDate,
	}
	if err := g.Validate(); err != nil {
		return domain.Goal{}, err
	}
	return g, nil
}

func (b *budget) FindScenarioByID(_ context.Context, scenarioID string) (*domain.Scenario, error) {
	if scenarioID != b.scenario.ScenarioID {
		return nil, nil
	}
	s := b.scenario
	return &s, nil
}

func (b *budget) ListRecords(_ context.Context, scenarioID string, collection domain.CollectionDomain) ([]domain.FinancialRecord, error) {
	if scenarioID != b.scenario.ScenarioID {
		return nil, nil
	}
	return b.records[collection], nil
}

func (b *budget) ListGoals(_ context.Context, scenarioID string) ([]domain.Goal, error) {
	if scenarioID != b.scenario.ScenarioID {
		return nil, nil
	}
	return b.goals, nil
}
