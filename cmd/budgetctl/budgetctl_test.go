package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/budget_engine/internal/apperrors"
	"github.com/SscSPs/budget_engine/internal/core/domain"
	"github.com/SscSPs/budget_engine/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBudget = `
[scenario]
id = "plan-2025"
name = "Plan 2025"
base_currency = "usd"

[rates]
pivot = "USD"
  [rates.table]
  EUR = "1.10"

[[income]]
id = "salary"
amount = "5000"
currency = "USD"
frequency = "monthly"

[[income]]
id = "bonus"
amount = "1200"
currency = "EUR"
frequency = "annual"

[[expense]]
id = "rent"
amount = "1500"
currency = "USD"
frequency = "monthly"

[[saving]]
id = "emergency"
amount = "1000"
currency = "EUR"

[[goal]]
id = "car"
target = "12000"
saved = "0"
currency = "EUR"
target_date = "2026-01-01"
`

func writeBudget(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "budget.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseBudget(t *testing.T) {
	b, err := parseBudget([]byte(sampleBudget))
	require.NoError(t, err)

	assert.Equal(t, domain.CurrencyCode("USD"), b.scenario.BaseCurrency)
	assert.Len(t, b.records[domain.DomainIncome], 2)
	assert.Equal(t, domain.Annual, b.records[domain.DomainIncome][1].Frequency)
	assert.Equal(t, domain.OneTime, b.records[domain.DomainSaving][0].Frequency)
	require.Len(t, b.goals, 1)
	assert.Equal(t, 2026, b.goals[0].TargetDate.Year())
	assert.Equal(t, "1.1", b.rates["EUR"].String())
}

func TestParseBudget_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown currency":  "[scenario]\nbase_currency = \"ABC\"\n",
		"bad frequency":     "[scenario]\nbase_currency = \"USD\"\n[[income]]\nid = \"x\"\namount = \"1\"\ncurrency = \"USD\"\nfrequency = \"weekly\"\n",
		"negative amount":   "[scenario]\nbase_currency = \"USD\"\n[[expense]]\nid = \"x\"\namount = \"-1\"\ncurrency = \"USD\"\nfrequency = \"monthly\"\n",
		"goal without date": "[scenario]\nbase_currency = \"USD\"\n[[goal]]\nid = \"g\"\ntarget = \"10\"\ncurrency = \"USD\"\n",
		"bad rate":          "[scenario]\nbase_currency = \"USD\"\n[rates.table]\nEUR = \"abc\"\n",
		"not toml":          "[scenario\n",
		"duplicate income":  "[scenario]\nbase_currency = \"USD\"\n[[income]]\nid = \"x\"\namount = \"100\"\ncurrency = \"EUR\"\nfrequency = \"monthly\"\n[[income]]\nid = \"x\"\namount = \"100\"\ncurrency = \"GBP\"\nfrequency = \"monthly\"\n",
		"duplicate goal":    "[scenario]\nbase_currency = \"USD\"\n[[goal]]\nid = \"g\"\ntarget = \"10\"\ncurrency = \"USD\"\ntarget_date = \"2030-01-01\"\n[[goal]]\nid = \"g\"\ntarget = \"20\"\ncurrency = \"USD\"\ntarget_date = \"2030-01-01\"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseBudget([]byte(content))
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestParseBudget_SameIDAcrossCollections(t *testing.T) {
	_, err := parseBudget([]byte(sampleBudget + `
[[expense]]
id = "salary"
amount = "10"
currency = "USD"
frequency = "monthly"
`))
	assert.NoError(t, err, "collections have independent caches")
}

func TestSummaryCommand_RejectsDuplicateIDs(t *testing.T) {
	path := writeBudget(t, sampleBudget+`
[[income]]
id = "bonus"
amount = "100"
currency = "GBP"
frequency = "monthly"
`)

	_, err := run(t, "summary", "--file", path, "--today", "2025-01-01", "--json")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.ErrorContains(t, err, "duplicate income id 'bonus'")
}

func TestSummaryCommand_JSON(t *testing.T) {
	path := writeBudget(t, sampleBudget)

	out, err := run(t, "summary", "--file", path, "--today", "2025-01-01", "--json")
	require.NoError(t, err)

	var resp dto.ScenarioSummaryResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "USD", resp.Display.Currency.CurrencyCode)
	assert.Equal(t, "5110.00", resp.Income.Totals.Monthly)
	assert.Equal(t, "1500.00", resp.Expenses.Totals.Monthly)
	assert.Equal(t, "1100.00", resp.Savings.Total)
	assert.Equal(t, "1100.00", resp.Goals.TotalMonthlyPayment)
	assert.Equal(t, "2510.00", resp.Remainder)
	assert.Zero(t, resp.Income.Unconverted)
}

func TestSummaryCommand_DisplayOverride(t *testing.T) {
	path := writeBudget(t, sampleBudget)

	out, err := run(t, "summary", "-f", path, "--today", "2025-01-01", "--currency", "eur", "--json")
	require.NoError(t, err)

	var resp dto.ScenarioSummaryResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Display.Overridden)
	assert.Equal(t, "EUR", resp.Display.Currency.CurrencyCode)
	assert.Equal(t, "1000.00", resp.Savings.Total)
	assert.Equal(t, "1000.00", resp.Goals.TotalMonthlyPayment)
}

func TestSummaryCommand_MissingRateFallsBackToNative(t *testing.T) {
	path := writeBudget(t, sampleBudget+`
[[expense]]
id = "ski"
amount = "100"
currency = "CHF"
frequency = "monthly"
`)

	out, err := run(t, "summary", "--file", path, "--today", "2025-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Plan 2025")
	assert.Contains(t, out, "1600.00")
	assert.Contains(t, out, "1 record(s) have no rate to USD")
}

func TestConvertCommand(t *testing.T) {
	path := writeBudget(t, sampleBudget)

	out, err := run(t, "convert", "100", "EUR", "USD", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "100.00 EUR = 110.00 USD\n", out)

	out, err = run(t, "convert", "100", "eur", "usd", "--file", path, "--rate", "EUR=1.2")
	require.NoError(t, err)
	assert.Equal(t, "100.00 EUR = 120.00 USD\n", out)

	_, err = run(t, "convert", "100", "EUR", "CHF", "--file", path)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
