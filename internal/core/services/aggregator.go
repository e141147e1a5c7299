package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/SscSPs/budget_engine/internal/core/conversion"
	"github.com/SscSPs/budget_engine/internal/core/domain"
	"github.com/SscSPs/budget_engine/internal/utils/frequency"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

const (
	defaultMemoTTL     = 5 * time.Minute
	defaultMemoCleanup = 10 * time.Minute
)

// Aggregator folds normalized, converted records into totals. Results are memoized by a hash of
// everything they depend on, so identical inputs never recompute.
type Aggregator struct {
	memo *cache.Cache
}

// AggregatorOption is a functional option for configuring an Aggregator
type AggregatorOption func(*aggregatorConfig)

type aggregatorConfig struct {
	ttl time.Duration
}

// WithMemoTTL sets how long memoized totals are kept. Zero or negative disables expiry.
func WithMemoTTL(ttl time.Duration) AggregatorOption {
	return func(c *aggregatorConfig) {
		c.ttl = ttl
	}
}

// NewAggregator creates an aggregator with an in-memory memo.
func NewAggregator(options ...AggregatorOption) *Aggregator {
	cfg := aggregatorConfig{ttl: defaultMemoTTL}
	for _, option := range options {
		option(&cfg)
	}
	ttl := cfg.ttl
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &Aggregator{memo: cache.New(ttl, defaultMemoCleanup)}
}

// resolvedRecord is a record together with its display amount.
type resolvedRecord struct {
	record    domain.FinancialRecord
	display   decimal.Decimal
	converted bool
}

func resolveAll(records []domain.FinancialRecord, resolve conversion.AmountResolver) []resolvedRecord {
	out := make([]resolvedRecord, len(records))
	for i, r := range records {
		amount, ok := resolve(r)
		out[i] = resolvedRecord{record: r, display: amount, converted: ok}
	}
	return out
}

// memoKey hashes the inputs of one aggregation, including each record's resolved amount.
func memoKey(kind string, display domain.CurrencyCode, records []resolvedRecord) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d\n", kind, display, len(records))
	for _, r := range records {
		fmt.Fprintf(h, "%s|%s|%s|%s|%s|%t\n",
			r.record.ID, r.record.Amount.String(), r.record.CurrencyCode, r.record.Frequency,
			r.display.String(), r.converted)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Collection normalizes and sums an income or expense collection.
func (a *Aggregator) Collection(d domain.CollectionDomain, records []domain.FinancialRecord, display domain.CurrencyCode, resolve conversion.AmountResolver) (domain.CollectionSummary, error) {
	resolved := resolveAll(records, resolve)
	key := memoKey("collection:"+string(d), display, resolved)
	if v, ok := a.memo.Get(key); ok {
		return v.(domain.CollectionSummary), nil
	}

	out := domain.CollectionSummary{
		Domain:          d,
		DisplayCurrency: display,
		Records:         make([]domain.NormalizedRecord, 0, len(resolved)),
		Totals:          domain.AggregateTotals{Monthly: decimal.Zero, Annual: decimal.Zero, Lifetime: decimal.Zero},
	}
	for _, r := range resolved {
		native, err := frequency.Normalize(r.record.Amount, r.record.Frequency)
		if err != nil {
			return domain.CollectionSummary{}, fmt.Errorf("record '%s': %w", r.record.ID, err)
		}
		shown, err := frequency.Normalize(r.display, r.record.Frequency)
		if err != nil {
			return domain.CollectionSummary{}, fmt.Errorf("record '%s': %w", r.record.ID, err)
		}
		out.Records = append(out.Records, domain.NormalizedRecord{
			Record:         r.record,
			NativeMonthly:  native.Monthly,
			NativeAnnual:   native.Annual,
			DisplayAmount:  r.display,
			DisplayMonthly: shown.Monthly,
			DisplayAnnual:  shown.Annual,
			Converted:      r.converted,
		})
		out.Totals.Monthly = out.Totals.Monthly.Add(shown.Monthly)
		out.Totals.Annual = out.Totals.Annual.Add(shown.Annual)
		out.Totals.Lifetime = out.Totals.Lifetime.Add(shown.Lifetime)
		if !r.converted {
			out.Unconverted++
		}
	}

	a.memo.SetDefault(key, out)
	return out, nil
}

// Savings sums saving records directly; savings are a stock and are not frequency-normalized.
func (a *Aggregator) Savings(records []domain.FinancialRecord, display domain.CurrencyCode, resolve conversion.AmountResolver) domain.SavingsSummary {
	resolved := resolveAll(records, resolve)
	key := memoKey("savings", display, resolved)
	if v, ok := a.memo.Get(key); ok {
		return v.(domain.SavingsSummary)
	}

	out := domain.SavingsSummary{
		DisplayCurrency: display,
		Records:         make([]domain.NormalizedRecord, 0, len(resolved)),
		Total:           decimal.Zero,
	}
	for _, r := range resolved {
		out.Records = append(out.Records, domain.NormalizedRecord{
			Record:        r.record,
			DisplayAmount: r.display,
			Converted:     r.converted,
		})
		out.Total = out.Total.Add(r.display)
		if !r.converted {
			out.Unconverted++
		}
	}

	a.memo.SetDefault(key, out)
	return out
}

// Remainder is income.monthly - expenses.monthly - goals.totalMonthlyPayment.
func Remainder(income, expenses domain.CollectionSummary, goals domain.GoalsSummary) decimal.Decimal {
	return income.Totals.Monthly.Sub(expenses.Totals.Monthly).Sub(goals.TotalMonthlyPayment)
}

// MemoSize returns the number of memoized results, expired ones included until cleanup.
func (a *Aggregator) MemoSize() int {
	return a.memo.ItemCount()
}

// Flush drops every memoized result.
func (a *Aggregator) Flush() {
	a.memo.Flush()
}
