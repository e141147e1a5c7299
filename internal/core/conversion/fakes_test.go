package conversion_test

import (
	"context"
	"sync"

	"github.com/SscSPs/budget_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// rateClient converts with fixed rates and counts the batches it receives.
type rateClient struct {
	mu      sync.Mutex
	rates   map[domain.CurrencyCode]decimal.Decimal // from currency -> rate to target
	skip    map[int]bool                            // positions left unanswered
	err     error
	gate    chan struct{} // when set, ConvertBatch blocks until it is closed
	entered chan struct{}
	batches [][]domain.ConversionItem
}

func newRateClient(rates map[domain.CurrencyCode]string) *rateClient {
	c := &rateClient{rates: make(map[domain.CurrencyCode]decimal.Decimal)}
	for code, r := range rates {
		c.rates[code] = decimal.RequireFromString(r)
	}
	return c
}

func (c *rateClient) ConvertOne(ctx context.Context, amount decimal.Decimal, from, to domain.CurrencyCode) (decimal.Decimal, error) {
	out, err := c.ConvertBatch(ctx, []domain.ConversionItem{{Amount: amount, Currency: from}}, to)
	if err != nil {
		return decimal.Zero, err
	}
	return out[0], nil
}

func (c *rateClient) ConvertBatch(ctx context.Context, items []domain.ConversionItem, to domain.CurrencyCode) (map[int]decimal.Decimal, error) {
	c.mu.Lock()
	c.batches = append(c.batches, items)
	gate, entered := c.gate, c.entered
	c.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if c.err != nil {
		return nil, c.err
	}
	out := make(map[int]decimal.Decimal, len(items))
	for i, item := range items {
		if c.skip[i] {
			continue
		}
		rate, ok := c.rates[item.Currency]
		if !ok {
			continue
		}
		out[i] = item.Amount.Mul(rate)
	}
	return out, nil
}

func (c *rateClient) batchCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.batches)
}

func (c *rateClient) batch(i int) []domain.ConversionItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.batches[i]
}

type recordingSink struct {
	mu      sync.Mutex
	reports []domain.FailureReport
	panics  bool
}

func (s *recordingSink) Report(_ context.Context, r domain.FailureReport) {
	s.mu.Lock()
	s.reports = append(s.reports, r)
	s.mu.Unlock()
	if s.panics {
		panic("sink exploded")
	}
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports)
}

func record(id, amount string, currency domain.CurrencyCode, freq domain.Frequency) domain.FinancialRecord {
	return domain.FinancialRecord{
		ID:           id,
		ScenarioID:   "sc-1",
		Domain:       domain.DomainIncome,
		Amount:       decimal.RequireFromString(amount),
		CurrencyCode: currency,
		Frequency:    freq,
	}
}
