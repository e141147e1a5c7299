package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/budget_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock RecordReader ---
type MockRecordReader struct {
	mock.Mock
}

func (m *MockRecordReader) ListRecords(ctx context.Context, scenarioID string, collection domain.CollectionDomain) ([]domain.FinancialRecord, error) {
	args := m.Called(ctx, scenarioID, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialRecord), args.Error(1)
}

func (m *MockRecordReader) ListGoals(ctx context.Context, scenarioID string) ([]domain.Goal, error) {
	args := m.Called(ctx, scenarioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Goal), args.Error(1)
}

// --- Mock ScenarioRepository ---
type MockScenarioRepository struct {
	mock.Mock
}

func (m *MockScenarioRepository) FindScenarioByID(ctx context.Context, scenarioID string) (*domain.Scenario, error) {
	args := m.Called(ctx, scenarioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scenario), args.Error(1)
}

func (m *MockScenarioRepository) UpdateScenarioBaseCurrency(ctx context.Context, scenarioID string, code domain.CurrencyCode, userID string, at time.Time) error {
	args := m.Called(ctx, scenarioID, code, userID, at)
	return args.Error(0)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCode, toCode domain.CurrencyCode) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// fixedRateClient converts with a rate table keyed by source currency and counts batches.
type fixedRateClient struct {
	mu      sync.Mutex
	rates   map[domain.CurrencyCode]decimal.Decimal
	err     error
	batches int
}

func newFixedRateClient(rates map[domain.CurrencyCode]string) *fixedRateClient {
	c := &fixedRateClient{rates: make(map[domain.CurrencyCode]decimal.Decimal)}
	for code, r := range rates {
		c.rates[code] = decimal.RequireFromString(r)
	}
	return c
}

func (c *fixedRateClient) ConvertOne(_ context.Context, amount decimal.Decimal, from, _ domain.CurrencyCode) (decimal.Decimal, error) {
	return amount.Mul(c.rates[from]), c.err
}

func (c *fixedRateClient) ConvertBatch(_ context.Context, items []domain.ConversionItem, _ domain.CurrencyCode) (map[int]decimal.Decimal, error) {
	c.mu.Lock()
	c.batches++
	c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	out := make(map[int]decimal.Decimal, len(items))
	for i, item := range items {
		if rate, ok := c.rates[item.Currency]; ok {
			out[i] = item.Amount.Mul(rate)
		}
	}
	return out, nil
}

func (c *fixedRateClient) batchCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.batches
}

type countingSink struct {
	mu      sync.Mutex
	reports []domain.FailureReport
}

func (s *countingSink) Report(_ context.Context, r domain.FailureReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, r)
}

func (s *countingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
