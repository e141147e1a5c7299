package conversion

import (
	"context"
	"fmt"

	"github.com/SscSPs/budget_engine/internal/apperrors"
	"github.com/SscSPs/budget_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StaticClient converts through a fixed table of rates against a pivot currency.
// A rate r for code C means 1 C = r pivot.
type StaticClient struct {
	pivot domain.CurrencyCode
	rates map[domain.CurrencyCode]decimal.Decimal
}

// NewStaticClient validates the table and returns a client. The pivot always has rate 1.
func NewStaticClient(pivot domain.CurrencyCode, rates map[domain.CurrencyCode]decimal.Decimal) (*StaticClient, error) {
	table := make(map[domain.CurrencyCode]decimal.Decimal, len(rates)+1)
	for code, r := range rates {
		if !r.IsPositive() {
			return nil, fmt.Errorf("%w: rate for %s must be positive", apperrors.ErrValidation, code)
		}
		table[code] = r
	}
	table[pivot] = decimal.NewFromInt(1)
	return &StaticClient{pivot: pivot, rates: table}, nil
}

func (c *StaticClient) rate(from, to domain.CurrencyCode) (decimal.Decimal, bool) {
	f, ok := c.rates[from]
	if !ok {
		return decimal.Zero, false
	}
	t, ok := c.rates[to]
	if !ok {
		return decimal.Zero, false
	}
	return f.Div(t), true
}

func (c *StaticClient) ConvertOne(_ context.Context, amount decimal.Decimal, from, to domain.CurrencyCode) (decimal.Decimal, error) {
	r, ok := c.rate(from, to)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rate for %s->%s", apperrors.ErrNotFound, from, to)
	}
	return amount.Mul(r), nil
}

func (c *StaticClient) ConvertBatch(ctx context.Context, items []domain.ConversionItem, to domain.CurrencyCode) (map[int]decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[int]decimal.Decimal, len(items))
	for i, item := range items {
		if r, ok := c.rate(item.Currency, to); ok {
			out[i] = item.Amount.Mul(r)
		}
	}
	return out, nil
}
