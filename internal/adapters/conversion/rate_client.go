// Package conversion provides ConversionClient implementations: stored exchange rates,
// a remote conversion service over HTTP and a fixed rate table.
package conversion

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/budget_engine/internal/apperrors"
	"github.com/SscSPs/budget_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_engine/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// RateClient converts with the latest exchange rates stored in the database.
// A pair without a stored rate leaves its items unanswered instead of failing the batch.
type RateClient struct {
	rates portsrepo.ExchangeRateReader
}

var _ portssvc.ConversionClient = (*RateClient)(nil)

// NewRateClient creates a client reading rates from repo.
func NewRateClient(repo portsrepo.ExchangeRateReader) *RateClient {
	return &RateClient{rates: repo}
}

func (c *RateClient) ConvertOne(ctx context.Context, amount decimal.Decimal, from, to domain.CurrencyCode) (decimal.Decimal, error) {
	rate, err := c.rates.FindExchangeRate(ctx, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate %s->%s: %w", from, to, err)
	}
	return amount.Mul(rate.Rate), nil
}

func (c *RateClient) ConvertBatch(ctx context.Context, items []domain.ConversionItem, to domain.CurrencyCode) (map[int]decimal.Decimal, error) {
	rates := make(map[domain.CurrencyCode]*decimal.Decimal)
	out := make(map[int]decimal.Decimal, len(items))
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rate, seen := rates[item.Currency]
		if !seen {
			found, err := c.rates.FindExchangeRate(ctx, item.Currency, to)
			switch {
			case errors.Is(err, apperrors.ErrNotFound):
				rate = nil
			case err != nil:
				return nil, fmt.Errorf("rate %s->%s: %w", item.Currency, to, err)
			default:
				rate = &found.Rate
			}
			rates[item.Currency] = rate
		}
		if rate == nil {
			continue
		}
		out[i] = item.Amount.Mul(*rate)
	}
	return out, nil
}
