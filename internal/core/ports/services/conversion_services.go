package services

import (
	"context"

	"github.com/SscSPs/budget_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConversionClient is the boundary to the external conversion service.
// Callers never issue same-currency conversions and the client does not retry.
type ConversionClient interface {
	// ConvertOne converts a single amount.
	ConvertOne(ctx context.Context, amount decimal.Decimal, from, to domain.CurrencyCode) (decimal.Decimal, error)

	// ConvertBatch converts every item to the target currency in one round-trip.
	// Results are keyed by the item's position; a missing index means the service omitted it.
	ConvertBatch(ctx context.Context, items []domain.ConversionItem, to domain.CurrencyCode) (map[int]decimal.Decimal, error)
}

// TelemetrySink accepts failure reports. Implementations must return promptly and never panic back into the caller.
type TelemetrySink interface {
	Report(ctx context.Context, report domain.FailureReport)
}
