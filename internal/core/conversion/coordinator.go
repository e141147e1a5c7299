package conversion

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/budget_engine/internal/core/domain"
	portssvc "github.com/SscSPs/budget_engine/internal/core/ports/services"
)

// BatchOutcome describes what one EnsureConverted call did.
type BatchOutcome struct {
	Target     domain.CurrencyCode
	Requested  int
	Dispatched int
	Resolved   int
	Missing    []string      // dispatched records the service did not answer; they stay Pending at native amount
	Awaited    int           // batches of other callers this call waited for
	Stale      bool          // cache was invalidated while the batch was in flight; results discarded
	Failure    *FailureError // whole batch failed; every dispatched record falls back to native
}

// Coordinator coalesces the pending conversions of one collection into a single batched call.
type Coordinator struct {
	cache     *Cache
	client    portssvc.ConversionClient
	telemetry portssvc.TelemetrySink
	logger    *slog.Logger
	label     string
}

// CoordinatorOption is a functional option for configuring a Coordinator
type CoordinatorOption func(*Coordinator)

// WithTelemetry sets the sink that receives conversion failure reports.
func WithTelemetry(sink portssvc.TelemetrySink) CoordinatorOption {
	return func(c *Coordinator) {
		c.telemetry = sink
	}
}

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(logger *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLabel names the collection in logs and telemetry, e.g. "scenario-id/income".
func WithLabel(label string) CoordinatorOption {
	return func(c *Coordinator) {
		c.label = label
	}
}

// NewCoordinator creates a coordinator writing into cache through client.
func NewCoordinator(cache *Cache, client portssvc.ConversionClient, options ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		cache:  cache,
		client: client,
		logger: slog.Default(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Cache returns the cache this coordinator fills.
func (c *Coordinator) Cache() *Cache {
	return c.cache
}

// EnsureConverted makes sure every record has been converted to target, or has definitively fallen
// back to its native amount. Same-currency, resolved and already pending records are not dispatched;
// the rest go out in one batch. Batches of other callers covering requested records are awaited.
// Conversion failures are reported to telemetry and never returned; the only error is ctx's.
func (c *Coordinator) EnsureConverted(ctx context.Context, records []domain.Convertible, target domain.CurrencyCode) (BatchOutcome, error) {
	out := BatchOutcome{Target: target, Requested: len(records)}

	cl := c.cache.claim(records, target)
	out.Awaited = len(cl.waits)

	if len(cl.dispatch) > 0 {
		if err := c.dispatch(ctx, cl, target, &out); err != nil {
			return out, err
		}
	}

	for _, f := range cl.waits {
		select {
		case <-f.done:
		case <-ctx.Done():
			return out, ctx.Err()
		}
	}
	return out, nil
}

func (c *Coordinator) dispatch(ctx context.Context, cl claim, target domain.CurrencyCode, out *BatchOutcome) error {
	items := make([]domain.ConversionItem, len(cl.dispatch))
	for i, rec := range cl.dispatch {
		items[i] = domain.ConversionItem{Amount: rec.NativeAmount(), Currency: rec.Currency()}
	}
	out.Dispatched = len(items)

	logger := c.logger.With(
		slog.String("collection", c.label),
		slog.String("target_currency", string(target)),
		slog.Int("item_count", len(items)),
	)
	logger.Debug("Dispatching conversion batch")

	results, err := c.client.ConvertBatch(ctx, items, target)
	if err != nil {
		c.cache.release(cl, target)
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Debug("Conversion batch abandoned", slog.String("error", ctxErr.Error()))
			return ctxErr
		}
		failure := &FailureError{Target: target, Items: len(items), Err: err}
		out.Failure = failure
		logger.Warn("Conversion batch failed, falling back to native amounts", slog.String("error", err.Error()))
		c.report(ctx, failure)
		return nil
	}

	resolved, missing, stale := c.cache.settle(cl, target, results)
	out.Resolved = resolved
	out.Missing = missing
	out.Stale = stale

	switch {
	case stale:
		logger.Debug("Discarded conversion results for an invalidated cache")
	case len(missing) > 0:
		logger.Warn("Conversion batch answered partially",
			slog.Int("resolved", resolved),
			slog.Int("missing", len(missing)))
	default:
		logger.Debug("Conversion batch resolved", slog.Int("resolved", resolved))
	}
	return nil
}

// report hands the failure to the sink; a misbehaving sink must never break conversion.
func (c *Coordinator) report(ctx context.Context, failure *FailureError) {
	if c.telemetry == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Telemetry sink panicked", slog.Any("panic", r))
		}
	}()
	stats := c.cache.Stats()
	c.telemetry.Report(ctx, domain.FailureReport{
		Action: "convert_batch",
		Error:  failure.Err.Error(),
		Context: map[string]any{
			"collection":      c.label,
			"scenario_id":     stats.ScenarioID,
			"target_currency": string(failure.Target),
			"item_count":      failure.Items,
		},
		OccurredAt: time.Now(),
	})
}
