// Package telemetry delivers conversion failure reports to PostHog, the log and an AMQP queue.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/budget_engine/internal/core/domain"
	portssvc "github.com/SscSPs/budget_engine/internal/core/ports/services"
)

// MultiSink fans a report out to several sinks. A sink that panics does not stop the others.
type MultiSink struct {
	sinks  []portssvc.TelemetrySink
	logger *slog.Logger
}

// NewMultiSink ignores nil sinks.
func NewMultiSink(logger *slog.Logger, sinks ...portssvc.TelemetrySink) *MultiSink {
	if logger == nil {
		logger = slog.Default()
	}
	m := &MultiSink{logger: logger}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

func (m *MultiSink) Report(ctx context.Context, report domain.FailureReport) {
	for _, s := range m.sinks {
		m.reportOne(ctx, s, report)
	}
}

func (m *MultiSink) reportOne(ctx context.Context, s portssvc.TelemetrySink, report domain.FailureReport) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("Telemetry sink panicked", slog.String("sink", fmt.Sprintf("%T", s)), slog.Any("panic", r))
		}
	}()
	s.Report(ctx, report)
}

// LogSink writes reports to a structured logger at warn level.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Report(ctx context.Context, report domain.FailureReport) {
	attrs := []any{
		slog.String("action", report.Action),
		slog.String("error", report.Error),
		slog.Time("occurred_at", report.OccurredAt),
	}
	if len(report.Context) > 0 {
		attrs = append(attrs, slog.Any("context", report.Context))
	}
	s.logger.WarnContext(ctx, "Conversion failure reported", attrs...)
}
