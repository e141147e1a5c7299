package telemetry

import (
	"context"

	"github.com/SscSPs/budget_engine/internal/core/domain"
)

// FailureEvent is the PostHog event name used for failure reports.
const FailureEvent = "conversion_failure"

// Enqueuer is the part of utils.PosthogClientWrapper the sink needs.
type Enqueuer interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

// PosthogSink forwards failure reports as PostHog events. Events are attributed to the
// scenario when the report carries one, otherwise to distinctID.
type PosthogSink struct {
	client     Enqueuer
	distinctID string
}

func NewPosthogSink(client Enqueuer, distinctID string) *PosthogSink {
	return &PosthogSink{client: client, distinctID: distinctID}
}

func (s *PosthogSink) Report(_ context.Context, report domain.FailureReport) {
	props := make(map[string]any, len(report.Context)+3)
	for k, v := range report.Context {
		props[k] = v
	}
	props["action"] = report.Action
	props["error"] = report.Error
	props["occurred_at"] = report.OccurredAt

	id := s.distinctID
	if scenarioID, ok := report.Context["scenario_id"].(string); ok && scenarioID != "" {
		id = scenarioID
	}
	s.client.Enqueue(id, FailureEvent, props)
}
