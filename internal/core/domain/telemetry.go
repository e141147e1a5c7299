package domain

import "time"

// FailureReport is the structured payload handed to the telemetry sink.
type FailureReport struct {
	Action     string         `json:"action"`
	Error      string         `json:"error"`
	Context    map[string]any `json:"context,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}
