// Package audit captures structured audit events for assessment activity.
// Domain services emit events; sinks (memory store, Kafka) fan them out.
package audit

import (
	"context"
	"time"
)

// Action names the audited operation.
type Action string

const (
	ActionAssessmentCreated Action = "assessment.created"
	ActionAssessmentDeleted Action = "assessment.deleted"
)

// Event is one audit record. Keep it transport-agnostic so stores and sinks
// can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Subject   string    `json:"subject"`
	Action    Action    `json:"action"`
	Outcome   string    `json:"outcome"`
	Detail    string    `json:"detail,omitempty"`
}

// Store is the append-only persistence port for events.
type Store interface {
	Append(ctx context.Context, e Event) error
	Recent(ctx context.Context, limit int) ([]Event, error)
}
