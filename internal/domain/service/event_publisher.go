package service

import (
	"context"
)

// InteractionEvent announces that a demo interaction was recorded.
type InteractionEvent struct {
	EventID       string `json:"event_id"`
	RequestID     string `json:"request_id,omitempty"` // For distributed tracing
	InteractionID int64  `json:"interaction_id"`
	UserID        int64  `json:"user_id"`
	Channel       string `json:"channel"`
	Content       string `json:"content"`
	OccurredAt    string `json:"occurred_at"` // RFC 3339
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishInteractionEvent publishes an interaction event to the audit sink.
	PublishInteractionEvent(ctx context.Context, event *InteractionEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
