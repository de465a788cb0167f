// Package events publishes audit events to a message broker.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// AuditEvent describes one recorded user operation.
type AuditEvent struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Changes      string    `json:"changes,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// ToJSON converts the event to JSON bytes
func (e *AuditEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// AuditEventFromJSON decodes an event published by ToJSON.
func AuditEventFromJSON(data []byte) (*AuditEvent, error) {
	var e AuditEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Publisher sends audit events somewhere outside the process.
type Publisher interface {
	Publish(ctx context.Context, event *AuditEvent) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *AuditEvent) error { return nil }
func (NopPublisher) Close() error                               { return nil }
