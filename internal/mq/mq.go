// Package mq provides a broker-agnostic event bus used to announce
// class-schedule changes to downstream consumers (notification senders,
// calendar sync jobs). Backends exist for RabbitMQ and Google Pub/Sub.
package mq

import (
	"context"
	"encoding/json"
	"time"
)

// ScheduleChannel is the channel all schedule events are published on.
const ScheduleChannel = "schedule-events"

// Schedule event types.
const (
	EventSessionCreated = "session.created"
	EventSessionUpdated = "session.updated"
	EventSessionDeleted = "session.deleted"
)

// ScheduleEvent is the payload published when the class schedule changes.
type ScheduleEvent struct {
	Type      string    `json:"type"`
	SessionID int       `json:"session_id"`
	TrainerID int       `json:"trainer_id"`
	Title     string    `json:"title"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	EmittedAt time.Time `json:"emitted_at"`
}

// Message represents a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes a message. Return an error to signal a retry/nack.
type Handler func(ctx context.Context, msg Message) error

// Backend defines the broker-agnostic operations used by the app.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}

// Bus wraps a backend with a stable API. A nil *Bus is a no-op
// publisher, so callers need not branch on whether a broker is
// configured.
type Bus struct {
	backend Backend
}

// NewBus constructs a Bus for the provided backend.
func NewBus(backend Backend) *Bus {
	return &Bus{backend: backend}
}

// PublishScheduleEvent serializes the event and publishes it on the
// schedule channel. A nil bus drops the event silently.
func (b *Bus) PublishScheduleEvent(ctx context.Context, event ScheduleEvent) (string, error) {
	if b == nil || b.backend == nil {
		return "", nil
	}
	if event.EmittedAt.IsZero() {
		event.EmittedAt = time.Now()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return b.backend.Publish(ctx, ScheduleChannel, data, map[string]string{"type": event.Type})
}

// Subscribe consumes messages from the named channel.
func (b *Bus) Subscribe(ctx context.Context, channel string, handler Handler) error {
	if b == nil || b.backend == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	return b.backend.Subscribe(ctx, channel, handler)
}

// Close closes the underlying backend.
func (b *Bus) Close() error {
	if b == nil || b.backend == nil {
		return nil
	}
	return b.backend.Close()
}
