// internal/events/types.go
package events

import (
	"time"
)

// EventType represents the type of event.
type EventType string

const (
	BatchStarted   EventType = "batch.started"
	BatchCompleted EventType = "batch.completed"
	RunCompleted   EventType = "run.completed"
)

// Event is the base interface for all events.
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	EventType EventType
	EventTime time.Time
}

// Type returns the event type.
func (e BaseEvent) Type() EventType {
	return e.EventType
}

// Timestamp returns when the event occurred.
func (e BaseEvent) Timestamp() time.Time {
	return e.EventTime
}

// BatchStartedEvent is emitted before the first trial of a batch.
type BatchStartedEvent struct {
	BaseEvent
	Batch  int
	Trials int
}

// BatchCompletedEvent carries the counts of a finished batch.
type BatchCompletedEvent struct {
	BaseEvent
	Batch    int
	Trials   int
	Wins     int
	Losses   int
	Duration time.Duration
}

// RunCompletedEvent is emitted once every batch has been reported.
type RunCompletedEvent struct {
	BaseEvent
	Batches  int
	Wins     int
	Losses   int
	Seed     uint64
	Duration time.Duration
	Err      error
}

// NewBase stamps an event with its type and the current time.
func NewBase(t EventType) BaseEvent {
	return BaseEvent{EventType: t, EventTime: time.Now()}
}
