package domain

import (
	"context"

	"shortlink/internal/domain/event"
)

// UnitOfWork manages database transactions and domain event dispatching.
type UnitOfWork interface {
	// Do executes the given function within a transaction.
	// If the function returns an error, the transaction is rolled back.
	// If successful, domain events from provided aggregates are stored in the outbox.
	Do(ctx context.Context, fn func(ctx context.Context) error, aggregates ...AggregateRoot) error
}

// AggregateRoot is the interface for anything that raises domain events.
type AggregateRoot interface {
	// Events returns all uncommitted domain events.
	Events() []event.Event
	// ClearEvents clears all domain events after dispatch.
	ClearEvents()
}

// Compile-time interface check
var _ AggregateRoot = (*EventRecorder)(nil)

// EventRecorder collects events raised while a unit of work runs.
type EventRecorder struct {
	events []event.Event
}

// Record appends an event.
func (r *EventRecorder) Record(e event.Event) {
	r.events = append(r.events, e)
}

// Events returns all uncommitted domain events.
func (r *EventRecorder) Events() []event.Event {
	return r.events
}

// ClearEvents clears all domain events.
func (r *EventRecorder) ClearEvents() {
	r.events = nil
}
