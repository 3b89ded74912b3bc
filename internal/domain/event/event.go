package event

import (
	"time"

	"github.com/google/uuid"
)

// Names under which mapping events travel on the bus and in the outbox.
const (
	MappingCreatedName = "mapping.created"
	MappingDeletedName = "mapping.deleted"
)

// Event is a fact about a mapping, recorded by an aggregate and stored in the outbox.
type Event interface {
	EventID() string
	EventName() string
	OccurredAt() time.Time
	// AggregateID is the alias of the mapping the event is about.
	AggregateID() string
}

// Header identifies one occurrence of an event. Concrete events embed it
// and add their name and payload fields.
type Header struct {
	ID        string    `json:"event_id"`
	At        time.Time `json:"occurred_at"`
	Aggregate string    `json:"aggregate_id"`
}

// NewHeader stamps a header for alias with a time-ordered v7 id and the current UTC time.
func NewHeader(alias string) Header {
	return Header{
		ID:        uuid.Must(uuid.NewV7()).String(),
		At:        time.Now().UTC(),
		Aggregate: alias,
	}
}

func (h Header) EventID() string { return h.ID }

func (h Header) OccurredAt() time.Time { return h.At }

func (h Header) AggregateID() string { return h.Aggregate }
