package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"shortlink/internal/domain/event"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	// MappingEventsTopic is the topic for all mapping lifecycle events.
	MappingEventsTopic = "mapping.events"

	metadataEventName   = "event_name"
	metadataAggregateID = "aggregate_id"
)

// EventBus wraps Watermill pub/sub for domain events.
type EventBus struct {
	pubsub *gochannel.GoChannel
	logger watermill.LoggerAdapter
}

// NewEventBus creates a new in-process event bus backed by Go channels.
func NewEventBus(logger watermill.LoggerAdapter) *EventBus {
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 100,
			Persistent:          false,
		},
		logger,
	)

	return &EventBus{
		pubsub: pubsub,
		logger: logger,
	}
}

// Publisher returns the Watermill publisher.
func (b *EventBus) Publisher() message.Publisher {
	return b.pubsub
}

// Subscriber returns the Watermill subscriber.
func (b *EventBus) Subscriber() message.Subscriber {
	return b.pubsub
}

// Publish publishes a domain event directly, bypassing the outbox.
func (b *EventBus) Publish(ctx context.Context, e event.Event) error {
	msg, err := EventToMessage(e)
	if err != nil {
		return err
	}
	msg.SetContext(ctx)
	return b.pubsub.Publish(MappingEventsTopic, msg)
}

// Close closes the event bus.
func (b *EventBus) Close() error {
	return b.pubsub.Close()
}

// EventEnvelope wraps a domain event for serialization.
type EventEnvelope struct {
	EventID     string          `json:"event_id"`
	EventName   string          `json:"event_name"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// EventToMessage converts a domain event to a Watermill message.
func EventToMessage(e event.Event) (*message.Message, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(EventEnvelope{
		EventID:     e.EventID(),
		EventName:   e.EventName(),
		AggregateID: e.AggregateID(),
		OccurredAt:  e.OccurredAt(),
		Payload:     payload,
	})
	if err != nil {
		return nil, err
	}

	msg := message.NewMessage(e.EventID(), data)
	msg.Metadata.Set(metadataEventName, e.EventName())
	msg.Metadata.Set(metadataAggregateID, e.AggregateID())

	return msg, nil
}

// MessageToEnvelope extracts the event envelope from a Watermill message.
func MessageToEnvelope(msg *message.Message) (*EventEnvelope, error) {
	var envelope EventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}
