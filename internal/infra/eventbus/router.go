package eventbus

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventHandler handles events from the event bus.
type EventHandler interface {
	// HandlerName returns the name of the handler. It must be unique per router.
	HandlerName() string
	// EventName returns the event name this handler handles.
	EventName() string
	// Handle processes the event envelope.
	Handle(ctx context.Context, envelope *EventEnvelope) error
}

// Router routes messages to event handlers.
type Router struct {
	router   *message.Router
	eventBus *EventBus
	logger   watermill.LoggerAdapter
}

// NewRouter creates a new event router.
func NewRouter(eventBus *EventBus, logger watermill.LoggerAdapter) (*Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return nil, err
	}

	return &Router{
		router:   router,
		eventBus: eventBus,
		logger:   logger,
	}, nil
}

// AddHandler registers an event handler. Handlers must be added before Run.
func (r *Router) AddHandler(handler EventHandler) {
	r.router.AddNoPublisherHandler(
		handler.HandlerName(),
		MappingEventsTopic,
		r.eventBus.Subscriber(),
		r.handlerFunc(handler),
	)
}

func (r *Router) handlerFunc(handler EventHandler) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		// Messages carry the event name in metadata, so foreign events are skipped undecoded.
		if name := msg.Metadata.Get(metadataEventName); name != "" && name != handler.EventName() {
			return nil
		}

		envelope, err := MessageToEnvelope(msg)
		if err != nil {
			r.logger.Error("failed to parse message", err, watermill.LogFields{"uuid": msg.UUID})
			return nil
		}
		if envelope.EventName != handler.EventName() {
			return nil
		}

		if err := handler.Handle(msg.Context(), envelope); err != nil {
			r.logger.Error("failed to handle event", err, watermill.LogFields{
				"handler":    handler.HandlerName(),
				"event_name": envelope.EventName,
				"event_id":   envelope.EventID,
			})
			return err
		}
		return nil
	}
}

// Run starts the router and blocks until ctx is done or Close is called.
func (r *Router) Run(ctx context.Context) error {
	return r.router.Run(ctx)
}

// Running returns a channel that is closed when the router is running.
func (r *Router) Running() chan struct{} {
	return r.router.Running()
}

// Close stops the router.
func (r *Router) Close() error {
	return r.router.Close()
}
