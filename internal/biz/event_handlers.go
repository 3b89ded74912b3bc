package biz

import (
	"context"
	"encoding/json"

	"shortlink/internal/domain/event"
	"shortlink/internal/infra/eventbus"

	"github.com/go-kratos/kratos/v2/log"
)

// Compile-time interface check
var _ eventbus.EventHandler = (*AuditEventHandler)(nil)

// AuditEventHandler writes an audit log line for every mapping lifecycle event.
type AuditEventHandler struct {
	log       *log.Helper
	eventName string
}

// NewAuditEventHandler creates a new audit handler for one event name.
func NewAuditEventHandler(logger log.Logger, eventName string) *AuditEventHandler {
	return &AuditEventHandler{
		log:       log.NewHelper(log.With(logger, "module", "biz/audit")),
		eventName: eventName,
	}
}

func (h *AuditEventHandler) HandlerName() string {
	return "audit_handler_" + h.eventName
}

func (h *AuditEventHandler) EventName() string {
	return h.eventName
}

// Handle logs the event details. Undecodable payloads are logged and dropped.
func (h *AuditEventHandler) Handle(ctx context.Context, envelope *eventbus.EventEnvelope) error {
	switch envelope.EventName {
	case event.MappingCreatedName:
		var evt event.MappingCreated
		if err := json.Unmarshal(envelope.Payload, &evt); err != nil {
			h.log.WithContext(ctx).Warnf("failed to unmarshal %s event %s: %v", envelope.EventName, envelope.EventID, err)
			return nil
		}
		h.log.WithContext(ctx).Infow(
			"event", envelope.EventName,
			"event_id", envelope.EventID,
			"alias", evt.Alias,
			"full_url", evt.FullURL,
			"short_url", evt.ShortURL,
		)
	case event.MappingDeletedName:
		var evt event.MappingDeleted
		if err := json.Unmarshal(envelope.Payload, &evt); err != nil {
			h.log.WithContext(ctx).Warnf("failed to unmarshal %s event %s: %v", envelope.EventName, envelope.EventID, err)
			return nil
		}
		h.log.WithContext(ctx).Infow(
			"event", envelope.EventName,
			"event_id", envelope.EventID,
			"alias", evt.Alias,
		)
	default:
		h.log.WithContext(ctx).Infof("[Event] %s: %s", envelope.EventName, envelope.AggregateID)
	}
	return nil
}

// RegisterEventHandlers registers the audit handlers with the router.
func RegisterEventHandlers(router *eventbus.Router, logger log.Logger) {
	for _, eventName := range []string{event.MappingCreatedName, event.MappingDeletedName} {
		router.AddHandler(NewAuditEventHandler(logger, eventName))
	}
}
