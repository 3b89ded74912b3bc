package eventbus

import (
	entsql "entgo.io/ent/dialect/sql"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet is eventbus providers.
var ProviderSet = wire.NewSet(
	NewKratosLoggerAdapter,
	NewEventBus,
	NewRouter,
	NewOutboxPublisher,
	ProvideForwarder,
)

// ProvideForwarder creates a Forwarder publishing onto the event bus.
func ProvideForwarder(db *entsql.Driver, eventBus *EventBus, logger log.Logger) *Forwarder {
	return NewForwarder(db, eventBus.Publisher(), NewKratosLoggerAdapter(logger))
}
