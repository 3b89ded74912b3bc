package eventbus

import (
	"context"
	"time"

	"shortlink/internal/domain/event"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
	"github.com/ThreeDotsLabs/watermill/message"
)

// OutboxTableName is the table events are staged in until forwarded.
const OutboxTableName = "outbox_messages"

var (
	// OutboxColumns holds the columns for the "outbox_messages" table.
	OutboxColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "uuid", Type: field.TypeString, Unique: true, Size: 36},
		{Name: "event_name", Type: field.TypeString, Size: 64},
		{Name: "aggregate_id", Type: field.TypeString, Size: 64},
		{Name: "payload", Type: field.TypeBytes},
		{Name: "created_at", Type: field.TypeTime},
	}
	// OutboxTable holds the schema information for the "outbox_messages" table.
	OutboxTable = &schema.Table{
		Name:       OutboxTableName,
		Columns:    OutboxColumns,
		PrimaryKey: []*schema.Column{OutboxColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "outboxmessage_created_at",
				Unique:  false,
				Columns: []*schema.Column{OutboxColumns[5]},
			},
		},
	}
)

// OutboxPublisher stages events in the outbox table within a transaction.
type OutboxPublisher struct {
	dialect string
}

// NewOutboxPublisher creates a new outbox publisher for the driver's SQL dialect.
func NewOutboxPublisher(drv *entsql.Driver) *OutboxPublisher {
	return &OutboxPublisher{dialect: drv.Dialect()}
}

// PublishInTx stores events in the outbox table using the provided transaction.
func (p *OutboxPublisher) PublishInTx(ctx context.Context, tx dialect.ExecQuerier, events []event.Event) error {
	for _, e := range events {
		msg, err := EventToMessage(e)
		if err != nil {
			return err
		}
		if err := p.storeMessage(ctx, tx, msg); err != nil {
			return err
		}
	}
	return nil
}

func (p *OutboxPublisher) storeMessage(ctx context.Context, tx dialect.ExecQuerier, msg *message.Message) error {
	query, args := entsql.Dialect(p.dialect).
		Insert(OutboxTableName).
		Columns("uuid", "event_name", "aggregate_id", "payload", "created_at").
		Values(
			msg.UUID,
			msg.Metadata.Get(metadataEventName),
			msg.Metadata.Get(metadataAggregateID),
			[]byte(msg.Payload),
			time.Now().UTC(),
		).
		Query()

	return tx.Exec(ctx, query, args, nil)
}
