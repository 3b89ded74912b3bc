package eventbus

import (
	"context"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const (
	defaultPollInterval = 100 * time.Millisecond
	defaultBatchSize    = 100
)

// Forwarder reads messages from the outbox table and forwards them to the event bus.
type Forwarder struct {
	db           *entsql.Driver
	publisher    message.Publisher
	topic        string
	pollInterval time.Duration
	batchSize    int
	logger       watermill.LoggerAdapter

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type outboxRow struct {
	id          int64
	uuid        string
	eventName   string
	aggregateID string
	payload     []byte
}

// NewForwarder creates a new outbox forwarder.
func NewForwarder(
	db *entsql.Driver,
	publisher message.Publisher,
	logger watermill.LoggerAdapter,
) *Forwarder {
	return &Forwarder{
		db:           db,
		publisher:    publisher,
		topic:        MappingEventsTopic,
		pollInterval: defaultPollInterval,
		batchSize:    defaultBatchSize,
		logger:       logger,
	}
}

// Start begins forwarding messages from the outbox.
func (f *Forwarder) Start(ctx context.Context) {
	f.ctx, f.cancel = context.WithCancel(ctx)
	f.wg.Add(1)
	go f.run()
	f.logger.Info("outbox forwarder started", nil)
}

// Stop stops the forwarder gracefully.
func (f *Forwarder) Stop() {
	if f.cancel == nil {
		return
	}
	f.cancel()
	f.wg.Wait()
	f.logger.Info("outbox forwarder stopped", nil)
}

func (f *Forwarder) run() {
	defer f.wg.Done()

	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-f.ctx.Done():
			return
		case <-ticker.C:
			f.forwardBatch()
		}
	}
}

func (f *Forwarder) forwardBatch() {
	batch, err := f.pending(f.ctx)
	if err != nil {
		f.logger.Error("failed to query outbox messages", err, nil)
		return
	}

	for _, row := range batch {
		if err := f.forwardMessage(row); err != nil {
			f.logger.Error("failed to forward message", err, watermill.LogFields{"uuid": row.uuid})
			continue
		}

		query, args := entsql.Dialect(f.db.Dialect()).
			Delete(OutboxTableName).
			Where(entsql.EQ("id", row.id)).
			Query()
		if err := f.db.Exec(f.ctx, query, args, nil); err != nil {
			f.logger.Error("failed to delete outbox message", err, watermill.LogFields{"uuid": row.uuid})
		}
	}
}

func (f *Forwarder) pending(ctx context.Context) ([]outboxRow, error) {
	query, args := entsql.Dialect(f.db.Dialect()).
		Select("id", "uuid", "event_name", "aggregate_id", "payload").
		From(entsql.Table(OutboxTableName)).
		OrderBy("id").
		Limit(f.batchSize).
		Query()

	rows := &entsql.Rows{}
	if err := f.db.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var batch []outboxRow
	for rows.Next() {
		var r outboxRow
		if err := rows.Scan(&r.id, &r.uuid, &r.eventName, &r.aggregateID, &r.payload); err != nil {
			return nil, err
		}
		batch = append(batch, r)
	}
	return batch, rows.Err()
}

func (f *Forwarder) forwardMessage(row outboxRow) error {
	msg := message.NewMessage(row.uuid, row.payload)
	msg.Metadata.Set(metadataEventName, row.eventName)
	msg.Metadata.Set(metadataAggregateID, row.aggregateID)

	if err := f.publisher.Publish(f.topic, msg); err != nil {
		return err
	}

	f.logger.Debug("forwarded message", watermill.LogFields{
		"uuid":       row.uuid,
		"event_name": row.eventName,
	})
	return nil
}
