package data

import (
	"context"

	"shortlink/internal/domain"
	"shortlink/internal/domain/event"
	"shortlink/internal/infra/eventbus"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/go-kratos/kratos/v2/log"
)

// Compile-time interface check
var _ domain.UnitOfWork = (*unitOfWork)(nil)

type txKey struct{}

// unitOfWork implements domain.UnitOfWork with transaction support and outbox pattern.
type unitOfWork struct {
	db     *entsql.Driver
	outbox *eventbus.OutboxPublisher
	log    *log.Helper
}

// NewUnitOfWork creates a new UnitOfWork.
func NewUnitOfWork(data *Data, outbox *eventbus.OutboxPublisher, logger log.Logger) domain.UnitOfWork {
	return &unitOfWork{
		db:     data.db,
		outbox: outbox,
		log:    log.NewHelper(logger),
	}
}

// Do executes fn within a database transaction.
// Events recorded by the aggregates are stored in the outbox table within the same transaction.
func (u *unitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error, aggregates ...domain.AggregateRoot) error {
	tx, err := u.db.Tx(ctx)
	if err != nil {
		return domain.StorageError(err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		u.rollback(ctx, tx)
		return err
	}

	if err := u.storeEventsInOutbox(txCtx, tx, aggregates); err != nil {
		u.rollback(ctx, tx)
		return domain.StorageError(err)
	}

	if err := tx.Commit(); err != nil {
		return domain.StorageError(err)
	}

	for _, aggregate := range aggregates {
		aggregate.ClearEvents()
	}

	return nil
}

func (u *unitOfWork) rollback(ctx context.Context, tx dialect.Tx) {
	if err := tx.Rollback(); err != nil {
		u.log.WithContext(ctx).Errorf("rollback failed: %v", err)
	}
}

func (u *unitOfWork) storeEventsInOutbox(ctx context.Context, tx dialect.Tx, aggregates []domain.AggregateRoot) error {
	var events []event.Event
	for _, aggregate := range aggregates {
		events = append(events, aggregate.Events()...)
	}

	if len(events) == 0 {
		return nil
	}

	return u.outbox.PublishInTx(ctx, tx, events)
}

// TxFromContext retrieves the transaction from context.
func TxFromContext(ctx context.Context) dialect.Tx {
	tx, _ := ctx.Value(txKey{}).(dialect.Tx)
	return tx
}
