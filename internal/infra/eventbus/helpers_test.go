package eventbus

import (
	"context"
	"testing"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// openTestDriver opens a private in-memory SQLite database with the outbox table migrated.
func openTestDriver(t *testing.T) *entsql.Driver {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_fk=1"
	drv, err := entsql.Open("sqlite3", dsn)
	require.NoError(t, err)
	drv.DB().SetMaxOpenConns(1)

	m, err := schema.NewMigrate(drv)
	require.NoError(t, err)
	require.NoError(t, m.Create(context.Background(), OutboxTable))

	t.Cleanup(func() { drv.Close() })
	return drv
}

type storedMessage struct {
	uuid        string
	eventName   string
	aggregateID string
}

func storedMessages(t *testing.T, drv *entsql.Driver) []storedMessage {
	t.Helper()

	rows := &entsql.Rows{}
	require.NoError(t, drv.Query(context.Background(),
		"SELECT uuid, event_name, aggregate_id FROM "+OutboxTableName+" ORDER BY id", []any{}, rows))
	defer rows.Close()

	var out []storedMessage
	for rows.Next() {
		var m storedMessage
		require.NoError(t, rows.Scan(&m.uuid, &m.eventName, &m.aggregateID))
		out = append(out, m)
	}
	require.NoError(t, rows.Err())
	return out
}

// countMessages is safe to call from polling assertions.
func countMessages(drv *entsql.Driver) int {
	rows := &entsql.Rows{}
	if err := drv.Query(context.Background(), "SELECT COUNT(*) FROM "+OutboxTableName, []any{}, rows); err != nil {
		return -1
	}
	defer rows.Close()

	n, err := entsql.ScanInt(rows)
	if err != nil {
		return -1
	}
	return n
}
