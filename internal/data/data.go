package data

import (
	"context"
	"database/sql"
	"fmt"

	"shortlink/internal/conf"
	"shortlink/internal/infra/eventbus"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(
	NewData,
	NewMappingRepo,
	NewMappingCache,
	NewCachedMappingRepository,
	NewUnitOfWork,
	NewCacheInvalidationHandler,
	ProvideDriver,
)

// Data .
type Data struct {
	db  *entsql.Driver
	rdb *redis.Client
}

// NewData opens the database, migrates the schema and connects the optional Redis cache.
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)

	drv, err := OpenDriver(c.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := Migrate(context.Background(), drv); err != nil {
		drv.Close()
		return nil, nil, err
	}

	d := &Data{db: drv}
	if c.Redis != nil && c.Redis.Addr != "" {
		d.rdb = redis.NewClient(&redis.Options{
			Addr:         c.Redis.Addr,
			Password:     c.Redis.Password,
			DB:           c.Redis.DB,
			ReadTimeout:  c.Redis.ReadTimeout.AsDuration(),
			WriteTimeout: c.Redis.WriteTimeout.AsDuration(),
		})
		if err := d.rdb.Ping(context.Background()).Err(); err != nil {
			helper.Warnf("redis unavailable at %s, cache reads will miss: %v", c.Redis.Addr, err)
		}
	}

	cleanup := func() {
		helper.Info("message", "closing the data resources")
		if d.rdb != nil {
			if err := d.rdb.Close(); err != nil {
				helper.Error(err)
			}
		}
		if err := d.db.Close(); err != nil {
			helper.Error(err)
		}
	}

	return d, cleanup, nil
}

// ProvideDriver exposes the SQL driver to the outbox components.
func ProvideDriver(d *Data) *entsql.Driver {
	return d.db
}

// OpenDriver opens a SQL driver for one of the supported drivers.
// "sqlite" selects the pure-Go modernc driver, which speaks the sqlite3 dialect.
func OpenDriver(c *conf.Data_Database) (*entsql.Driver, error) {
	switch c.Driver {
	case dialect.Postgres, dialect.SQLite:
		return entsql.Open(c.Driver, c.Source)
	case "sqlite":
		db, err := sql.Open("sqlite", c.Source)
		if err != nil {
			return nil, err
		}
		return entsql.OpenDB(dialect.SQLite, db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// Migrate creates or updates the mapping and outbox tables.
func Migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("failed creating schema resources: %w", err)
	}
	return nil
}

// Tables lists every table this service owns.
var Tables = []*schema.Table{
	MappingsTable,
	eventbus.OutboxTable,
}
