package data

import (
	"context"
	stdsql "database/sql"

	"shortlink/internal/domain"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"github.com/go-kratos/kratos/v2/log"
)

// Compile-time interface check
var _ domain.MappingRepository = (*MappingRepo)(nil)

// MappingRepo implements domain.MappingRepository on top of the ent SQL driver.
type MappingRepo struct {
	data *Data
	log  *log.Helper
}

// NewMappingRepo creates a new mapping repository.
func NewMappingRepo(data *Data, logger log.Logger) *MappingRepo {
	return &MappingRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// conn returns the transaction bound to ctx, otherwise the driver itself.
func (r *MappingRepo) conn(ctx context.Context) dialect.ExecQuerier {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.data.db
}

func (r *MappingRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(r.data.db.Dialect())
}

// Exists checks if an alias is already stored.
func (r *MappingRepo) Exists(ctx context.Context, alias string) (bool, error) {
	query, args := r.builder().
		Select(entsql.Count("*")).
		From(entsql.Table(MappingsTableName)).
		Where(entsql.EQ(columnAlias, alias)).
		Query()

	rows := &entsql.Rows{}
	if err := r.conn(ctx).Query(ctx, query, args, rows); err != nil {
		return false, err
	}
	defer rows.Close()

	n, err := entsql.ScanInt(rows)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Save inserts a mapping. An alias unique violation is reported as domain.ErrAliasTaken.
func (r *MappingRepo) Save(ctx context.Context, m *domain.Mapping) (*domain.Mapping, error) {
	query, args := r.builder().
		Insert(MappingsTableName).
		Columns(mappingColumns...).
		Values(m.Alias, m.FullURL, m.ShortURL, m.CreatedAt).
		Query()

	if err := r.conn(ctx).Exec(ctx, query, args, nil); err != nil {
		if sqlgraph.IsUniqueConstraintError(err) {
			return nil, domain.ErrAliasTaken.WithCause(err)
		}
		return nil, err
	}

	saved := *m
	return &saved, nil
}

// Find retrieves a mapping by alias. It returns nil, nil when the alias is absent.
func (r *MappingRepo) Find(ctx context.Context, alias string) (*domain.Mapping, error) {
	query, args := r.builder().
		Select(mappingColumns...).
		From(entsql.Table(MappingsTableName)).
		Where(entsql.EQ(columnAlias, alias)).
		Query()

	mappings, err := r.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(mappings) == 0 {
		return nil, nil
	}
	return mappings[0], nil
}

// Delete removes a mapping by alias.
func (r *MappingRepo) Delete(ctx context.Context, alias string) error {
	query, args := r.builder().
		Delete(MappingsTableName).
		Where(entsql.EQ(columnAlias, alias)).
		Query()

	var res stdsql.Result
	if err := r.conn(ctx).Exec(ctx, query, args, &res); err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrAliasNotFound
	}
	return nil
}

// ListAll returns every mapping, newest first.
func (r *MappingRepo) ListAll(ctx context.Context) ([]*domain.Mapping, error) {
	query, args := r.builder().
		Select(mappingColumns...).
		From(entsql.Table(MappingsTableName)).
		OrderBy(entsql.Desc(columnCreatedAt), entsql.Desc(columnID)).
		Query()

	return r.query(ctx, query, args)
}

func (r *MappingRepo) query(ctx context.Context, query string, args []any) ([]*domain.Mapping, error) {
	rows := &entsql.Rows{}
	if err := r.conn(ctx).Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	mappings := make([]*domain.Mapping, 0)
	for rows.Next() {
		m := &domain.Mapping{}
		if err := rows.Scan(&m.Alias, &m.FullURL, &m.ShortURL, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.CreatedAt = m.CreatedAt.UTC()
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}
