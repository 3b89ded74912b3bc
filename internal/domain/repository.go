package domain

import (
	"context"
)

// MappingRepository defines the storage operations the orchestrator relies on.
// This interface is defined in the domain layer and implemented in the data layer.
type MappingRepository interface {
	// Exists reports whether a mapping with the alias is stored.
	Exists(ctx context.Context, alias string) (bool, error)

	// Save inserts a new mapping. It never overwrites: a violated alias
	// unique constraint is reported as ErrAliasTaken.
	Save(ctx context.Context, m *Mapping) (*Mapping, error)

	// Find retrieves a mapping by alias.
	// Returns nil if not found.
	Find(ctx context.Context, alias string) (*Mapping, error)

	// Delete removes a mapping by alias. Returns ErrAliasNotFound when nothing was deleted.
	Delete(ctx context.Context, alias string) error

	// ListAll returns every stored mapping.
	ListAll(ctx context.Context) ([]*Mapping, error)
}
