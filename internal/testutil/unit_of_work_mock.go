package testutil

import (
	"context"

	"shortlink/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Compile-time interface check
var _ domain.UnitOfWork = (*MockUnitOfWork)(nil)

// MockUnitOfWork is a testify mock for domain.UnitOfWork.
// Unless an expectation returns an error, fn is run with the caller's context.
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error, aggregates ...domain.AggregateRoot) error {
	args := m.Called(ctx, aggregates)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// PassThroughUnitOfWork runs fn directly and discards events.
type PassThroughUnitOfWork struct{}

func (PassThroughUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error, aggregates ...domain.AggregateRoot) error {
	if err := fn(ctx); err != nil {
		return err
	}
	for _, aggregate := range aggregates {
		aggregate.ClearEvents()
	}
	return nil
}
