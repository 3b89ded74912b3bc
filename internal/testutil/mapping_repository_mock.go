package testutil

import (
	"context"

	"shortlink/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Compile-time interface check
var _ domain.MappingRepository = (*MockMappingRepository)(nil)

// MockMappingRepository is a testify mock for domain.MappingRepository.
type MockMappingRepository struct {
	mock.Mock
}

func (m *MockMappingRepository) Exists(ctx context.Context, alias string) (bool, error) {
	args := m.Called(ctx, alias)
	return args.Bool(0), args.Error(1)
}

func (m *MockMappingRepository) Save(ctx context.Context, mapping *domain.Mapping) (*domain.Mapping, error) {
	args := m.Called(ctx, mapping)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mapping), args.Error(1)
}

func (m *MockMappingRepository) Find(ctx context.Context, alias string) (*domain.Mapping, error) {
	args := m.Called(ctx, alias)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mapping), args.Error(1)
}

func (m *MockMappingRepository) Delete(ctx context.Context, alias string) error {
	args := m.Called(ctx, alias)
	return args.Error(0)
}

func (m *MockMappingRepository) ListAll(ctx context.Context) ([]*domain.Mapping, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Mapping), args.Error(1)
}
