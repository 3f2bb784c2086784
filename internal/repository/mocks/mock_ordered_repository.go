package mocks

import (
	"context"

	"abcip/internal/model"
	"abcip/internal/ordering"
	"abcip/internal/repository"
	"github.com/stretchr/testify/mock"
)

// MockOrderedRepository mocks repository.OrderedRepository for any record type.
type MockOrderedRepository[T any] struct {
	mock.Mock
}

func (m *MockOrderedRepository[T]) Create(ctx context.Context, item *T) (*T, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockOrderedRepository[T]) Update(ctx context.Context, item *T) (*T, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockOrderedRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockOrderedRepository[T]) List(ctx context.Context, activeOnly bool) ([]T, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockOrderedRepository[T]) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderedRepository[T]) Move(ctx context.Context, id string, dir ordering.Direction) error {
	args := m.Called(ctx, id, dir)
	return args.Error(0)
}

func (m *MockOrderedRepository[T]) NextOrder(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockAssociateRepository struct {
	MockOrderedRepository[model.Associate]
}

func (m *MockAssociateRepository) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssociateRepository) Search(ctx context.Context, q string, limit int) ([]model.Associate, error) {
	args := m.Called(ctx, q, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Associate), args.Error(1)
}

var (
	_ repository.BannerRepository    = (*MockOrderedRepository[model.Banner])(nil)
	_ repository.AssociateRepository = (*MockAssociateRepository)(nil)
)
