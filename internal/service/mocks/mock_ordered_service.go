package mocks

import (
	"context"

	"abcip/internal/model"
	"abcip/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockOrderedService[T any] struct {
	mock.Mock
}

func (m *MockOrderedService[T]) List(ctx context.Context, activeOnly bool) ([]T, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockOrderedService[T]) Get(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockOrderedService[T]) Save(ctx context.Context, item *T, image *service.Upload) (*T, error) {
	args := m.Called(ctx, item, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockOrderedService[T]) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderedService[T]) Move(ctx context.Context, id, direction string) error {
	args := m.Called(ctx, id, direction)
	return args.Error(0)
}

type MockAssociateService struct {
	MockOrderedService[model.Associate]
}

func (m *MockAssociateService) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

var (
	_ service.BannerService    = (*MockOrderedService[model.Banner])(nil)
	_ service.AssociateService = (*MockAssociateService)(nil)
)
