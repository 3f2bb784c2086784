package mocks

import (
	"context"
	"io"
	"strings"
	"time"

	"abcip/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockBaseURL is the public prefix used by MockStorage.PublicURL.
const MockBaseURL = "https://cdn.test/media"

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Put(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	args := m.Called(ctx, key, r, opt)
	if f, ok := args.Get(0).(func(context.Context, string, io.Reader, storage.PutObjectOptions) storage.ObjectInfo); ok {
		return f(ctx, key, r, opt), args.Error(1)
	}
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorage) PublicURL(key string) string {
	return storage.JoinURL(MockBaseURL, key)
}

func (m *MockStorage) KeyFromURL(u string) (string, bool) {
	if !strings.HasPrefix(u, MockBaseURL) {
		return "", false
	}
	return storage.KeyFromURL(MockBaseURL, u)
}

func (m *MockStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}
