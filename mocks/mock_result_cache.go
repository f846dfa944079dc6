package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"docforensics/internal/domain"
)

// MockResultCache is a mock implementation of port.ResultCache.
type MockResultCache struct {
	mock.Mock
}

func (m *MockResultCache) GetResult(ctx context.Context, key string) (*domain.AnalysisResult, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Bool(1), args.Error(2)
}

func (m *MockResultCache) SetResult(ctx context.Context, key string, result *domain.AnalysisResult, ttl time.Duration) error {
	args := m.Called(ctx, key, result, ttl)
	return args.Error(0)
}

func (m *MockResultCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
