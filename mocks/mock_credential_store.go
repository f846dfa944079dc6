package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docforensics/internal/domain"
)

// MockCredentialStore is a mock implementation of port.CredentialStore.
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) Get(ctx context.Context, provider domain.Provider) (string, bool, error) {
	args := m.Called(ctx, provider)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCredentialStore) Set(ctx context.Context, provider domain.Provider, value string) error {
	args := m.Called(ctx, provider, value)
	return args.Error(0)
}

func (m *MockCredentialStore) Clear(ctx context.Context, provider domain.Provider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}
