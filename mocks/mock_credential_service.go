package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docforensics/internal/domain"
)

// MockCredentialService is a mock implementation of service.CredentialService.
type MockCredentialService struct {
	mock.Mock
}

func (m *MockCredentialService) Set(ctx context.Context, provider domain.Provider, value string) (string, error) {
	args := m.Called(ctx, provider, value)
	return args.String(0), args.Error(1)
}

func (m *MockCredentialService) Clear(ctx context.Context, provider domain.Provider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}
