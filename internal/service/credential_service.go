package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"docforensics/internal/domain"
	"docforensics/internal/keys"
	"docforensics/internal/port"
)

// CredentialService manages stored per-provider API credentials.
type CredentialService interface {
	// Set stores a credential for a provider. The returned warning is
	// non-empty when the key does not match the provider's expected shape;
	// the key is stored regardless.
	Set(ctx context.Context, provider domain.Provider, value string) (string, error)
	Clear(ctx context.Context, provider domain.Provider) error
}

type credentialService struct {
	store port.CredentialStore
}

// NewCredentialService creates a new CredentialService.
func NewCredentialService(store port.CredentialStore) CredentialService {
	return &credentialService{store: store}
}

func (s *credentialService) Set(ctx context.Context, provider domain.Provider, value string) (string, error) {
	if _, ok := domain.KnownProviders[provider]; !ok {
		return "", domain.ErrUnsupportedProvider
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: empty credential", domain.ErrMissingCredential)
	}

	warning := ""
	if !keys.WellFormed(provider, value) {
		warning = fmt.Sprintf("credential does not match the expected format for %s", provider)
		zap.L().Warn("credentialService.Set: storing malformed-looking credential",
			zap.String("provider", string(provider)))
	}

	if err := s.store.Set(ctx, provider, value); err != nil {
		return "", err
	}
	return warning, nil
}

func (s *credentialService) Clear(ctx context.Context, provider domain.Provider) error {
	if _, ok := domain.KnownProviders[provider]; !ok {
		return domain.ErrUnsupportedProvider
	}
	return s.store.Clear(ctx, provider)
}
