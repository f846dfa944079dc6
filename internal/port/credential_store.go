package port

import (
	"context"

	"docforensics/internal/domain"
)

// CredentialStore is the persistence collaborator for session-scoped provider
// credentials. Implementations obfuscate stored values; callers pass and
// receive plaintext. The obfuscation is a deterrent, not encryption.
type CredentialStore interface {
	Get(ctx context.Context, provider domain.Provider) (string, bool, error)
	Set(ctx context.Context, provider domain.Provider, value string) error
	Clear(ctx context.Context, provider domain.Provider) error
}
