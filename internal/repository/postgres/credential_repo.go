package postgres

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"docforensics/internal/domain"
	"docforensics/internal/port"
)

// obfuscationPad is XORed over credential bytes before base64 encoding.
// Obfuscation only, not encryption: it keeps keys out of casual table dumps
// and nothing more.
var obfuscationPad = []byte("docforensics-credential-pad")

type credentialRepo struct {
	db *sqlx.DB
}

// NewCredentialRepo creates a new PostgreSQL-backed CredentialStore.
func NewCredentialRepo(db *sqlx.DB) port.CredentialStore {
	return &credentialRepo{db: db}
}

func (r *credentialRepo) Get(ctx context.Context, provider domain.Provider) (string, bool, error) {
	var stored string
	err := r.db.GetContext(ctx, &stored,
		"SELECT value FROM provider_credentials WHERE provider = $1", provider)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("credentialRepo.Get: %w", err)
	}

	value, err := deobfuscate(stored)
	if err != nil {
		return "", false, fmt.Errorf("credentialRepo.Get decode: %w", err)
	}
	return value, true, nil
}

func (r *credentialRepo) Set(ctx context.Context, provider domain.Provider, value string) error {
	query := `INSERT INTO provider_credentials (provider, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (provider) DO UPDATE SET value = $2, updated_at = $3`

	_, err := r.db.ExecContext(ctx, query, provider, obfuscate(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("credentialRepo.Set: %w", err)
	}
	return nil
}

func (r *credentialRepo) Clear(ctx context.Context, provider domain.Provider) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM provider_credentials WHERE provider = $1", provider)
	if err != nil {
		return fmt.Errorf("credentialRepo.Clear: %w", err)
	}
	return nil
}

func obfuscate(value string) string {
	return base64.StdEncoding.EncodeToString(xorPad([]byte(value)))
}

func deobfuscate(stored string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", err
	}
	return string(xorPad(raw)), nil
}

func xorPad(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ obfuscationPad[i%len(obfuscationPad)]
	}
	return out
}
