package port

import (
	"context"
	"time"

	"docforensics/internal/domain"
)

// ResultCache caches normalized analysis results keyed by image digest,
// provider, and model. Both reads and writes are best-effort.
type ResultCache interface {
	GetResult(ctx context.Context, key string) (*domain.AnalysisResult, bool, error)
	SetResult(ctx context.Context, key string, result *domain.AnalysisResult, ttl time.Duration) error
	Ping(ctx context.Context) error
}
