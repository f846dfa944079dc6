package port

import (
	"context"

	"github.com/google/uuid"

	"docforensics/internal/domain"
)

// AnalysisRepository persists analysis records.
type AnalysisRepository interface {
	Create(ctx context.Context, a *domain.Analysis) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error)
	List(ctx context.Context, limit, offset int) ([]domain.Analysis, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
