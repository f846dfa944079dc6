package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docforensics/internal/domain"
	"docforensics/internal/port"
)

type analysisRepo struct {
	db *sqlx.DB
}

// NewAnalysisRepo creates a new PostgreSQL-backed AnalysisRepository.
func NewAnalysisRepo(db *sqlx.DB) port.AnalysisRepository {
	return &analysisRepo{db: db}
}

// analysisRow maps an analyses table row; the report is stored as JSONB.
type analysisRow struct {
	ID          uuid.UUID `db:"id"`
	Provider    string    `db:"provider"`
	Model       string    `db:"model"`
	ImageKey    string    `db:"image_key"`
	ContextNote string    `db:"context_note"`
	Result      []byte    `db:"result"`
	CreatedAt   time.Time `db:"created_at"`
}

func (row *analysisRow) toDomain() (*domain.Analysis, error) {
	a := &domain.Analysis{
		ID:          row.ID,
		Provider:    domain.Provider(row.Provider),
		Model:       row.Model,
		ImageKey:    row.ImageKey,
		ContextNote: row.ContextNote,
		CreatedAt:   row.CreatedAt,
	}
	if err := json.Unmarshal(row.Result, &a.Result); err != nil {
		return nil, fmt.Errorf("unmarshaling stored result: %w", err)
	}
	return a, nil
}

func (r *analysisRepo) Create(ctx context.Context, a *domain.Analysis) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	resultJSON, err := json.Marshal(a.Result)
	if err != nil {
		return fmt.Errorf("analysisRepo.Create marshal: %w", err)
	}

	query := `INSERT INTO analyses
		(id, provider, model, image_key, context_note, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		a.ID, a.Provider, a.Model, a.ImageKey, a.ContextNote, resultJSON, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("analysisRepo.Create: %w", err)
	}
	return nil
}

func (r *analysisRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	var row analysisRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM analyses WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("analysisRepo.GetByID: %w", err)
	}
	return row.toDomain()
}

func (r *analysisRepo) List(ctx context.Context, limit, offset int) ([]domain.Analysis, error) {
	var rows []analysisRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM analyses ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("analysisRepo.List: %w", err)
	}

	analyses := make([]domain.Analysis, 0, len(rows))
	for i := range rows {
		a, err := rows[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("analysisRepo.List row %s: %w", rows[i].ID, err)
		}
		analyses = append(analyses, *a)
	}
	return analyses, nil
}

func (r *analysisRepo) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM analyses"); err != nil {
		return 0, fmt.Errorf("analysisRepo.Count: %w", err)
	}
	return total, nil
}

func (r *analysisRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM analyses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("analysisRepo.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
