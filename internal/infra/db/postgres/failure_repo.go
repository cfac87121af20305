package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/aurainsight/aura-backend/internal/domain/analysisfailures"
)

type FailureRepository struct{ db *sql.DB }

func NewFailureRepository(db *sql.DB) *FailureRepository { return &FailureRepository{db: db} }

func (r *FailureRepository) Save(ctx context.Context, f *domain.Failure) error {
	const q = `
INSERT INTO aura_analysis_failures
  (owner_id, title, kind, message, created_at)
VALUES ($1,$2,$3,$4,$5);
`
	msg := f.Message
	if strings.TrimSpace(msg) == "" {
		msg = "-"
	}
	createdAt := f.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q, f.OwnerID, f.Title, f.Kind, msg, createdAt)
	return err
}
