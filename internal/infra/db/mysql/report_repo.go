package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	domain "github.com/aurainsight/aura-backend/internal/domain/reports"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save inserts a report record. Reports are immutable, so this is a plain
// insert and a duplicate id is a write fault.
func (r *ReportRepository) Save(ctx context.Context, rep *domain.Report) error {
	const q = `
INSERT INTO aura_reports
  (id, owner_id, title, narrative, report_details, html_report, prompt_version, media_urls, created_at)
VALUES (?,?,?,?,?,?,?,?,?);
`
	details, err := jsonOrEmptyArray(rep.DetailPoints)
	if err != nil {
		return classifyWriteErr(err)
	}
	media, err := jsonOrEmptyArray(rep.MediaURLs)
	if err != nil {
		return classifyWriteErr(err)
	}
	createdAt := rep.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx, q,
		rep.ID, rep.OwnerID, rep.Title, rep.Narrative, details,
		rep.HTMLReport, rep.PromptVersion, media, createdAt,
	)
	return classifyWriteErr(err)
}

// ListByOwner returns summaries for one owner ordered by created_at desc.
// The owner filter is part of every query; there is no unscoped read path.
func (r *ReportRepository) ListByOwner(ctx context.Context, owner string) ([]*domain.Summary, error) {
	const q = `
SELECT id, title, created_at
FROM aura_reports
WHERE owner_id=?
ORDER BY created_at DESC, id DESC;
`
	rows, err := r.db.QueryContext(ctx, q, owner)
	if err != nil {
		return nil, classifyReadErr(err)
	}
	defer rows.Close()

	var out []*domain.Summary
	for rows.Next() {
		var s domain.Summary
		if err := rows.Scan(&s.ID, &s.Title, &s.CreatedAt); err != nil {
			return nil, classifyReadErr(err)
		}
		out = append(out, &s)
	}
	return out, classifyReadErr(rows.Err())
}

// Get fetches one report by id within the owner's namespace. An id belonging
// to a different owner produces the same ErrNotFound as a missing id.
func (r *ReportRepository) Get(ctx context.Context, owner string, id domain.ReportID) (*domain.Report, error) {
	const q = `
SELECT id, owner_id, title, narrative, report_details, html_report, prompt_version, media_urls, created_at
FROM aura_reports
WHERE owner_id=? AND id=?;
`
	var rep domain.Report
	var details, media []byte
	err := r.db.QueryRowContext(ctx, q, owner, id).Scan(
		&rep.ID, &rep.OwnerID, &rep.Title, &rep.Narrative, &details,
		&rep.HTMLReport, &rep.PromptVersion, &media, &rep.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, classifyReadErr(err)
	}
	if err := json.Unmarshal(details, &rep.DetailPoints); err != nil {
		rep.DetailPoints = nil
	}
	if err := json.Unmarshal(media, &rep.MediaURLs); err != nil {
		rep.MediaURLs = nil
	}
	return &rep, nil
}

func jsonOrEmptyArray(v []string) ([]byte, error) {
	if len(v) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}
