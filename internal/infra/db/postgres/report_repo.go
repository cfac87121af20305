package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"net"
	"time"

	_ "github.com/lib/pq"

	domain "github.com/aurainsight/aura-backend/internal/domain/reports"
)

type ReportRepository struct{ db *sql.DB }

func NewReportRepository(db *sql.DB) *ReportRepository { return &ReportRepository{db: db} }

// Connect opens a lib/pq connection pool with the same limits as the MySQL
// adapter.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		return nil, err
	}
	return db, nil
}

func (r *ReportRepository) Save(ctx context.Context, rep *domain.Report) error {
	const q = `
INSERT INTO aura_reports
  (id, owner_id, title, narrative, report_details, html_report, prompt_version, media_urls, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9);
`
	details, _ := json.Marshal(orEmpty(rep.DetailPoints))
	media, _ := json.Marshal(orEmpty(rep.MediaURLs))
	createdAt := rep.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, q,
		rep.ID, rep.OwnerID, rep.Title, rep.Narrative, details,
		rep.HTMLReport, rep.PromptVersion, media, createdAt,
	)
	if err != nil {
		if isConnErr(err) {
			return errors.Join(domain.ErrStoreUnavailable, err)
		}
		return errors.Join(domain.ErrStoreWriteFailed, err)
	}
	return nil
}

func (r *ReportRepository) ListByOwner(ctx context.Context, owner string) ([]*domain.Summary, error) {
	const q = `
SELECT id, title, created_at
FROM aura_reports
WHERE owner_id=$1
ORDER BY created_at DESC, id DESC;
`
	rows, err := r.db.QueryContext(ctx, q, owner)
	if err != nil {
		return nil, readErr(err)
	}
	defer rows.Close()

	var out []*domain.Summary
	for rows.Next() {
		var s domain.Summary
		if err := rows.Scan(&s.ID, &s.Title, &s.CreatedAt); err != nil {
			return nil, readErr(err)
		}
		out = append(out, &s)
	}
	return out, readErr(rows.Err())
}

func (r *ReportRepository) Get(ctx context.Context, owner string, id domain.ReportID) (*domain.Report, error) {
	const q = `
SELECT id, owner_id, title, narrative, report_details, html_report, prompt_version, media_urls, created_at
FROM aura_reports
WHERE owner_id=$1 AND id=$2;
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
		return nil, readErr(err)
	}
	_ = json.Unmarshal(details, &rep.DetailPoints)
	_ = json.Unmarshal(media, &rep.MediaURLs)
	return &rep, nil
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func readErr(err error) error {
	if err == nil {
		return nil
	}
	if isConnErr(err) {
		return errors.Join(domain.ErrStoreUnavailable, err)
	}
	return err
}

func isConnErr(err error) bool {
	var netErr net.Error
	return errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &netErr)
}
