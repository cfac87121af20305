package reports

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aurainsight/aura-backend/internal/application"
	domain "github.com/aurainsight/aura-backend/internal/domain/reports"
)

// Service implements the report store gateway: every operation is scoped to
// the owner resolved by the authorization layer, never to an id taken from
// request parameters. The owner id is therefore the only path into a user's
// namespace.
type Service struct {
	Repo  domain.Repository
	Clock application.Clock
}

func NewService(repo domain.Repository, clock application.Clock) *Service {
	if clock == nil {
		clock = application.SystemClock{}
	}
	return &Service{Repo: repo, Clock: clock}
}

// CreateCommand carries everything needed to persist one generated report.
type CreateCommand struct {
	Title         string
	Narrative     string
	DetailPoints  []string
	HTMLReport    string
	PromptVersion string
	MediaURLs     []string
}

// Create always inserts a new record; reports are never merged or
// overwritten. Must not be called for anonymous owners.
func (s *Service) Create(ctx context.Context, owner string, cmd CreateCommand) (domain.ReportID, error) {
	if owner == "" {
		return "", fmt.Errorf("%w: empty owner", domain.ErrStoreWriteFailed)
	}

	r := &domain.Report{
		ID:            domain.ReportID(uuid.NewString()),
		OwnerID:       owner,
		Title:         cmd.Title,
		Narrative:     cmd.Narrative,
		DetailPoints:  cmd.DetailPoints,
		HTMLReport:    cmd.HTMLReport,
		PromptVersion: cmd.PromptVersion,
		MediaURLs:     cmd.MediaURLs,
		CreatedAt:     s.Clock.Now().UTC(),
	}
	if err := s.Repo.Save(ctx, r); err != nil {
		return "", err
	}
	return r.ID, nil
}

// List returns the owner's report summaries, newest first. An owner with no
// reports gets an empty slice, not an error.
func (s *Service) List(ctx context.Context, owner string) ([]*domain.Summary, error) {
	out, err := s.Repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*domain.Summary{}
	}
	return out, nil
}

// Get fetches one report within the owner's namespace. A foreign or absent id
// both surface as domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, owner string, id domain.ReportID) (*domain.Report, error) {
	return s.Repo.Get(ctx, owner, id)
}
