package memory

import (
	"context"
	"sort"
	"sync"

	domain "github.com/aurainsight/aura-backend/internal/domain/reports"
)

// ReportRepository is a map-backed Repository used in tests and local runs.
type ReportRepository struct {
	mu      sync.RWMutex
	byOwner map[string][]*domain.Report
	saves   int
}

func NewReportRepository() *ReportRepository {
	return &ReportRepository{byOwner: make(map[string][]*domain.Report)}
}

func (r *ReportRepository) Save(ctx context.Context, rep *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rep
	r.byOwner[rep.OwnerID] = append(r.byOwner[rep.OwnerID], &cp)
	r.saves++
	return nil
}

func (r *ReportRepository) ListByOwner(ctx context.Context, owner string) ([]*domain.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.byOwner[owner]
	out := make([]*domain.Summary, 0, len(rows))
	for _, rep := range rows {
		out = append(out, &domain.Summary{ID: rep.ID, Title: rep.Title, CreatedAt: rep.CreatedAt})
	}
	// newest first, id as tiebreak to keep the order stable
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *ReportRepository) Get(ctx context.Context, owner string, id domain.ReportID) (*domain.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rep := range r.byOwner[owner] {
		if rep.ID == id {
			cp := *rep
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// SaveCount reports how many writes have happened, for test assertions.
func (r *ReportRepository) SaveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}
