package service

import (
	"context"

	"github.com/alexanderramin/bmo/internal/alertfilter"
	"github.com/alexanderramin/bmo/internal/domain"
)

// AlertService serves the alert center: filtered listings, KPIs and status
// transitions.
type AlertService interface {
	// List narrows the stored alerts first by a navigation scope, then by
	// user criteria. Order is newest first.
	List(ctx context.Context, scope, criteria alertfilter.Criteria) ([]*domain.Alert, error)
	Get(ctx context.Context, id string) (*domain.Alert, error)
	Acknowledge(ctx context.Context, id, by string) (*domain.Alert, error)
	Resolve(ctx context.Context, id, note string) (*domain.Alert, error)
	Escalate(ctx context.Context, id, to string) (*domain.Alert, error)
	Archive(ctx context.Context, id string) (*domain.Alert, error)
	Reopen(ctx context.Context, id string) (*domain.Alert, error)
	Summary(ctx context.Context) (alertfilter.Summary, error)
	// NavCounts returns, per navigation node id, how many alerts its scope
	// matches.
	NavCounts(ctx context.Context) (map[string]int, error)
}

// ImportService loads alert feeds into the store.
type ImportService interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	Import(ctx context.Context, alerts []*domain.Alert) (*ImportResult, error)
}

// ImportResult counts what an import did. Preserved alerts were already
// handled locally after the feed last changed them, so their workflow
// fields were kept.
type ImportResult struct {
	Path      string
	Created   int
	Updated   int
	Preserved int
}

// Total is the number of records the feed carried.
func (r *ImportResult) Total() int {
	return r.Created + r.Updated
}
