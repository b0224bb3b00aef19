package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/bmo/internal/db"
	"github.com/alexanderramin/bmo/internal/domain"
	"github.com/alexanderramin/bmo/internal/feed"
	"github.com/alexanderramin/bmo/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, path string) (result *ImportResult, err error) {
	fields := map[string]any{"path": path}
	defer observe(ctx, s.observer, "import-feed", time.Now().UTC(), fields, &err)

	alerts, err := feed.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading feed: %w", err)
	}
	result, err = s.upsertAll(ctx, alerts)
	if err != nil {
		return nil, err
	}
	result.Path = path
	fields["created"] = result.Created
	fields["updated"] = result.Updated
	fields["preserved"] = result.Preserved
	return result, nil
}

func (s *importService) Import(ctx context.Context, alerts []*domain.Alert) (result *ImportResult, err error) {
	fields := map[string]any{"records": len(alerts)}
	defer observe(ctx, s.observer, "import-alerts", time.Now().UTC(), fields, &err)
	return s.upsertAll(ctx, alerts)
}

// upsertAll writes every alert or none of them.
func (s *importService) upsertAll(ctx context.Context, alerts []*domain.Alert) (*ImportResult, error) {
	result := &ImportResult{}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteAlertRepo(tx)
		for i, incoming := range alerts {
			if incoming == nil {
				return fmt.Errorf("alert %d is nil", i)
			}
			existing, err := repo.GetByID(ctx, incoming.ID)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				result.Created++
			case err != nil:
				return fmt.Errorf("checking alert %s: %w", incoming.ID, err)
			default:
				result.Updated++
				if keepLocalWorkflow(existing, incoming) {
					result.Preserved++
					incoming = withLocalWorkflow(incoming, existing)
				}
			}
			if err := repo.Upsert(ctx, incoming); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importing alerts: %w", err)
	}
	return result, nil
}

// keepLocalWorkflow reports whether the stored alert changed after the feed
// last touched the incoming record.
func keepLocalWorkflow(existing, incoming *domain.Alert) bool {
	if existing.UpdatedAt == nil {
		return false
	}
	feedTime := incoming.CreatedAt
	if incoming.UpdatedAt != nil {
		feedTime = *incoming.UpdatedAt
	}
	return existing.UpdatedAt.After(feedTime)
}

func withLocalWorkflow(incoming, existing *domain.Alert) *domain.Alert {
	merged := *incoming
	merged.Status = existing.Status
	merged.AssignedTo = existing.AssignedTo
	merged.EscalatedTo = existing.EscalatedTo
	merged.Note = existing.Note
	merged.ResolvedAt = existing.ResolvedAt
	merged.UpdatedAt = existing.UpdatedAt
	return &merged
}
