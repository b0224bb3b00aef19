package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/bmo/internal/alertfilter"
	"github.com/alexanderramin/bmo/internal/db"
	"github.com/alexanderramin/bmo/internal/domain"
	"github.com/alexanderramin/bmo/internal/navtree"
	"github.com/alexanderramin/bmo/internal/repository"
)

type alertService struct {
	alerts   repository.AlertRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewAlertService(
	alerts repository.AlertRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) AlertService {
	return &alertService{
		alerts:   alerts,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *alertService) List(ctx context.Context, scope, criteria alertfilter.Criteria) (result []*domain.Alert, err error) {
	fields := map[string]any{
		"scope_filters": scope.ActiveCount(),
		"filters":       criteria.ActiveCount(),
	}
	defer observe(ctx, s.observer, "list-alerts", time.Now().UTC(), fields, &err)

	all, err := s.alerts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing alerts: %w", err)
	}
	// Applied one after the other: merging the two could turn an empty
	// intersection into no filter at all.
	result = alertfilter.Apply(alertfilter.Apply(all, scope), criteria)
	fields["count"] = len(result)
	return result, nil
}

func (s *alertService) Get(ctx context.Context, id string) (*domain.Alert, error) {
	a, err := s.alerts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting alert: %w", err)
	}
	return a, nil
}

func (s *alertService) Acknowledge(ctx context.Context, id, by string) (*domain.Alert, error) {
	return s.transition(ctx, "acknowledge-alert", id, func(a *domain.Alert, now time.Time) error {
		return a.Acknowledge(by, now)
	})
}

func (s *alertService) Resolve(ctx context.Context, id, note string) (*domain.Alert, error) {
	return s.transition(ctx, "resolve-alert", id, func(a *domain.Alert, now time.Time) error {
		return a.Resolve(note, now)
	})
}

func (s *alertService) Escalate(ctx context.Context, id, to string) (*domain.Alert, error) {
	return s.transition(ctx, "escalate-alert", id, func(a *domain.Alert, now time.Time) error {
		return a.Escalate(to, now)
	})
}

func (s *alertService) Archive(ctx context.Context, id string) (*domain.Alert, error) {
	return s.transition(ctx, "archive-alert", id, func(a *domain.Alert, now time.Time) error {
		return a.Archive(now)
	})
}

func (s *alertService) Reopen(ctx context.Context, id string) (*domain.Alert, error) {
	return s.transition(ctx, "reopen-alert", id, func(a *domain.Alert, now time.Time) error {
		return a.Reopen(now)
	})
}

// transition loads, changes and saves one alert in a single transaction.
func (s *alertService) transition(ctx context.Context, name, id string, apply func(*domain.Alert, time.Time) error) (alert *domain.Alert, err error) {
	fields := map[string]any{"alert_id": id}
	defer observe(ctx, s.observer, name, time.Now().UTC(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteAlertRepo(tx)
		a, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		fields["from"] = string(a.Status)
		if err := apply(a, s.now()); err != nil {
			return fmt.Errorf("alert %s: %w", id, err)
		}
		if err := repo.Update(ctx, a); err != nil {
			return err
		}
		fields["to"] = string(a.Status)
		alert = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return alert, nil
}

func (s *alertService) Summary(ctx context.Context) (alertfilter.Summary, error) {
	all, err := s.alerts.List(ctx)
	if err != nil {
		return alertfilter.Summary{}, fmt.Errorf("summarizing alerts: %w", err)
	}
	return alertfilter.Summarize(all), nil
}

func (s *alertService) NavCounts(ctx context.Context) (map[string]int, error) {
	all, err := s.alerts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting alerts per node: %w", err)
	}
	return navtree.Counts(navtree.AlertsTree(), all), nil
}
