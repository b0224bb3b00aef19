package repository

import (
	"context"

	"github.com/alexanderramin/bmo/internal/domain"
)

// AlertRepo persists alert records.
type AlertRepo interface {
	// Upsert inserts the alert or replaces every field of an existing one.
	Upsert(ctx context.Context, a *domain.Alert) error
	GetByID(ctx context.Context, id string) (*domain.Alert, error)
	// List returns all alerts, newest first, ties broken by id.
	List(ctx context.Context) ([]*domain.Alert, error)
	Update(ctx context.Context, a *domain.Alert) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[domain.Status]int, error)
}

// PreferenceRepo persists UI preferences as key/value strings.
type PreferenceRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	List(ctx context.Context) ([]domain.Preference, error)
	Delete(ctx context.Context, key string) error
}
