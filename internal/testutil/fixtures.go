package testutil

import (
	"time"

	"github.com/alexanderramin/bmo/internal/domain"
	"github.com/google/uuid"
)

// AlertOption customizes an alert built by NewTestAlert.
type AlertOption func(*domain.Alert)

func WithID(id string) AlertOption {
	return func(a *domain.Alert) {
		a.ID = id
	}
}

func WithSeverity(s domain.Severity) AlertOption {
	return func(a *domain.Alert) {
		a.Severity = s
	}
}

func WithStatus(s domain.Status) AlertOption {
	return func(a *domain.Alert) {
		a.Status = s
	}
}

func WithSource(src string) AlertOption {
	return func(a *domain.Alert) {
		a.Source = src
	}
}

func WithModule(m string) AlertOption {
	return func(a *domain.Alert) {
		a.Module = m
	}
}

func WithDescription(d string) AlertOption {
	return func(a *domain.Alert) {
		a.Description = d
	}
}

func WithAssignee(who string) AlertOption {
	return func(a *domain.Alert) {
		a.AssignedTo = who
	}
}

func WithCreatedAt(t time.Time) AlertOption {
	return func(a *domain.Alert) {
		a.CreatedAt = t
	}
}

func WithImpact(financial float64, operational, reputation domain.ImpactLevel) AlertOption {
	return func(a *domain.Alert) {
		a.Impact = &domain.Impact{Financial: financial, Operational: operational, Reputation: reputation}
	}
}

// NewTestAlert returns an active info alert created an hour ago.
func NewTestAlert(title string, opts ...AlertOption) *domain.Alert {
	a := &domain.Alert{
		ID:        uuid.New().String(),
		Title:     title,
		Severity:  domain.SeverityInfo,
		Status:    domain.StatusActive,
		Source:    "bmo",
		Module:    "factures",
		CreatedAt: time.Now().UTC().Add(-time.Hour).Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
