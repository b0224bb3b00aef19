package domain

import (
	"fmt"
	"time"
)

// Impact describes what is at stake if an alert is left unattended.
// Financial is expressed in euros.
type Impact struct {
	Financial   float64
	Operational ImpactLevel
	Reputation  ImpactLevel
}

type Alert struct {
	ID          string
	Title       string
	Description string
	Severity    Severity
	Status      Status
	Source      string // originating system, e.g. "erp", "bmo-validation"
	Module      string // portal module, e.g. "bons-de-commande", "factures"
	AssignedTo  string
	EscalatedTo string
	Note        string
	Impact      *Impact

	CreatedAt  time.Time
	UpdatedAt  *time.Time
	ResolvedAt *time.Time
}

// IsTerminal reports whether the alert can no longer change status.
func (a *Alert) IsTerminal() bool {
	return a.Status == StatusArchived
}

// Acknowledge marks the alert as seen by someone. Acknowledging an already
// acknowledged alert only refreshes the assignee.
func (a *Alert) Acknowledge(by string, now time.Time) error {
	switch a.Status {
	case StatusActive, StatusEscalated, StatusAcknowledged:
	default:
		return fmt.Errorf("cannot acknowledge %s alert", a.Status)
	}
	a.Status = StatusAcknowledged
	if by != "" {
		a.AssignedTo = by
	}
	a.touch(now)
	return nil
}

// Resolve closes the alert. The note, when given, replaces the previous one.
func (a *Alert) Resolve(note string, now time.Time) error {
	if !a.Status.IsOpen() {
		return fmt.Errorf("cannot resolve %s alert", a.Status)
	}
	a.Status = StatusResolved
	if note != "" {
		a.Note = note
	}
	a.ResolvedAt = &now
	a.touch(now)
	return nil
}

// Escalate hands the alert over to someone else.
func (a *Alert) Escalate(to string, now time.Time) error {
	if to == "" {
		return fmt.Errorf("escalation target is required")
	}
	if !a.Status.IsOpen() {
		return fmt.Errorf("cannot escalate %s alert", a.Status)
	}
	a.Status = StatusEscalated
	a.EscalatedTo = to
	a.touch(now)
	return nil
}

func (a *Alert) Archive(now time.Time) error {
	if a.Status == StatusArchived {
		return fmt.Errorf("alert is already archived")
	}
	a.Status = StatusArchived
	a.touch(now)
	return nil
}

// Reopen brings a resolved alert back to active.
func (a *Alert) Reopen(now time.Time) error {
	if a.Status != StatusResolved {
		return fmt.Errorf("cannot reopen %s alert", a.Status)
	}
	a.Status = StatusActive
	a.ResolvedAt = nil
	a.touch(now)
	return nil
}

// LastActivity returns UpdatedAt when set, otherwise CreatedAt.
func (a *Alert) LastActivity() time.Time {
	if a.UpdatedAt != nil {
		return *a.UpdatedAt
	}
	return a.CreatedAt
}

// FinancialImpact returns the euro amount at stake, zero when unknown.
func (a *Alert) FinancialImpact() float64 {
	if a.Impact == nil {
		return 0
	}
	return a.Impact.Financial
}

func (a *Alert) touch(now time.Time) {
	a.UpdatedAt = &now
}
