package domain

import (
	"fmt"
	"strings"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
	SeveritySuccess  Severity = "success"
)

// Severities lists every severity from most to least urgent.
var Severities = []Severity{SeverityCritical, SeverityWarning, SeverityInfo, SeveritySuccess}

type Status string

const (
	StatusActive       Status = "active"
	StatusAcknowledged Status = "acknowledged"
	StatusResolved     Status = "resolved"
	StatusEscalated    Status = "escalated"
	StatusArchived     Status = "archived"
)

// Statuses lists every alert status in lifecycle order.
var Statuses = []Status{StatusActive, StatusAcknowledged, StatusEscalated, StatusResolved, StatusArchived}

type ImpactLevel string

const (
	ImpactLow    ImpactLevel = "low"
	ImpactMedium ImpactLevel = "medium"
	ImpactHigh   ImpactLevel = "high"
)

// ParseSeverity accepts a severity name in any case.
func ParseSeverity(s string) (Severity, error) {
	v := Severity(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Severities {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown severity %q (want one of critical, warning, info, success)", s)
}

// ParseStatus accepts a status name in any case.
func ParseStatus(s string) (Status, error) {
	v := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Statuses {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (want one of active, acknowledged, escalated, resolved, archived)", s)
}

// Rank orders severities for sorting: lower is more urgent.
func (s Severity) Rank() int {
	for i, known := range Severities {
		if s == known {
			return i
		}
	}
	return len(Severities)
}

// IsOpen reports whether the status still requires attention.
func (s Status) IsOpen() bool {
	return s == StatusActive || s == StatusAcknowledged || s == StatusEscalated
}
