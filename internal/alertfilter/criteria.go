// Package alertfilter narrows an in-memory alert list for display.
//
// Every function here is pure: inputs are never modified, output order
// follows input order, and nothing is sorted implicitly.
package alertfilter

import (
	"strings"
	"time"

	"github.com/alexanderramin/bmo/internal/domain"
)

// DateRange bounds CreatedAt, inclusive on both ends. A nil bound is open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Criteria is a set of optional predicates combined with AND.
// An empty field applies no filtering on that field.
type Criteria struct {
	Search     string
	DateRange  *DateRange
	Sources    []string
	Modules    []string
	Severities []domain.Severity
	Statuses   []domain.Status
}

// IsEmpty reports whether the criteria match every alert.
func (c Criteria) IsEmpty() bool {
	return c.ActiveCount() == 0
}

// ActiveCount returns how many fields actually restrict the result.
func (c Criteria) ActiveCount() int {
	n := 0
	if strings.TrimSpace(c.Search) != "" {
		n++
	}
	if c.DateRange != nil && (c.DateRange.Start != nil || c.DateRange.End != nil) {
		n++
	}
	for _, l := range []int{len(c.Sources), len(c.Modules), len(c.Severities), len(c.Statuses)} {
		if l > 0 {
			n++
		}
	}
	return n
}

// WithSearch returns a copy of c with the search text replaced.
func (c Criteria) WithSearch(q string) Criteria {
	c.Search = q
	return c
}

// WithSeverities returns a copy of c restricted to the given severities.
func (c Criteria) WithSeverities(s ...domain.Severity) Criteria {
	c.Severities = append([]domain.Severity(nil), s...)
	return c
}

// Clone returns a copy of c that shares no slices with it.
func (c Criteria) Clone() Criteria {
	c.Sources = append([]string(nil), c.Sources...)
	c.Modules = append([]string(nil), c.Modules...)
	c.Severities = append([]domain.Severity(nil), c.Severities...)
	c.Statuses = append([]domain.Status(nil), c.Statuses...)
	if c.DateRange != nil {
		r := *c.DateRange
		c.DateRange = &r
	}
	return c
}
