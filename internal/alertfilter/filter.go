package alertfilter

import (
	"slices"
	"strings"

	"github.com/alexanderramin/bmo/internal/domain"
)

// Apply returns the alerts matching every predicate in c, in input order.
// Nil entries never match, so they are dropped even for empty criteria.
// The returned slice is freshly allocated; the alerts themselves are shared.
func Apply(alerts []*domain.Alert, c Criteria) []*domain.Alert {
	out := make([]*domain.Alert, 0, len(alerts))
	m := newMatcher(c)
	for _, a := range alerts {
		if a != nil && m.match(a) {
			out = append(out, a)
		}
	}
	return out
}

// Matches reports whether a single alert satisfies c.
func Matches(a *domain.Alert, c Criteria) bool {
	if a == nil {
		return false
	}
	return newMatcher(c).match(a)
}

// matcher holds the criteria with the search needle lowered once.
type matcher struct {
	c      Criteria
	needle string
}

func newMatcher(c Criteria) matcher {
	return matcher{c: c, needle: strings.ToLower(strings.TrimSpace(c.Search))}
}

func (m matcher) match(a *domain.Alert) bool {
	if len(m.c.Severities) > 0 && !slices.Contains(m.c.Severities, a.Severity) {
		return false
	}
	if len(m.c.Statuses) > 0 && !slices.Contains(m.c.Statuses, a.Status) {
		return false
	}
	if len(m.c.Sources) > 0 && !containsFold(m.c.Sources, a.Source) {
		return false
	}
	if len(m.c.Modules) > 0 && !containsFold(m.c.Modules, a.Module) {
		return false
	}
	if r := m.c.DateRange; r != nil {
		if r.Start != nil && a.CreatedAt.Before(*r.Start) {
			return false
		}
		if r.End != nil && a.CreatedAt.After(*r.End) {
			return false
		}
	}
	if m.needle != "" {
		hay := strings.ToLower(a.Title + "\n" + a.Description + "\n" + a.AssignedTo)
		if !strings.Contains(hay, m.needle) {
			return false
		}
	}
	return true
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
