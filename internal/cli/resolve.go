package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/bmo/internal/alertfilter"
	"github.com/alexanderramin/bmo/internal/navtree"
	"github.com/alexanderramin/bmo/internal/repository"
)

// resolveAlertID accepts a full alert ID or an unambiguous prefix of one,
// as printed in the truncated ID column.
func resolveAlertID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("alert ID is required")
	}

	a, err := app.Alerts.Get(ctx, input)
	if err == nil {
		return a.ID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	all, err := app.Alerts.List(ctx, alertfilter.Criteria{}, alertfilter.Criteria{})
	if err != nil {
		return "", err
	}
	var matches []string
	for _, a := range all {
		if strings.HasPrefix(a.ID, input) {
			matches = append(matches, a.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("alert not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("alert ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// lookupNode finds a nav node by route first, then by id.
func lookupNode(t navtree.Tree, ref string) *navtree.NavNode {
	if strings.HasPrefix(ref, "/") {
		return navtree.FindByRoute(t, ref)
	}
	return navtree.FindByID(t, ref)
}

// scopeFor resolves a route or node id to its filter scope. Unknown
// references yield an empty scope and a notice for the user.
func scopeFor(ref string) (alertfilter.Criteria, *navtree.NavNode, string) {
	if ref == "" {
		return alertfilter.Criteria{}, nil, ""
	}
	n := lookupNode(navtree.AlertsTree(), ref)
	if n == nil {
		return alertfilter.Criteria{}, nil, fmt.Sprintf("Unknown navigation entry %q, showing all alerts.", ref)
	}
	scope, ok := navtree.ScopeFor(n.ID)
	if !ok {
		return alertfilter.Criteria{}, n, fmt.Sprintf("No scope for %q, showing all alerts.", n.Label)
	}
	return scope, n, ""
}
