package navtree

import (
	"testing"
	"time"

	"github.com/alexanderramin/bmo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scopeAlerts() []*domain.Alert {
	now := time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC)
	return []*domain.Alert{
		{ID: "pay", Severity: domain.SeverityCritical, Status: domain.StatusActive, Module: "factures", CreatedAt: now},
		{ID: "bc", Severity: domain.SeverityCritical, Status: domain.StatusEscalated, Module: "bons-de-commande", CreatedAt: now},
		{ID: "delay", Severity: domain.SeverityWarning, Status: domain.StatusAcknowledged, Source: "planning", Module: "avenants", CreatedAt: now},
		{ID: "done", Severity: domain.SeverityWarning, Status: domain.StatusResolved, Source: "finance", Module: "factures", CreatedAt: now},
		{ID: "old", Severity: domain.SeverityInfo, Status: domain.StatusArchived, Module: "decisions", CreatedAt: now},
	}
}

func TestScopeFor_EveryNodeHasAScope(t *testing.T) {
	for _, id := range IDs(AlertsTree()) {
		_, ok := ScopeFor(id)
		assert.True(t, ok, "node %s has no scope", id)
	}
	_, ok := ScopeFor("unknown")
	assert.False(t, ok)
}

func TestScopeFor_ReturnsCopy(t *testing.T) {
	c, ok := ScopeFor(NodeEnCoursCritiques)
	require.True(t, ok)
	c.Severities[0] = domain.SeverityInfo

	again, _ := ScopeFor(NodeEnCoursCritiques)
	assert.Equal(t, []domain.Severity{domain.SeverityCritical}, again.Severities)
}

func TestCounts(t *testing.T) {
	counts := Counts(AlertsTree(), scopeAlerts())

	assert.Equal(t, 4, counts[NodeOverview])
	assert.Equal(t, 3, counts[NodeEnCours])
	assert.Equal(t, 2, counts[NodeEnCoursCritiques])
	assert.Equal(t, 1, counts[NodeCritiquesPaiements])
	assert.Equal(t, 1, counts[NodeCritiquesValidation])
	assert.Equal(t, 1, counts[NodeWarningsDelais])
	assert.Equal(t, 0, counts[NodeWarningsBudget])
	assert.Equal(t, 1, counts[NodeResolues])
	assert.Equal(t, 2, counts[NodeModuleFactures])
	assert.Equal(t, 0, counts[NodeModuleDecisions])
	assert.Equal(t, 1, counts[NodeArchives])
}

func TestWithBadges_DoesNotMutateInput(t *testing.T) {
	tree := AlertsTree()
	badged := WithBadges(tree, map[string]int{NodeEnCoursCritiques: 7, NodeArchives: 0})

	assert.Equal(t, "7", FindByID(badged, NodeEnCoursCritiques).Badge)
	assert.Equal(t, "", FindByID(badged, NodeArchives).Badge)
	assert.Equal(t, "", FindByID(tree, NodeEnCoursCritiques).Badge)
	assert.Equal(t, BadgeCritical, FindByID(badged, NodeEnCoursCritiques).BadgeType)
}
