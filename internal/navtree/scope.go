package navtree

import (
	"github.com/alexanderramin/bmo/internal/alertfilter"
	"github.com/alexanderramin/bmo/internal/domain"
)

var (
	openStatuses   = []domain.Status{domain.StatusActive, domain.StatusAcknowledged, domain.StatusEscalated}
	liveStatuses   = []domain.Status{domain.StatusActive, domain.StatusAcknowledged, domain.StatusEscalated, domain.StatusResolved}
	critical       = []domain.Severity{domain.SeverityCritical}
	warning        = []domain.Severity{domain.SeverityWarning}
	informational  = []domain.Severity{domain.SeverityInfo}
	validationMods = []string{"bons-de-commande", "avenants", "decisions"}
)

func module(name string) alertfilter.Criteria {
	return alertfilter.Criteria{Modules: []string{name}, Statuses: liveStatuses}
}

// scopes binds navigation nodes to the alerts they list.
var scopes = map[string]alertfilter.Criteria{
	NodeOverview:            {Statuses: liveStatuses},
	NodeEnCours:             {Statuses: openStatuses},
	NodeEnCoursCritiques:    {Statuses: openStatuses, Severities: critical},
	NodeCritiquesPaiements:  {Statuses: openStatuses, Severities: critical, Modules: []string{"factures"}},
	NodeCritiquesValidation: {Statuses: openStatuses, Severities: critical, Modules: validationMods},
	NodeEnCoursWarnings:     {Statuses: openStatuses, Severities: warning},
	NodeWarningsDelais:      {Statuses: openStatuses, Severities: warning, Sources: []string{"planning"}},
	NodeWarningsBudget:      {Statuses: openStatuses, Severities: warning, Sources: []string{"finance"}},
	NodeEnCoursInfos:        {Statuses: openStatuses, Severities: informational},
	NodeTraitements:         {Statuses: []domain.Status{domain.StatusAcknowledged, domain.StatusEscalated, domain.StatusResolved}},
	NodeAcquittees:          {Statuses: []domain.Status{domain.StatusAcknowledged}},
	NodeEscaladees:          {Statuses: []domain.Status{domain.StatusEscalated}},
	NodeResolues:            {Statuses: []domain.Status{domain.StatusResolved}},
	NodeModules:             {Statuses: liveStatuses},
	NodeModuleCommandes:     module("bons-de-commande"),
	NodeModuleFactures:      module("factures"),
	NodeModuleAvenants:      module("avenants"),
	NodeModuleDecisions:     module("decisions"),
	NodeModuleSubstitutions: module("substitutions"),
	NodeArchives:            {Statuses: []domain.Status{domain.StatusArchived}},
}

// ScopeFor returns the alert criteria bound to a navigation node.
// The second result is false for unknown ids.
func ScopeFor(id string) (alertfilter.Criteria, bool) {
	c, ok := scopes[id]
	if !ok {
		return alertfilter.Criteria{}, false
	}
	return c.Clone(), true
}

// Counts applies every node scope to alerts and returns the match count per
// node id.
func Counts(t Tree, alerts []*domain.Alert) map[string]int {
	counts := make(map[string]int)
	Walk(t, func(n *NavNode, _ int) bool {
		if c, ok := ScopeFor(n.ID); ok {
			counts[n.ID] = len(alertfilter.Apply(alerts, c))
		}
		return true
	})
	return counts
}
