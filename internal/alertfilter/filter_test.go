package alertfilter

import (
	"testing"
	"time"

	"github.com/alexanderramin/bmo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func sampleAlerts() []*domain.Alert {
	return []*domain.Alert{
		{ID: "a1", Title: "Paiement bloqué", Description: "Facture F-2025-014 en attente",
			Severity: domain.SeverityCritical, Status: domain.StatusActive,
			Source: "erp", Module: "factures", AssignedTo: "Claire Martin", CreatedAt: day},
		{ID: "a2", Title: "Délai", Description: "Avenant n°3 hors délai",
			Severity: domain.SeverityWarning, Status: domain.StatusResolved,
			Source: "bmo", Module: "avenants", CreatedAt: day.AddDate(0, 0, 1)},
		{ID: "a3", Title: "BC sans validation", Description: "Bon de commande BC-88",
			Severity: domain.SeverityCritical, Status: domain.StatusEscalated,
			Source: "bmo", Module: "bons-de-commande", AssignedTo: "Paul Durand", CreatedAt: day.AddDate(0, 0, 2)},
		{ID: "a4", Title: "Synchronisation OK", Description: "Import nocturne",
			Severity: domain.SeveritySuccess, Status: domain.StatusArchived,
			Source: "erp", Module: "factures", CreatedAt: day.AddDate(0, 0, 3)},
		{ID: "a5", Title: "Substitution expirée", Description: "Délégation de signature",
			Severity: domain.SeverityInfo, Status: domain.StatusAcknowledged,
			Source: "rh", Module: "substitutions", AssignedTo: "claire martin", CreatedAt: day.AddDate(0, 0, 4)},
	}
}

func ids(alerts []*domain.Alert) []string {
	out := make([]string, len(alerts))
	for i, a := range alerts {
		out[i] = a.ID
	}
	return out
}

func ptr(t time.Time) *time.Time { return &t }

func TestApply_EmptyCriteriaReturnsAllInOrder(t *testing.T) {
	alerts := sampleAlerts()
	got := Apply(alerts, Criteria{})
	require.Len(t, got, len(alerts))
	for i := range alerts {
		assert.Same(t, alerts[i], got[i])
	}
}

func TestApply_EmptySetsMeanNoFilter(t *testing.T) {
	alerts := sampleAlerts()
	got := Apply(alerts, Criteria{Severities: []domain.Severity{}, Statuses: []domain.Status{}, Sources: []string{}})
	assert.Equal(t, ids(alerts), ids(got))
}

func TestApply_SeverityExample(t *testing.T) {
	alerts := []*domain.Alert{
		{ID: "a1", Severity: domain.SeverityCritical, Status: domain.StatusActive, Title: "Paiement bloqué"},
		{ID: "a2", Severity: domain.SeverityWarning, Status: domain.StatusResolved, Title: "Délai"},
	}
	got := Apply(alerts, Criteria{Severities: []domain.Severity{domain.SeverityCritical}})
	require.Len(t, got, 1)
	assert.Equal(t, "a1", got[0].ID)
}

func TestApply_CriticalOnlyPreservesOrder(t *testing.T) {
	got := Apply(sampleAlerts(), Criteria{Severities: []domain.Severity{domain.SeverityCritical}})
	assert.Equal(t, []string{"a1", "a3"}, ids(got))
	for _, a := range got {
		assert.Equal(t, domain.SeverityCritical, a.Severity)
	}
}

func TestApply_StatusMembership(t *testing.T) {
	got := Apply(sampleAlerts(), Criteria{Statuses: []domain.Status{domain.StatusActive, domain.StatusEscalated}})
	assert.Equal(t, []string{"a1", "a3"}, ids(got))
}

func TestApply_SourcesAndModulesCaseInsensitive(t *testing.T) {
	got := Apply(sampleAlerts(), Criteria{Sources: []string{"ERP"}})
	assert.Equal(t, []string{"a1", "a4"}, ids(got))

	got = Apply(sampleAlerts(), Criteria{Modules: []string{"Factures", "avenants"}})
	assert.Equal(t, []string{"a1", "a2", "a4"}, ids(got))
}

func TestApply_SearchMatchesTitleDescriptionAssignee(t *testing.T) {
	cases := []struct {
		search string
		want   []string
	}{
		{"paiement", []string{"a1"}},
		{"BC-88", []string{"a3"}},
		{"CLAIRE", []string{"a1", "a5"}},
		{"  délai ", []string{"a2"}},
		{"nothing matches this", []string{}},
		{"   ", []string{"a1", "a2", "a3", "a4", "a5"}},
	}
	for _, tc := range cases {
		got := Apply(sampleAlerts(), Criteria{Search: tc.search})
		assert.Equal(t, tc.want, ids(got), "search=%q", tc.search)
	}
}

func TestApply_DateRangeInclusive(t *testing.T) {
	start := day.AddDate(0, 0, 1)
	end := day.AddDate(0, 0, 3)
	got := Apply(sampleAlerts(), Criteria{DateRange: &DateRange{Start: &start, End: &end}})
	assert.Equal(t, []string{"a2", "a3", "a4"}, ids(got))
}

func TestApply_DateRangeOpenEnded(t *testing.T) {
	got := Apply(sampleAlerts(), Criteria{DateRange: &DateRange{Start: ptr(day.AddDate(0, 0, 3))}})
	assert.Equal(t, []string{"a4", "a5"}, ids(got))

	got = Apply(sampleAlerts(), Criteria{DateRange: &DateRange{End: ptr(day)}})
	assert.Equal(t, []string{"a1"}, ids(got))
}

func TestApply_Conjunction(t *testing.T) {
	c := Criteria{
		Severities: []domain.Severity{domain.SeverityCritical},
		Sources:    []string{"bmo"},
		Search:     "commande",
	}
	assert.Equal(t, []string{"a3"}, ids(Apply(sampleAlerts(), c)))
}

func TestApply_Idempotent(t *testing.T) {
	criteria := []Criteria{
		{},
		{Severities: []domain.Severity{domain.SeverityCritical}},
		{Search: "claire", Statuses: []domain.Status{domain.StatusAcknowledged}},
		{Modules: []string{"factures"}, DateRange: &DateRange{End: ptr(day.AddDate(0, 0, 2))}},
	}
	for i, c := range criteria {
		once := Apply(sampleAlerts(), c)
		twice := Apply(once, c)
		assert.Equal(t, ids(once), ids(twice), "criteria #%d", i)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	alerts := sampleAlerts()
	before := ids(alerts)
	_ = Apply(alerts, Criteria{Severities: []domain.Severity{domain.SeverityInfo}})
	assert.Equal(t, before, ids(alerts))
}

func TestApply_SkipsNilAndHandlesNilInput(t *testing.T) {
	assert.Empty(t, Apply(nil, Criteria{}))
	got := Apply([]*domain.Alert{nil, {ID: "x"}}, Criteria{})
	assert.Equal(t, []string{"x"}, ids(got))
}

func TestMatches(t *testing.T) {
	a := sampleAlerts()[0]
	assert.True(t, Matches(a, Criteria{}))
	assert.True(t, Matches(a, Criteria{Severities: []domain.Severity{domain.SeverityCritical}}))
	assert.False(t, Matches(a, Criteria{Statuses: []domain.Status{domain.StatusResolved}}))
	assert.False(t, Matches(nil, Criteria{}))
}

func TestCriteria_ActiveCount(t *testing.T) {
	assert.True(t, Criteria{}.IsEmpty())
	assert.True(t, Criteria{Search: "  ", DateRange: &DateRange{}}.IsEmpty())

	c := Criteria{Search: "x", Sources: []string{"erp"}, DateRange: &DateRange{Start: ptr(day)}}
	assert.Equal(t, 3, c.ActiveCount())
	assert.False(t, c.IsEmpty())
}

func TestCriteria_WithHelpersCopy(t *testing.T) {
	base := Criteria{Search: "a"}
	next := base.WithSearch("b").WithSeverities(domain.SeverityWarning)
	assert.Equal(t, "a", base.Search)
	assert.Empty(t, base.Severities)
	assert.Equal(t, "b", next.Search)
	assert.Equal(t, []domain.Severity{domain.SeverityWarning}, next.Severities)
}
