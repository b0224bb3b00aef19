package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/bmo/internal/domain"
	"github.com/alexanderramin/bmo/internal/navtree"
	"github.com/alexanderramin/bmo/internal/service"
	"github.com/alexanderramin/bmo/internal/viewstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUI_DashboardLoadsOnStartup(t *testing.T) {
	d := NewTestDriver(t, testApp(t, centerAlerts()...))

	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen())

	view := d.PlainView()
	assert.NotContains(t, view, "Loading...")
	assert.Contains(t, view, "KPIS")
	assert.Contains(t, view, "Facture F-118 bloquée")
	assert.Contains(t, view, "BC-77 sans visa")
	assert.NotContains(t, view, "Délai avenant dépassé", "only critical alerts are listed")
}

func TestTUI_DashboardNothingCritical(t *testing.T) {
	d := NewTestDriver(t, testApp(t))
	assert.True(t, d.ViewContains("Nothing critical."))
}

func TestTUI_QuitWithQ(t *testing.T) {
	d := NewTestDriver(t, testApp(t))
	d.Press("q")
	assert.True(t, d.IsQuitting())
}

func TestTUI_QuitWithCtrlC(t *testing.T) {
	d := NewTestDriver(t, testApp(t))
	d.PressCtrlC()
	assert.True(t, d.IsQuitting())
}

func TestTUI_OpenAlertsSelectsDefaultNode(t *testing.T) {
	d := NewTestDriver(t, testApp(t, centerAlerts()...))

	d.Press("l")

	assert.Equal(t, ViewAlerts, d.ActiveViewID())
	assert.Equal(t, navtree.DefaultNodeID, d.State().Store.ActiveLeafID())
	assert.True(t, d.ViewContains("4 alert(s)"), "the overview hides archived alerts")
	assert.True(t, d.ViewContains("Vue d'ensemble"))
}

func TestTUI_DashboardCriticalShortcut(t *testing.T) {
	d := NewTestDriver(t, testApp(t, centerAlerts()...))

	d.Press("c")

	assert.Equal(t, ViewAlerts, d.ActiveViewID())
	st := d.Snapshot()
	assert.Equal(t, navtree.NodeEnCours, st.ActiveCategoryID)
	assert.Equal(t, navtree.NodeEnCoursCritiques, st.ActiveSubCategoryID)
	assert.True(t, d.ViewContains("2 alert(s)"))
	assert.True(t, d.ViewContains("En cours › Critiques"))
}

func TestTUI_SidebarSelectionUpdatesState(t *testing.T) {
	d := NewTestDriver(t, testApp(t, centerAlerts()...))
	d.Press("l")

	d.PressTab()
	d.PressDown()
	d.PressEnter()

	st := d.Snapshot()
	assert.Equal(t, navtree.NodeEnCours, st.ActiveCategoryID)
	assert.Empty(t, st.ActiveSubCategoryID)
	assert.True(t, st.ExpandedNodeIDs[navtree.NodeEnCours], "selecting a parent expands it")
	assert.True(t, d.ViewContains("3 alert(s)"))

	d.PressDown()
	d.PressEnter()

	st = d.Snapshot()
	assert.Equal(t, navtree.NodeEnCoursCritiques, st.ActiveSubCategoryID)
	assert.True(t, d.ViewContains("2 alert(s)"))

	d.PressLeft()
	assert.False(t, d.Snapshot().ExpandedNodeIDs[navtree.NodeEnCoursCritiques])
}

func TestTUI_StaleSelectionShowsEverything(t *testing.T) {
	app := testApp(t, centerAlerts()...)
	app.State.Navigate("rubrique-supprimee", "", "")
	d := NewTestDriver(t, app)

	d.Press("l")

	assert.True(t, d.ViewContains("Unknown navigation entry"))
	assert.True(t, d.ViewContains("5 alert(s)"))
}

func TestTUI_SearchIsRemembered(t *testing.T) {
	app := testApp(t, centerAlerts()...)
	d := NewTestDriver(t, app)
	d.Press("l")

	d.Press("/")
	d.Type("avenant")
	d.PressEnter()

	assert.Equal(t, "avenant", d.Snapshot().Search)
	assert.True(t, d.ViewContains("1 alert(s)"))
	saved, err := app.Prefs.Get(context.Background(), viewstate.PrefSearch)
	require.NoError(t, err)
	assert.Equal(t, "avenant", saved)
}

func TestTUI_SearchCapturesQuitKey(t *testing.T) {
	d := NewTestDriver(t, testApp(t, centerAlerts()...))
	d.Press("l")

	d.Press("/")
	d.Type("q")

	assert.False(t, d.IsQuitting())
	assert.Equal(t, "q", d.Snapshot().Search)

	d.PressEsc()
	assert.Empty(t, d.Snapshot().Search, "esc clears the search")
	assert.Equal(t, ViewAlerts, d.ActiveViewID(), "esc in the search box does not leave the view")
}

func TestTUI_SearchRestoredFromStore(t *testing.T) {
	app := testApp(t, centerAlerts()...)
	app.State.SetSearch("visa")
	d := NewTestDriver(t, app)

	d.Press("l")

	assert.True(t, d.ViewContains("1 alert(s)"))
	assert.True(t, d.ViewContains("BC-77 sans visa"))
}

func TestTUI_ToggleSidebar(t *testing.T) {
	app := testApp(t, centerAlerts()...)
	d := NewTestDriver(t, app)
	d.Press("l")
	require.True(t, d.ViewContains("Archives"))

	d.Press("b")

	assert.True(t, d.Snapshot().SidebarCollapsed)
	assert.False(t, d.ViewContains("Archives"))
	saved, err := app.Prefs.Get(context.Background(), viewstate.PrefSidebarCollapsed)
	require.NoError(t, err)
	assert.Equal(t, "true", saved)
}

func TestTUI_SeverityCycle(t *testing.T) {
	d := NewTestDriver(t, testApp(t, centerAlerts()...))
	d.Press("l")

	d.Press("s")
	assert.True(t, d.ViewContains("2 alert(s)"), "critical first")

	d.Press("s")
	assert.True(t, d.ViewContains("1 alert(s)"), "then warning")

	d.Press("c")
	assert.True(t, d.ViewContains("4 alert(s)"))
}

func TestTUI_DetailOpensModal(t *testing.T) {
	d := NewTestDriver(t, testApp(t, centerAlerts()...))
	d.Press("l")

	d.PressEnter()

	assert.Equal(t, ViewDetail, d.ActiveViewID())
	st := d.Snapshot()
	require.NotNil(t, st.OpenModal)
	assert.Equal(t, viewstate.ModalAlertDetail, st.OpenModal.Type)
	assert.Equal(t, "fac-118", st.OpenModal.Payload)
	assert.True(t, d.ViewContains("Facture F-118 bloquée"))

	d.PressEsc()

	assert.Equal(t, ViewAlerts, d.ActiveViewID())
	assert.Nil(t, d.Snapshot().OpenModal)
}

func TestTUI_AcknowledgeFromList(t *testing.T) {
	app := testApp(t, centerAlerts()...)
	d := NewTestDriver(t, app)
	d.Press("l")

	d.Press("a")

	a, err := app.Alerts.Get(context.Background(), "fac-118")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAcknowledged, a.Status)
	assert.Contains(t, d.Notice(), "Acknowledged: Facture F-118 bloquée")
	assert.True(t, d.ViewContains("Acknowledged"))
}

func TestTUI_ActionErrorIsReported(t *testing.T) {
	app := testApp(t, centerAlerts()...)
	d := NewTestDriver(t, app)
	d.Press("l")
	d.PressDown()
	d.PressDown()
	d.PressDown()

	d.Press("a")

	assert.Contains(t, d.Notice(), "cannot acknowledge resolved alert")
}

func TestTUI_EscalateFormCancel(t *testing.T) {
	app := testApp(t, centerAlerts()...)
	d := NewTestDriver(t, app)
	d.Press("l")
	d.PressEnter()

	d.Press("e")

	assert.Equal(t, ViewForm, d.ActiveViewID())
	require.NotNil(t, d.Snapshot().OpenModal)
	assert.Equal(t, viewstate.ModalEscalate, d.Snapshot().OpenModal.Type)
	assert.True(t, d.ViewContains("Escalate to"))

	d.PressEsc()

	assert.Equal(t, ViewDetail, d.ActiveViewID())
	assert.Equal(t, viewstate.ModalAlertDetail, d.Snapshot().OpenModal.Type)
	assert.Contains(t, d.Notice(), "Cancelled.")

	a, err := app.Alerts.Get(context.Background(), "fac-118")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, a.Status)
}

func TestTUI_ResolveWithNote(t *testing.T) {
	app := testApp(t, centerAlerts()...)
	d := NewTestDriver(t, app)
	d.Press("l")
	d.PressEnter()

	d.Press("R")
	require.Equal(t, ViewForm, d.ActiveViewID())
	d.Type("paiement débloqué")
	d.PressEnter()

	assert.Equal(t, ViewDetail, d.ActiveViewID())
	a, err := app.Alerts.Get(context.Background(), "fac-118")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusResolved, a.Status)
	assert.Equal(t, "paiement débloqué", a.Note)
	assert.Contains(t, d.Notice(), "Resolved")
}

func TestTUI_EscalateSubmit(t *testing.T) {
	app := testApp(t, centerAlerts()...)
	d := NewTestDriver(t, app)
	d.Press("l")
	d.PressEnter()

	d.Press("e")
	d.Type("direction.juridique")
	d.PressEnter()

	assert.NotEqual(t, ViewForm, d.ActiveViewID())
	a, err := app.Alerts.Get(context.Background(), "fac-118")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEscalated, a.Status)
	assert.Equal(t, "direction.juridique", a.EscalatedTo)
}

func TestTUI_HelpModal(t *testing.T) {
	d := NewTestDriver(t, testApp(t))

	d.Press("?")
	assert.Equal(t, ViewHelp, d.ActiveViewID())
	assert.Equal(t, viewstate.ModalHelp, d.Snapshot().OpenModal.Type)

	d.PressEsc()
	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.Nil(t, d.Snapshot().OpenModal)
}

func TestTUI_FeedImportedRefreshes(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app)
	require.True(t, d.ViewContains("Nothing critical."))

	_, err := app.Imports.Import(context.Background(), centerAlerts())
	require.NoError(t, err)
	d.Send(feedImportedMsg{result: &service.ImportResult{Path: "alerts.yaml", Created: 5}})

	assert.Contains(t, d.Notice(), "Imported 5 alert(s) from alerts.yaml")
	assert.True(t, d.ViewContains("Facture F-118 bloquée"))
}

func TestStartFeedRefresh(t *testing.T) {
	app := testApp(t)

	stop, err := startFeedRefresh(context.Background(), app, func(feedImportedMsg) {})
	require.NoError(t, err)
	stop()

	app.Config.Feed.Path = "alerts.yaml"
	app.Config.Feed.Schedule = "every now and then"
	_, err = startFeedRefresh(context.Background(), app, func(feedImportedMsg) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid feed schedule")

	app.Config.Feed.Schedule = "@every 1h"
	stop, err = startFeedRefresh(context.Background(), app, func(feedImportedMsg) {})
	require.NoError(t, err)
	stop()
}
