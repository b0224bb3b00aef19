package cli

import (
	"github.com/alexanderramin/bmo/internal/navtree"
	"github.com/alexanderramin/bmo/internal/viewstate"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App   *App
	Store *viewstate.Store

	// Terminal dimensions
	Width  int
	Height int
}

func newSharedState(app *App) *SharedState {
	store := app.State
	if store == nil {
		store = viewstate.NewStore(nil, app.logger())
	}
	return &SharedState{App: app, Store: store}
}

// ActiveNode returns the deepest selected nav node, or nil when nothing
// valid is selected.
func (s *SharedState) ActiveNode() *navtree.NavNode {
	leaf := s.Store.ActiveLeafID()
	if leaf == "" {
		return nil
	}
	return navtree.FindByID(navtree.AlertsTree(), leaf)
}

// ActiveTrail returns the labels from the root to the active node. A stale
// or unknown selection yields nil.
func (s *SharedState) ActiveTrail() []navtree.NavNode {
	leaf := s.Store.ActiveLeafID()
	if leaf == "" {
		return nil
	}
	return navtree.PathTo(navtree.AlertsTree(), leaf)
}

// SelectNode makes id the active navigation node, setting every level of
// its path. Unknown ids fall back to the default node.
func (s *SharedState) SelectNode(id string) {
	path := navtree.PathTo(navtree.AlertsTree(), id)
	if len(path) == 0 {
		path = navtree.PathTo(navtree.AlertsTree(), navtree.DefaultNodeID)
	}
	ids := make([]string, len(path))
	for i, n := range path {
		ids[i] = n.ID
	}
	s.Store.NavigatePath(ids)
}

// ContentHeight returns the rows left for view content once the header
// (title + separator) and status bar (separator + hints + notice) are drawn.
func (s *SharedState) ContentHeight() int {
	return max(s.Height-5, 1)
}
