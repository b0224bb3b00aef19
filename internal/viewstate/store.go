// Package viewstate holds the UI state of the alert center: the active
// navigation path, expanded sidebar nodes, the search text and the open
// modal.
//
// Transitions are unguarded and last write wins. Consistency with the
// navigation tree is the caller's concern.
package viewstate

import (
	"context"
	"log/slog"
	"maps"
	"strconv"
	"sync"
)

// Preference keys mirrored by the store.
const (
	PrefSearch           = "alerts.search"
	PrefSidebarCollapsed = "ui.sidebar_collapsed"
)

// ModalType names the overlay currently shown above the alert list.
type ModalType string

const (
	ModalAlertDetail ModalType = "alert-detail"
	ModalEscalate    ModalType = "escalate"
	ModalFilters     ModalType = "filters"
	ModalHelp        ModalType = "help"
)

// Modal is an open overlay and whatever it was opened with.
type Modal struct {
	Type    ModalType
	Payload any
}

// State is the full UI state. Values returned by Store.Snapshot are copies.
type State struct {
	ActiveCategoryID       string
	ActiveSubCategoryID    string
	ActiveSubSubCategoryID string
	ExpandedNodeIDs        map[string]bool
	SidebarCollapsed       bool
	Search                 string
	OpenModal              *Modal
}

// PreferenceStore persists small string values between sessions.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Store owns a State and notifies subscribers after every change.
type Store struct {
	mu     sync.Mutex
	state  State
	prefs  PreferenceStore
	logger *slog.Logger
	subs   map[int]func(State)
	nextID int
}

// NewStore returns an empty store. A nil prefs keeps everything in memory;
// a nil logger discards logs.
func NewStore(prefs PreferenceStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		state:  State{ExpandedNodeIDs: map[string]bool{}},
		prefs:  prefs,
		logger: logger,
		subs:   map[int]func(State){},
	}
}

// Load restores the remembered search and sidebar flag. Missing or
// unreadable preferences leave the defaults in place.
func (s *Store) Load(ctx context.Context) {
	if s.prefs == nil {
		return
	}
	search, err := s.prefs.Get(ctx, PrefSearch)
	if err != nil {
		s.logger.Debug("preference unavailable", "key", PrefSearch, "error", err)
		search = ""
	}
	collapsed := false
	if raw, err := s.prefs.Get(ctx, PrefSidebarCollapsed); err != nil {
		s.logger.Debug("preference unavailable", "key", PrefSidebarCollapsed, "error", err)
	} else if b, perr := strconv.ParseBool(raw); perr == nil {
		collapsed = b
	}

	s.update(func(st *State) {
		st.Search = search
		st.SidebarCollapsed = collapsed
	})
}

// Navigate sets the active path. An empty level clears every deeper level.
func (s *Store) Navigate(category, sub, subsub string) {
	if category == "" {
		sub = ""
	}
	if sub == "" {
		subsub = ""
	}
	s.update(func(st *State) {
		st.ActiveCategoryID = category
		st.ActiveSubCategoryID = sub
		st.ActiveSubSubCategoryID = subsub
	})
}

// NavigatePath is Navigate for a root-to-node id chain of any length up to
// three. Extra ids are ignored.
func (s *Store) NavigatePath(ids []string) {
	var lv [3]string
	copy(lv[:], ids)
	s.Navigate(lv[0], lv[1], lv[2])
}

// ActivePath returns the non-empty active ids from the category down.
func (s *Store) ActivePath() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return activePath(s.state)
}

// ActiveLeafID returns the deepest active id, or "" when nothing is active.
func (s *Store) ActiveLeafID() string {
	p := s.ActivePath()
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

func activePath(st State) []string {
	var p []string
	for _, id := range []string{st.ActiveCategoryID, st.ActiveSubCategoryID, st.ActiveSubSubCategoryID} {
		if id == "" {
			break
		}
		p = append(p, id)
	}
	return p
}

// ToggleNode flips the expanded flag of a sidebar node.
func (s *Store) ToggleNode(id string) {
	s.update(func(st *State) {
		if st.ExpandedNodeIDs[id] {
			delete(st.ExpandedNodeIDs, id)
		} else {
			st.ExpandedNodeIDs[id] = true
		}
	})
}

// ToggleSidebar flips the sidebar and remembers the choice.
func (s *Store) ToggleSidebar() {
	var collapsed bool
	s.update(func(st *State) {
		st.SidebarCollapsed = !st.SidebarCollapsed
		collapsed = st.SidebarCollapsed
	})
	s.persist(PrefSidebarCollapsed, strconv.FormatBool(collapsed))
}

// OpenModal replaces any open modal.
func (s *Store) OpenModal(t ModalType, payload any) {
	s.update(func(st *State) {
		st.OpenModal = &Modal{Type: t, Payload: payload}
	})
}

// CloseModal is a no-op when nothing is open, but subscribers are still
// notified.
func (s *Store) CloseModal() {
	s.update(func(st *State) {
		st.OpenModal = nil
	})
}

// SetSearch stores the search text verbatim and remembers it.
func (s *Store) SetSearch(q string) {
	s.update(func(st *State) {
		st.Search = q
	})
	s.persist(PrefSearch, q)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.state)
}

// Subscribe registers fn to receive a snapshot after every transition.
// The returned func removes it and may be called more than once.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) update(mutate func(st *State)) {
	s.mu.Lock()
	mutate(&s.state)
	snap := snapshot(s.state)
	subs := make([]func(State), 0, len(s.subs))
	for i := 0; i < s.nextID; i++ {
		if fn, ok := s.subs[i]; ok {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot(snap))
	}
}

func (s *Store) persist(key, value string) {
	if s.prefs == nil {
		return
	}
	if err := s.prefs.Set(context.Background(), key, value); err != nil {
		s.logger.Debug("preference not saved", "key", key, "error", err)
	}
}

func snapshot(st State) State {
	st.ExpandedNodeIDs = maps.Clone(st.ExpandedNodeIDs)
	if st.ExpandedNodeIDs == nil {
		st.ExpandedNodeIDs = map[string]bool{}
	}
	if st.OpenModal != nil {
		m := *st.OpenModal
		st.OpenModal = &m
	}
	return st
}
