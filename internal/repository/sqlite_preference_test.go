package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/bmo/internal/testutil"
	"github.com/alexanderramin/bmo/internal/viewstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ viewstate.PreferenceStore = (*SQLitePreferenceRepo)(nil)

func TestPreferenceRepo_SetGetOverwrite(t *testing.T) {
	repo := NewSQLitePreferenceRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, viewstate.PrefSearch, "facture"))
	v, err := repo.Get(ctx, viewstate.PrefSearch)
	require.NoError(t, err)
	assert.Equal(t, "facture", v)

	require.NoError(t, repo.Set(ctx, viewstate.PrefSearch, ""))
	v, err = repo.Get(ctx, viewstate.PrefSearch)
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestPreferenceRepo_GetMissing(t *testing.T) {
	repo := NewSQLitePreferenceRepo(testutil.NewTestDB(t))
	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPreferenceRepo_ListAndDelete(t *testing.T) {
	repo := NewSQLitePreferenceRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "ui.sidebar_collapsed", "true"))
	require.NoError(t, repo.Set(ctx, "alerts.search", "avenant"))

	prefs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, prefs, 2)
	assert.Equal(t, "alerts.search", prefs[0].Key)
	assert.Equal(t, "ui.sidebar_collapsed", prefs[1].Key)
	assert.False(t, prefs[0].UpdatedAt.IsZero())

	require.NoError(t, repo.Delete(ctx, "alerts.search"))
	assert.ErrorIs(t, repo.Delete(ctx, "alerts.search"), ErrNotFound)

	prefs, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, prefs, 1)
}

func TestPreferenceRepo_BacksViewStateStore(t *testing.T) {
	repo := NewSQLitePreferenceRepo(testutil.NewTestDB(t))

	s := viewstate.NewStore(repo, nil)
	s.SetSearch("substitution")
	s.ToggleSidebar()

	restored := viewstate.NewStore(repo, nil)
	restored.Load(context.Background())
	st := restored.Snapshot()
	assert.Equal(t, "substitution", st.Search)
	assert.True(t, st.SidebarCollapsed)
}
