package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(Dir(), "bmo.db"), cfg.Database.Path)
	assert.Equal(t, filepath.Join(Dir(), "bmo.log"), cfg.Log.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 30, cfg.UI.SidebarWidth)
	assert.Empty(t, cfg.Feed.Path)
	assert.False(t, cfg.Feed.Watch)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/bmo-test.db
log:
  level: DEBUG
feed:
  path: /srv/feeds/alerts.yaml
  watch: true
  schedule: "@every 10m"
ui:
  sidebar_width: 42
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/bmo-test.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/srv/feeds/alerts.yaml", cfg.Feed.Path)
	assert.True(t, cfg.Feed.Watch)
	assert.Equal(t, "@every 10m", cfg.Feed.Schedule)
	assert.Equal(t, 42, cfg.UI.SidebarWidth)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "log:\n  level: warn\n")
	t.Setenv("BMO_LOG_LEVEL", "error")
	t.Setenv("BMO_UI_SIDEBAR_WIDTH", "25")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, 25, cfg.UI.SidebarWidth)
}

func TestLoad_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := writeConfig(t, "database:\n  path: ~/data/bmo.db\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data", "bmo.db"), cfg.Database.Path)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Path: "bmo.db"},
			Log:      LogConfig{Level: "info"},
			UI:       UIConfig{SidebarWidth: 30},
		}
	}
	require.NoError(t, Validate(valid()))

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"empty db path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"zero width", func(c *Config) { c.UI.SidebarWidth = 0 }, "ui.sidebar_width"},
		{"watch without path", func(c *Config) { c.Feed.Watch = true }, "feed.watch"},
		{"schedule without path", func(c *Config) { c.Feed.Schedule = "@hourly" }, "feed.schedule"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := Validate(c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
