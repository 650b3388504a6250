package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManagerLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	m := NewManager(path)
	require.NoError(t, m.Load())

	cfg := m.Get()
	require.Equal(t, 1, cfg.Version)
	require.Equal(t, 2, cfg.PollIntervalSeconds)
	require.True(t, cfg.CloseToTray)

	// Defaults are persisted on first load.
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestManagerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	m := NewManager(path)
	require.NoError(t, m.Load())

	cfg := *m.Get()
	cfg.StartProtection = true
	cfg.PollIntervalSeconds = 5
	require.NoError(t, m.Update(&cfg))

	m2 := NewManager(path)
	require.NoError(t, m2.Load())
	require.True(t, m2.Get().StartProtection)
	require.Equal(t, 5, m2.Get().PollIntervalSeconds)
}

func TestManagerUpdateRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	m := NewManager(path)
	require.NoError(t, m.Load())

	cfg := *m.Get()
	cfg.PollIntervalSeconds = 0
	require.Error(t, m.Update(&cfg))

	cfg.PollIntervalSeconds = 4000
	require.Error(t, m.Update(&cfg))
}

func TestAllowedAppsDefaultsWhenMissing(t *testing.T) {
	apps, err := LoadAllowedApps(filepath.Join(t.TempDir(), "allowed_apps.json"))
	require.NoError(t, err)
	require.Equal(t, DefaultAllowedApps, apps)
}

func TestAllowedAppsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "allowed_apps.json")

	require.NoError(t, SaveAllowedApps(path, []string{"chrome", "steam"}))

	apps, err := LoadAllowedApps(path)
	require.NoError(t, err)
	require.Equal(t, []string{"chrome", "steam"}, apps)
}

func TestBlockedSitesMissingFileIsEmpty(t *testing.T) {
	sites, err := LoadBlockedSites(filepath.Join(t.TempDir(), "blocked_sites.json"))
	require.NoError(t, err)
	require.Empty(t, sites)
}

func TestBlockedSitesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocked_sites.json")

	require.NoError(t, SaveBlockedSites(path, []string{"youtube.com", "example.com"}))

	sites, err := LoadBlockedSites(path)
	require.NoError(t, err)
	require.Equal(t, []string{"youtube.com", "example.com"}, sites)
}

func TestListsAreFlatJSONArrays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocked_sites.json")
	require.NoError(t, SaveBlockedSites(path, []string{"example.com"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `["example.com"]`, string(data))
}

func TestCorruptListFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "allowed_apps.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadAllowedApps(path)
	require.Error(t, err)
}
