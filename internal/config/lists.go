package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// The allow/block lists are stored as flat JSON string arrays. The format
// is shared with existing installations and must not change.

// DefaultAllowedApps is the starter allow-list written on first run.
// Process names are extensionless, matching what the guard observes.
var DefaultAllowedApps = []string{
	"chrome",
	"firefox",
	"msedge",
	"notepad",
	"calc",
	"winword",
	"excel",
	"code",
}

// LoadAllowedApps reads the JSON allow-list. A missing file yields the
// default set.
func LoadAllowedApps(path string) ([]string, error) {
	names, err := loadStringList(path)
	if err != nil {
		if os.IsNotExist(err) {
			return append([]string(nil), DefaultAllowedApps...), nil
		}
		return nil, err
	}
	return names, nil
}

// SaveAllowedApps persists the allow-list.
func SaveAllowedApps(path string, names []string) error {
	return saveStringList(path, names)
}

// LoadBlockedSites reads the JSON list of blocked hostnames. A missing
// file means nothing has been blocked yet.
func LoadBlockedSites(path string) ([]string, error) {
	sites, err := loadStringList(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return sites, nil
}

// SaveBlockedSites persists the blocked-hostname list.
func SaveBlockedSites(path string, sites []string) error {
	return saveStringList(path, sites)
}

func loadStringList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return items, nil
}

func saveStringList(path string, items []string) error {
	if items == nil {
		items = []string{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create list directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
