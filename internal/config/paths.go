package config

import (
	"os"
	"path/filepath"
)

// GetConfigPath returns the settings path next to the executable.
func GetConfigPath() string {
	return pathNextToExe("config.yaml")
}

// AllowedAppsPath returns the JSON allow-list path next to the executable.
func AllowedAppsPath() string {
	return pathNextToExe("allowed_apps.json")
}

// BlockedSitesPath returns the JSON blocked-sites path next to the
// executable.
func BlockedSitesPath() string {
	return pathNextToExe("blocked_sites.json")
}

func pathNextToExe(name string) string {
	exe, err := os.Executable()
	if err != nil {
		return name // fallback: current directory
	}
	return filepath.Join(filepath.Dir(exe), name)
}
