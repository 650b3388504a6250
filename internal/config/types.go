// Package config handles FocusGuard settings and the persisted allow/block
// lists.
package config

// Config represents the application settings.
type Config struct {
	Version int `yaml:"version"`
	// StartProtection starts the process guard as soon as the app launches.
	StartProtection bool `yaml:"start_protection"`
	// PollIntervalSeconds is how often running processes are scanned.
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
	// CloseToTray keeps the app running in the tray when the dashboard
	// window is closed.
	CloseToTray bool `yaml:"close_to_tray"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version:             1,
		StartProtection:     false,
		PollIntervalSeconds: 2,
		CloseToTray:         true,
	}
}
