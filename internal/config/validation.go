package config

import "fmt"

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Version < 1 {
		return fmt.Errorf("invalid config version")
	}
	if c.PollIntervalSeconds < 1 || c.PollIntervalSeconds > 3600 {
		return fmt.Errorf("poll_interval_seconds must be between 1 and 3600")
	}
	return nil
}
