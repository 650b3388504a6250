// Package core provides the main protection service logic.
package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/user/focus-guard/internal/config"
	"github.com/user/focus-guard/internal/domain"
	"github.com/user/focus-guard/internal/hosts"
	"github.com/user/focus-guard/internal/logger"
	"github.com/user/focus-guard/internal/procguard"
)

// Service is the main protection service. It ties together the hosts
// editor, the process guard and the persisted configuration.
type Service struct {
	mu             sync.RWMutex
	configManager  *config.Manager
	editor         *hosts.Editor
	monitor        *procguard.Monitor
	lastError      error
	statusListener StatusListener
}

// NewService creates a new protection service.
func NewService(configPath string) (*Service, error) {
	// Initialize logger
	logger.Init()
	logger.Info("FocusGuard service initializing...")

	configManager := config.NewManager(configPath)
	if err := configManager.Load(); err != nil {
		logger.Error("Failed to load config: " + err.Error())
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Info("Configuration loaded successfully")

	apps, err := config.LoadAllowedApps(config.AllowedAppsPath())
	if err != nil {
		logger.Error("Failed to load allow-list: " + err.Error())
		return nil, fmt.Errorf("failed to load allow-list: %w", err)
	}

	guard := procguard.New(apps, procguard.NewWindowsSource(logger.Default()), logger.Default())
	monitor := procguard.NewMonitor(guard)
	monitor.SetPollInterval(time.Duration(configManager.Get().PollIntervalSeconds) * time.Second)

	s := &Service{
		configManager: configManager,
		editor:        hosts.NewSystemEditor(logger.Default()),
		monitor:       monitor,
	}

	logger.Info("FocusGuard service initialized")
	return s, nil
}

// SetStatusListener sets a callback that will be called on every status change.
func (s *Service) SetStatusListener(listener StatusListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusListener = listener
}

// Start starts the service.
func (s *Service) Start() error {
	logger.Info("Starting FocusGuard service...")

	// Auto-start protection if configured
	cfg := s.configManager.Get()
	if cfg.StartProtection {
		logger.Info("Start-protection enabled, activating in 2 seconds...")
		go func() {
			defer logger.Recover("autoProtect")
			time.Sleep(2 * time.Second) // Wait for system to settle
			s.StartProtection()
		}()
	}

	logger.Info("FocusGuard service started successfully")
	return nil
}

// Stop stops the service.
func (s *Service) Stop() error {
	logger.Info("Stopping FocusGuard service...")

	s.StopProtection()

	logger.Info("FocusGuard service stopped")
	logger.Close()
	return nil
}

// StartProtection starts the process monitor.
func (s *Service) StartProtection() {
	s.monitor.Start()
	s.broadcastStatus()
}

// StopProtection stops the process monitor.
func (s *Service) StopProtection() {
	s.monitor.Stop()
	s.broadcastStatus()
}

// ProtectionActive reports whether the process monitor is running.
func (s *Service) ProtectionActive() bool {
	return s.monitor.Running()
}

// BlockSite validates a raw site entry, adds it to the hosts file and
// persists it. The canonical hostname is returned.
func (s *Service) BlockSite(raw string) (string, error) {
	res := domain.Validate(raw)
	if !res.Valid {
		return "", fmt.Errorf("invalid site %q: %s", raw, res.Err)
	}

	if err := s.editor.Block(res.Hostname); err != nil {
		s.setError(err)
		return "", err
	}

	if err := s.persistBlockedSites(); err != nil {
		logger.Warning("Failed to persist blocked sites: " + err.Error())
	}

	logger.Info("Blocked site: " + res.Hostname)
	s.broadcastStatus()
	return res.Hostname, nil
}

// UnblockSite removes a hostname from the hosts file and persists the
// updated list.
func (s *Service) UnblockSite(hostname string) error {
	if err := s.editor.Unblock(hostname); err != nil {
		s.setError(err)
		return err
	}

	if err := s.persistBlockedSites(); err != nil {
		logger.Warning("Failed to persist blocked sites: " + err.Error())
	}

	logger.Info("Unblocked site: " + hostname)
	s.broadcastStatus()
	return nil
}

// BlockedSites returns the hostnames currently blocked in the hosts file.
func (s *Service) BlockedSites() ([]string, error) {
	return s.editor.Blocked()
}

// RestoreHosts restores the hosts file from the pre-modification backup.
func (s *Service) RestoreHosts() error {
	if err := s.editor.RestoreFromBackup(); err != nil {
		s.setError(err)
		return err
	}

	if err := s.persistBlockedSites(); err != nil {
		logger.Warning("Failed to persist blocked sites: " + err.Error())
	}

	logger.Info("Hosts file restored from backup")
	s.broadcastStatus()
	return nil
}

// AllowedApps returns the current process allow-list.
func (s *Service) AllowedApps() ([]string, error) {
	return config.LoadAllowedApps(config.AllowedAppsPath())
}

// SetAllowedApps persists a new allow-list and rebuilds the guard with it.
func (s *Service) SetAllowedApps(names []string) error {
	if err := config.SaveAllowedApps(config.AllowedAppsPath(), names); err != nil {
		s.setError(err)
		return err
	}

	s.rebuildGuard(names)
	logger.Info(fmt.Sprintf("Allow-list updated (%d entries)", len(names)))
	s.broadcastStatus()
	return nil
}

// ActionLog returns the guard's recent termination activity.
func (s *Service) ActionLog() []string {
	return s.monitor.Guard().ActionLog()
}

// ClearActionLog discards the guard's recorded activity.
func (s *Service) ClearActionLog() {
	s.monitor.Guard().ClearActionLog()
	s.broadcastStatus()
}

// Config returns the settings manager.
func (s *Service) Config() *config.Manager {
	return s.configManager
}

// UpdateConfig validates and applies new settings, adjusting the poll
// interval on the fly.
func (s *Service) UpdateConfig(cfg *config.Config) error {
	if err := s.configManager.Update(cfg); err != nil {
		return err
	}
	s.monitor.SetPollInterval(time.Duration(cfg.PollIntervalSeconds) * time.Second)
	s.broadcastStatus()
	return nil
}

// rebuildGuard swaps the monitor's guard for one carrying the new
// allow-list, preserving the running state and the action log.
func (s *Service) rebuildGuard(names []string) {
	wasRunning := s.monitor.Running()
	if wasRunning {
		s.monitor.Stop()
	}

	old := s.monitor.Guard()
	guard := procguard.New(names, procguard.NewWindowsSource(logger.Default()), logger.Default())
	guard.AdoptActionLog(old.ActionLog())
	s.monitor.SetGuard(guard)

	if wasRunning {
		s.monitor.Start()
	}
}

// persistBlockedSites mirrors the hosts-file managed section into the
// JSON list so the UI survives restarts.
func (s *Service) persistBlockedSites() error {
	sites, err := s.editor.Blocked()
	if err != nil {
		return err
	}
	return config.SaveBlockedSites(config.BlockedSitesPath(), sites)
}
