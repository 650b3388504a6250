package core

// StatusPayload represents the protection status for UI updates.
type StatusPayload struct {
	ProtectionActive bool
	BlockedSites     []string
	AllowedApps      []string
	LastAction       string
	Error            string
}

// StatusListener is a callback invoked when the protection status changes.
type StatusListener func(status *StatusPayload)

// GetStatusPayload returns the current status.
func (s *Service) GetStatusPayload() *StatusPayload {
	status := &StatusPayload{
		ProtectionActive: s.monitor.Running(),
	}

	if sites, err := s.editor.Blocked(); err == nil {
		status.BlockedSites = sites
	}
	if apps, err := s.AllowedApps(); err == nil {
		status.AllowedApps = apps
	}

	if actions := s.monitor.Guard().ActionLog(); len(actions) > 0 {
		status.LastAction = actions[len(actions)-1]
	}

	s.mu.RLock()
	if s.lastError != nil {
		status.Error = s.lastError.Error()
	}
	s.mu.RUnlock()

	return status
}

// broadcastStatus sends status update to listener.
func (s *Service) broadcastStatus() {
	s.mu.RLock()
	listener := s.statusListener
	s.mu.RUnlock()
	if listener != nil {
		listener(s.GetStatusPayload())
	}
}

// setError records the error and broadcasts status.
func (s *Service) setError(err error) {
	s.mu.Lock()
	s.lastError = err
	s.mu.Unlock()
	s.broadcastStatus()
}
