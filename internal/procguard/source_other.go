//go:build !windows

package procguard

import (
	"errors"
	"time"

	"github.com/user/focus-guard/internal/logger"
)

// WindowsSource is only functional on Windows; elsewhere every operation
// reports that enumeration is unsupported.
type WindowsSource struct {
	log logger.Logger
}

// NewWindowsSource creates a source backed by the live system.
func NewWindowsSource(log logger.Logger) *WindowsSource {
	if log == nil {
		log = logger.Nop()
	}
	return &WindowsSource{log: log}
}

func (s *WindowsSource) Processes() ([]Process, error) {
	return nil, errors.New("process enumeration is only supported on Windows")
}

func (s *WindowsSource) Lookup(uint32) (string, bool) {
	return "", false
}

func (s *WindowsSource) Kill(uint32, time.Duration) (bool, error) {
	return false, errors.New("process termination is only supported on Windows")
}
