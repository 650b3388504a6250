//go:build !windows

package hosts

import (
	"github.com/user/focus-guard/internal/elevate"
	"github.com/user/focus-guard/internal/logger"
)

// SystemHostsPath returns the hosts file location on this machine.
func SystemHostsPath() string {
	return "/etc/hosts"
}

// NewSystemEditor returns an Editor bound to the system hosts file. There
// is no resolver cache to flush on non-Windows platforms.
func NewSystemEditor(log logger.Logger) *Editor {
	return NewEditor(Options{
		HostsPath: SystemHostsPath(),
		Privilege: elevate.IsAdmin,
		Log:       log,
	})
}
