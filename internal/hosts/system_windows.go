//go:build windows

package hosts

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/user/focus-guard/internal/elevate"
	"github.com/user/focus-guard/internal/logger"
	"github.com/user/focus-guard/internal/procutil"
)

// SystemHostsPath returns the hosts file location on this machine.
func SystemHostsPath() string {
	root := os.Getenv("SystemRoot")
	if root == "" {
		root = `C:\Windows`
	}
	return filepath.Join(root, "System32", "drivers", "etc", "hosts")
}

// NewSystemEditor returns an Editor bound to the real system hosts file,
// with the elevation check and resolver-cache flush wired in.
func NewSystemEditor(log logger.Logger) *Editor {
	return NewEditor(Options{
		HostsPath: SystemHostsPath(),
		Privilege: elevate.IsAdmin,
		FlushDNS:  FlushDNS,
		Log:       log,
	})
}

// FlushDNS flushes the Windows resolver cache.
func FlushDNS() error {
	cmd := procutil.HideWindow(exec.Command("ipconfig", "/flushdns"))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to flush DNS cache: %w: %s", err, string(out))
	}
	return nil
}
