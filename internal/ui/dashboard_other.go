//go:build !windows

package ui

import (
	"github.com/user/focus-guard/internal/core"
	"github.com/user/focus-guard/internal/logger"
)

// ShowDashboard is Windows-only; elsewhere it just points at the config
// files.
func ShowDashboard() {
	logger.Info("Dashboard GUI is only available on Windows; edit the config files directly")
}

// RefreshDashboard is a no-op without a GUI dashboard.
func RefreshDashboard(_ *core.StatusPayload) {}
