// Package ui provides the system tray UI for FocusGuard.
package ui

import (
	"fmt"
	"log"

	"fyne.io/systray"

	"github.com/user/focus-guard/internal/config"
	"github.com/user/focus-guard/internal/core"
	"github.com/user/focus-guard/internal/logger"
)

var (
	service          *core.Service
	protectionActive bool = false
	dashboardOpen    bool = false

	// Systray menu items
	mStatus    *systray.MenuItem
	mStart     *systray.MenuItem
	mStop      *systray.MenuItem
	mDashboard *systray.MenuItem
	mQuit      *systray.MenuItem
)

// Run starts the combined protection + UI application
func Run() {
	// Initialize logger
	logger.Init()
	logger.Info("FocusGuard starting (combined mode)")

	// Create the protection service
	var err error
	service, err = core.NewService(config.GetConfigPath())
	if err != nil {
		log.Fatalf("Failed to create protection service: %v", err)
	}

	// Set status listener — UI will be updated on every state change
	service.SetStatusListener(func(status *core.StatusPayload) {
		updateUI(status)
	})

	// Start the service (handles auto-start protection if configured)
	if err := service.Start(); err != nil {
		log.Fatalf("Failed to start protection service: %v", err)
	}

	// Start systray (blocks until quit)
	systray.Run(onReady, onExit)
}

// onReady is called when systray is ready
func onReady() {
	// Set icon
	systray.SetIcon(GetIcon("inactive"))
	systray.SetTitle("FocusGuard")
	systray.SetTooltip("FocusGuard — Protection off")

	// Left click on tray icon opens the dashboard
	systray.SetOnTapped(func() {
		go openDashboard()
	})

	// Create menu items
	mStatus = systray.AddMenuItem("Status: Protection off", "")
	mStatus.Disable()

	systray.AddSeparator()

	mStart = systray.AddMenuItem("Start protection", "")
	mStop = systray.AddMenuItem("Stop protection", "")
	mStop.Disable()

	systray.AddSeparator()

	mDashboard = systray.AddMenuItem("Dashboard", "")

	systray.AddSeparator()

	mQuit = systray.AddMenuItem("Quit", "")

	// Refresh initial status from service
	updateUI(service.GetStatusPayload())

	// Handle menu clicks
	go func() {
		defer logger.Recover("systray-menu-loop")
		for {
			select {
			case <-mStart.ClickedCh:
				go doStart()
			case <-mStop.ClickedCh:
				go doStop()
			case <-mDashboard.ClickedCh:
				go openDashboard()
			case <-mQuit.ClickedCh:
				systray.Quit()
				return
			}
		}
	}()
}

// onExit is called when systray exits
func onExit() {
	logger.Info("FocusGuard shutting down")
	if service != nil {
		service.Stop()
	}
	logger.Close()
}

func doStart() {
	defer logger.Recover("doStart")
	logger.Info("User started protection")
	service.StartProtection()
}

func doStop() {
	defer logger.Recover("doStop")
	logger.Info("User stopped protection")
	service.StopProtection()
}

func updateUI(status *core.StatusPayload) {
	defer logger.Recover("updateUI")

	if status == nil {
		return
	}

	prevActive := protectionActive
	protectionActive = status.ProtectionActive

	// Log state changes
	if prevActive != protectionActive {
		if protectionActive {
			logger.Info("Protection activated (%d blocked sites, %d allowed apps)",
				len(status.BlockedSites), len(status.AllowedApps))
		} else {
			logger.Info("Protection deactivated")
		}
	}

	switch {
	case status.Error != "":
		mStatus.SetTitle(fmt.Sprintf("Status: Error — %s", status.Error))
		systray.SetTooltip(fmt.Sprintf("FocusGuard — Error\n%s", status.Error))
		systray.SetIcon(GetIcon("error"))

	case protectionActive:
		mStatus.SetTitle(fmt.Sprintf("Status: Protection on (%d sites blocked)", len(status.BlockedSites)))
		systray.SetTooltip(fmt.Sprintf("FocusGuard — Protection on\nBlocked sites: %d\nAllowed apps: %d",
			len(status.BlockedSites), len(status.AllowedApps)))
		systray.SetIcon(GetIcon("active"))
		mStart.Disable()
		mStop.Enable()

	default:
		mStatus.SetTitle("Status: Protection off")
		systray.SetTooltip("FocusGuard — Protection off")
		systray.SetIcon(GetIcon("inactive"))
		mStart.Enable()
		mStop.Disable()
	}

	// Update dashboard if open
	RefreshDashboard(status)
}

func openDashboard() {
	if dashboardOpen {
		return
	}
	dashboardOpen = true

	go func() {
		defer logger.Recover("openDashboard")
		defer func() {
			dashboardOpen = false
		}()
		ShowDashboard()
	}()
}

func clearLogFile() {
	logger.ClearLogs()
}

func showError(message string) {
	log.Printf("Error: %s", message)
}
