//go:build windows

package ui

import (
	"strconv"
	"strings"

	"fyne.io/systray"
	"github.com/lxn/walk"
	. "github.com/lxn/walk/declarative"

	"github.com/user/focus-guard/internal/core"
)

var dashboardMW *walk.MainWindow

// ShowDashboard displays the dashboard window (Windows — lxn/walk GUI).
func ShowDashboard() {
	var mw *walk.MainWindow

	// Widget references
	var siteEdit *walk.LineEdit
	var siteList *walk.ListBox
	var appEdit *walk.LineEdit
	var appList *walk.ListBox
	var activityEdit *walk.TextEdit
	var logsTextEdit *walk.TextEdit
	var startCheck, trayCheck *walk.CheckBox
	var pollEdit *walk.LineEdit

	windowIcon := createWindowIcon()

	refreshSites := func() {
		sites, err := service.BlockedSites()
		if err != nil {
			showError("Failed to read blocked sites: " + err.Error())
			return
		}
		siteList.SetModel(sites)
	}

	refreshApps := func() {
		apps, err := service.AllowedApps()
		if err != nil {
			showError("Failed to read allow-list: " + err.Error())
			return
		}
		appList.SetModel(apps)
	}

	refreshActivity := func() {
		entries := service.ActionLog()
		if len(entries) == 0 {
			activityEdit.SetText("No activity yet.")
			return
		}
		activityEdit.SetText(strings.Join(entries, "\r\n"))
	}

	MainWindow{
		AssignTo: &mw,
		Title:    "FocusGuard — Dashboard",
		MinSize:  Size{Width: 520, Height: 460},
		Size:     Size{Width: 560, Height: 500},
		Layout:   VBox{MarginsZero: true},
		Children: []Widget{
			TabWidget{
				Pages: []TabPage{
					// Blocked websites tab
					{
						Title:  "Websites",
						Layout: VBox{Margins: Margins{Left: 10, Top: 10, Right: 10, Bottom: 10}},
						Children: []Widget{
							Composite{
								Layout: HBox{MarginsZero: true},
								Children: []Widget{
									LineEdit{
										AssignTo:    &siteEdit,
										ToolTipText: "e.g. youtube.com or https://www.reddit.com/r/all",
									},
									PushButton{
										Text:    "Block",
										MaxSize: Size{Width: 70, Height: 0},
										OnClicked: func() {
											raw := siteEdit.Text()
											if strings.TrimSpace(raw) == "" {
												return
											}
											if _, err := service.BlockSite(raw); err != nil {
												walk.MsgBox(mw, "Error", err.Error(), walk.MsgBoxIconError)
												return
											}
											siteEdit.SetText("")
											refreshSites()
										},
									},
								},
							},
							ListBox{AssignTo: &siteList},
							Composite{
								Layout: HBox{MarginsZero: true},
								Children: []Widget{
									PushButton{
										Text: "Unblock selected",
										OnClicked: func() {
											idx := siteList.CurrentIndex()
											sites, err := service.BlockedSites()
											if err != nil || idx < 0 || idx >= len(sites) {
												return
											}
											if err := service.UnblockSite(sites[idx]); err != nil {
												walk.MsgBox(mw, "Error", err.Error(), walk.MsgBoxIconError)
												return
											}
											refreshSites()
										},
									},
									HSpacer{},
									PushButton{
										Text: "Restore hosts file",
										OnClicked: func() {
											if walk.MsgBox(mw, "Restore hosts file",
												"Restore the hosts file from the backup taken before the first block?",
												walk.MsgBoxYesNo|walk.MsgBoxIconQuestion) != walk.DlgCmdYes {
												return
											}
											if err := service.RestoreHosts(); err != nil {
												walk.MsgBox(mw, "Error", err.Error(), walk.MsgBoxIconError)
												return
											}
											refreshSites()
										},
									},
								},
							},
						},
					},
					// Allowed applications tab
					{
						Title:  "Applications",
						Layout: VBox{Margins: Margins{Left: 10, Top: 10, Right: 10, Bottom: 10}},
						Children: []Widget{
							Label{Text: "Applications on this list survive active protection. Everything else with a window gets closed."},
							Composite{
								Layout: HBox{MarginsZero: true},
								Children: []Widget{
									LineEdit{
										AssignTo:    &appEdit,
										ToolTipText: "Process name without extension, e.g. chrome",
									},
									PushButton{
										Text:    "Allow",
										MaxSize: Size{Width: 70, Height: 0},
										OnClicked: func() {
											name := strings.TrimSpace(appEdit.Text())
											if name == "" {
												return
											}
											apps, err := service.AllowedApps()
											if err != nil {
												return
											}
											for _, a := range apps {
												if strings.EqualFold(a, name) {
													return
												}
											}
											if err := service.SetAllowedApps(append(apps, name)); err != nil {
												walk.MsgBox(mw, "Error", err.Error(), walk.MsgBoxIconError)
												return
											}
											appEdit.SetText("")
											refreshApps()
										},
									},
								},
							},
							ListBox{AssignTo: &appList},
							Composite{
								Layout: HBox{MarginsZero: true},
								Children: []Widget{
									PushButton{
										Text: "Remove selected",
										OnClicked: func() {
											idx := appList.CurrentIndex()
											apps, err := service.AllowedApps()
											if err != nil || idx < 0 || idx >= len(apps) {
												return
											}
											apps = append(apps[:idx], apps[idx+1:]...)
											if err := service.SetAllowedApps(apps); err != nil {
												walk.MsgBox(mw, "Error", err.Error(), walk.MsgBoxIconError)
												return
											}
											refreshApps()
										},
									},
									HSpacer{},
								},
							},
						},
					},
					// Activity tab
					{
						Title:  "Activity",
						Layout: VBox{Margins: Margins{Left: 10, Top: 10, Right: 10, Bottom: 10}},
						Children: []Widget{
							Composite{
								Layout: HBox{MarginsZero: true},
								Children: []Widget{
									Label{Text: "Recent enforcement actions"},
									HSpacer{},
									PushButton{
										Text:    "Refresh",
										MaxSize: Size{Width: 70, Height: 0},
										OnClicked: func() {
											refreshActivity()
										},
									},
									PushButton{
										Text:    "Clear",
										MaxSize: Size{Width: 60, Height: 0},
										OnClicked: func() {
											service.ClearActionLog()
											refreshActivity()
										},
									},
								},
							},
							TextEdit{
								AssignTo: &activityEdit,
								ReadOnly: true,
								VScroll:  true,
								Font:     Font{Family: "Consolas", PointSize: 9},
							},
						},
					},
					// Logs tab
					{
						Title:  "Logs",
						Layout: VBox{Margins: Margins{Left: 10, Top: 10, Right: 10, Bottom: 10}},
						Children: []Widget{
							Composite{
								Layout: HBox{MarginsZero: true},
								Children: []Widget{
									Label{Text: "Application log"},
									HSpacer{},
									PushButton{
										Text:    "Refresh",
										MaxSize: Size{Width: 70, Height: 0},
										OnClicked: func() {
											loadLogs(logsTextEdit)
										},
									},
									PushButton{
										Text:    "Clear",
										MaxSize: Size{Width: 60, Height: 0},
										OnClicked: func() {
											logsTextEdit.SetText("")
											clearLogFile()
										},
									},
									PushButton{
										Text:    "Open file",
										MaxSize: Size{Width: 80, Height: 0},
										OnClicked: func() {
											openLogFile()
										},
									},
								},
							},
							TextEdit{
								AssignTo: &logsTextEdit,
								ReadOnly: true,
								VScroll:  true,
								HScroll:  true,
								Font:     Font{Family: "Consolas", PointSize: 9},
							},
						},
					},
					// Settings tab
					{
						Title:  "Settings",
						Layout: Grid{Columns: 2, Margins: Margins{Left: 10, Top: 10, Right: 10, Bottom: 10}},
						Children: []Widget{
							Label{Text: ""},
							CheckBox{
								AssignTo: &startCheck,
								Text:     "Start protection on launch",
							},
							Label{Text: ""},
							CheckBox{
								AssignTo: &trayCheck,
								Text:     "Close to tray",
							},
							Label{Text: "Scan interval (seconds):"},
							LineEdit{AssignTo: &pollEdit},
							Label{Text: ""},
							PushButton{
								Text: "Save",
								OnClicked: func() {
									cfg := *service.Config().Get()
									cfg.StartProtection = startCheck.Checked()
									cfg.CloseToTray = trayCheck.Checked()
									if n, err := strconv.Atoi(strings.TrimSpace(pollEdit.Text())); err == nil {
										cfg.PollIntervalSeconds = n
									}
									if err := service.UpdateConfig(&cfg); err != nil {
										walk.MsgBox(mw, "Error", "Failed to save: "+err.Error(), walk.MsgBoxIconError)
									} else {
										walk.MsgBox(mw, "Done", "Settings saved!", walk.MsgBoxIconInformation)
									}
								},
							},
							VSpacer{ColumnSpan: 2},
						},
					},
				},
			},
		},
	}.Create()

	// Populate fields
	cfg := service.Config().Get()
	startCheck.SetChecked(cfg.StartProtection)
	trayCheck.SetChecked(cfg.CloseToTray)
	pollEdit.SetText(strconv.Itoa(cfg.PollIntervalSeconds))

	refreshSites()
	refreshApps()
	refreshActivity()
	loadLogs(logsTextEdit)

	if windowIcon != nil {
		mw.SetIcon(windowIcon)
	}

	dashboardMW = mw
	defer func() { dashboardMW = nil }()

	mw.Run()

	// Closing the dashboard quits the whole app unless close-to-tray is on.
	if !service.Config().Get().CloseToTray {
		systray.Quit()
	}
}

// RefreshDashboard updates the dashboard window if it is open. The tray
// icon and menu are handled by the caller.
func RefreshDashboard(status *core.StatusPayload) {
	mw := dashboardMW
	if mw == nil || status == nil {
		return
	}
	mw.Synchronize(func() {
		mw.SetTitle(dashboardTitle(status))
	})
}

func dashboardTitle(status *core.StatusPayload) string {
	if status.ProtectionActive {
		return "FocusGuard — Dashboard (protection on)"
	}
	return "FocusGuard — Dashboard"
}
