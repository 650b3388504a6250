//go:build windows

package ui

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/lxn/walk"

	"github.com/user/focus-guard/internal/logger"
	"github.com/user/focus-guard/internal/procutil"
)

// loadLogs reads and displays the application log in the text edit widget.
func loadLogs(textEdit *walk.TextEdit) {
	content, err := logger.ReadLogs()
	if err != nil {
		if os.IsNotExist(err) {
			textEdit.SetText("No logs yet. Start protection to see activity.")
		} else {
			textEdit.SetText("Failed to read logs: " + err.Error())
		}
		return
	}

	lines := strings.Split(content, "\n")
	if len(lines) > 1000 {
		lines = lines[len(lines)-1000:]
	}

	textEdit.SetText(strings.Join(lines, "\r\n"))
	textEdit.SetTextSelection(len(textEdit.Text()), len(textEdit.Text()))
}

// openLogFile opens the log file in the default editor.
func openLogFile() {
	logPath := logger.GetLogPath()
	if logPath == "" {
		return
	}
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		dir := filepath.Dir(logPath)
		os.MkdirAll(dir, 0755)
		os.WriteFile(logPath, []byte("FocusGuard Log\n"), 0644)
	}
	cmd := exec.Command("cmd", "/c", "start", "", logPath)
	procutil.HideWindow(cmd)
	cmd.Start()
}
