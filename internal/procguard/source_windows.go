//go:build windows

package procguard

import (
	"fmt"
	"strings"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/user/focus-guard/internal/logger"
)

var (
	modUser32                    = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows              = modUser32.NewProc("EnumWindows")
	procGetWindowTextW           = modUser32.NewProc("GetWindowTextW")
	procGetWindowThreadProcessId = modUser32.NewProc("GetWindowThreadProcessId")
	procIsWindowVisible          = modUser32.NewProc("IsWindowVisible")
)

// WindowsSource enumerates and terminates live processes via the Win32 API.
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

// Processes returns the running processes that own a visible top-level
// window with a non-empty title. Background and service processes are
// excluded by construction.
func (s *WindowsSource) Processes() ([]Process, error) {
	titles := windowTitlesByPID()

	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("process snapshot failed: %w", err)
	}
	defer windows.CloseHandle(snap)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	var procs []Process
	err = windows.Process32First(snap, &entry)
	for err == nil {
		if title, ok := titles[entry.ProcessID]; ok {
			procs = append(procs, Process{
				PID:   entry.ProcessID,
				Name:  stripExtension(windows.UTF16ToString(entry.ExeFile[:])),
				Title: title,
			})
		}
		err = windows.Process32Next(snap, &entry)
	}
	return procs, nil
}

// Lookup returns the live extensionless name of pid, or ok=false if the
// process no longer exists.
func (s *WindowsSource) Lookup(pid uint32) (string, bool) {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		if err == windows.ERROR_INVALID_PARAMETER {
			return "", false // no such process
		}
		// Alive but not queryable (e.g. protected process).
		return "", true
	}
	defer windows.CloseHandle(h)

	var code uint32
	if err := windows.GetExitCodeProcess(h, &code); err == nil && code != windows.STILL_ACTIVE {
		return "", false
	}

	var buf [windows.MAX_PATH]uint16
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		s.log.Warning("procguard: cannot query image name for pid %d: %v", pid, err)
		return "", true
	}
	full := windows.UTF16ToString(buf[:size])
	return stripExtension(baseName(full)), true
}

// Kill terminates pid and waits up to wait for it to exit.
func (s *WindowsSource) Kill(pid uint32, wait time.Duration) (bool, error) {
	h, err := windows.OpenProcess(windows.PROCESS_TERMINATE|windows.SYNCHRONIZE, false, pid)
	if err != nil {
		if err == windows.ERROR_INVALID_PARAMETER {
			return true, nil // already gone
		}
		return false, fmt.Errorf("open process %d: %w", pid, err)
	}
	defer windows.CloseHandle(h)

	if err := windows.TerminateProcess(h, 1); err != nil {
		return false, fmt.Errorf("terminate process %d: %w", pid, err)
	}

	event, err := windows.WaitForSingleObject(h, uint32(wait.Milliseconds()))
	if err != nil || event != windows.WAIT_OBJECT_0 {
		return false, nil // kill issued, exit not confirmed
	}
	return true, nil
}

// windowTitlesByPID maps each process id to the title of one of its
// visible top-level windows. Windows without a title are ignored.
func windowTitlesByPID() map[uint32]string {
	titles := make(map[uint32]string)

	cb := syscall.NewCallback(func(hwnd uintptr, _ uintptr) uintptr {
		if visible, _, _ := procIsWindowVisible.Call(hwnd); visible == 0 {
			return 1 // continue enumeration
		}

		var buf [256]uint16
		n, _, _ := procGetWindowTextW.Call(hwnd,
			uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
		if n == 0 {
			return 1
		}

		var pid uint32
		procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid))) //nolint:errcheck
		if pid != 0 {
			if _, seen := titles[pid]; !seen {
				titles[pid] = syscall.UTF16ToString(buf[:n])
			}
		}
		return 1
	})

	procEnumWindows.Call(cb, 0) //nolint:errcheck
	return titles
}

// stripExtension drops the trailing file extension, matching how process
// names are configured in the allow-list ("chrome", not "chrome.exe").
func stripExtension(exe string) string {
	if i := strings.LastIndexByte(exe, '.'); i > 0 {
		return exe[:i]
	}
	return exe
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '\\' || path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
