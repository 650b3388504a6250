package procguard

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/user/focus-guard/internal/logger"
)

const (
	// maxLogEntries bounds the action log; older entries are trimmed.
	maxLogEntries = 100

	// killWait bounds how long a termination waits for the process to exit.
	killWait = 5 * time.Second
)

// criticalProcesses are OS-essential names (extensionless, compared
// case-insensitively) that the guard never terminates, regardless of the
// allow-list.
var criticalProcesses = map[string]bool{
	"explorer": true,
	"winlogon": true,
	"csrss":    true,
	"smss":     true,
	"lsass":    true,
	"services": true,
	"svchost":  true,
	"dwm":      true,
	"wininit":  true,
	"system":   true,
	"registry": true,
	"audiodg":  true,
	"conhost":  true,
}

// Guard classifies running processes against an allow-list and terminates
// the rest. The allow-list and critical set are immutable after
// construction; only the action log is mutated, under its own lock so the
// UI can read it while the monitor goroutine polls.
type Guard struct {
	allowed map[string]bool
	source  Source
	log     logger.Logger

	mu      sync.Mutex
	actions []string
}

// New creates a guard for the given allow-list of process names. Names are
// compared case-insensitively and exactly: no substring matching, and no
// extension stripping ("chrome.exe" does not match "chrome").
func New(allowList []string, source Source, log logger.Logger) *Guard {
	allowed := make(map[string]bool, len(allowList))
	for _, name := range allowList {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		allowed[strings.ToLower(name)] = true
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Guard{allowed: allowed, source: source, log: log}
}

// IsAllowed reports whether name case-insensitively equals an allow-list
// entry. A blank name is never allowed.
func (g *Guard) IsAllowed(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	return g.allowed[strings.ToLower(name)]
}

// Snapshot enumerates the currently running user-facing processes and
// classifies each one. An enumeration failure yields an empty snapshot and
// a log entry, never a panic of the polling cycle.
func (g *Guard) Snapshot() []Snapshot {
	procs, err := g.source.Processes()
	if err != nil {
		g.log.Error("procguard: process enumeration failed: %v", err)
		g.record("error: process enumeration failed: %v", err)
		return nil
	}

	snaps := make([]Snapshot, 0, len(procs))
	for _, p := range procs {
		class := Blocked
		if g.IsAllowed(p.Name) {
			class = Allowed
		}
		snaps = append(snaps, Snapshot{PID: p.PID, Name: p.Name, Title: p.Title, Class: class})
	}
	return snaps
}

// Terminate kills the process with the given id unless it is allow-listed
// or a critical system process. A process that has already exited counts as
// success. The return value reports whether the goal state (process not
// running, or kill issued) was reached.
func (g *Guard) Terminate(pid uint32) bool {
	name, ok := g.source.Lookup(pid)
	if !ok {
		// Already exited: the goal state holds.
		return true
	}

	if g.IsAllowed(name) {
		g.record("skipped %s (pid %d): allow-listed", name, pid)
		return false
	}
	if criticalProcesses[strings.ToLower(name)] {
		g.record("skipped %s (pid %d): critical system process", name, pid)
		return false
	}

	exited, err := g.source.Kill(pid, killWait)
	if err != nil {
		g.log.Error("procguard: failed to terminate %s (pid %d): %v", name, pid, err)
		g.record("error: failed to terminate %s (pid %d): %v", name, pid, err)
		return false
	}
	if !exited {
		g.log.Warning("procguard: %s (pid %d) did not confirm exit within %s", name, pid, killWait)
		g.record("terminated %s (pid %d): exit not confirmed within %s", name, pid, killWait)
		return true
	}

	g.log.Info("procguard: terminated %s (pid %d)", name, pid)
	g.record("terminated %s (pid %d)", name, pid)
	return true
}

// ActionLog returns a copy of the most recent action-log entries,
// oldest first.
func (g *Guard) ActionLog() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.actions))
	copy(out, g.actions)
	return out
}

// AdoptActionLog seeds the action log with entries carried over from a
// previous guard, keeping only the most recent ones.
func (g *Guard) AdoptActionLog(entries []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(entries) > maxLogEntries {
		entries = entries[len(entries)-maxLogEntries:]
	}
	g.actions = append([]string(nil), entries...)
}

// ClearActionLog discards all action-log entries.
func (g *Guard) ClearActionLog() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.actions = nil
}

func (g *Guard) record(format string, args ...interface{}) {
	entry := time.Now().Format("2006-01-02 15:04:05") + " " + fmt.Sprintf(format, args...)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.actions = append(g.actions, entry)
	if len(g.actions) > maxLogEntries {
		trimmed := make([]string, maxLogEntries)
		copy(trimmed, g.actions[len(g.actions)-maxLogEntries:])
		g.actions = trimmed
	}
}
