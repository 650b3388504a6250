// Package procguard enumerates user-facing processes and terminates any
// whose name is not on the configured allow-list.
package procguard

import "time"

// Classification says whether an observed process may keep running. It is
// recomputed from the live name on every poll, never stored.
type Classification int

const (
	Allowed Classification = iota
	Blocked
)

func (c Classification) String() string {
	if c == Allowed {
		return "allowed"
	}
	return "blocked"
}

// Snapshot is a point-in-time view of one running user-facing process.
type Snapshot struct {
	PID   uint32
	Name  string // executable base name without extension
	Title string // main window title at enumeration time
	Class Classification
}

// Process is a raw enumeration record produced by a Source.
type Process struct {
	PID   uint32
	Name  string
	Title string
}

// Source abstracts process enumeration and termination so the guard can be
// tested against a fake instead of the live system.
type Source interface {
	// Processes returns the currently running user-facing processes: those
	// exposing a visible top-level window with a non-empty title. Failures
	// on individual processes are skipped, not fatal.
	Processes() ([]Process, error)

	// Lookup returns the live name of pid, or ok=false if the process no
	// longer exists.
	Lookup(pid uint32) (name string, ok bool)

	// Kill terminates pid and waits up to wait for it to exit. It reports
	// whether the exit was confirmed within the wait.
	Kill(pid uint32, wait time.Duration) (exited bool, err error)
}
