package procguard

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeSource is an in-memory process table standing in for the live system.
type fakeSource struct {
	procs   map[uint32]Process
	killed  []uint32
	killErr error
	slow    bool // kills succeed but exit is never confirmed
	listErr error
}

func newFakeSource(procs ...Process) *fakeSource {
	fs := &fakeSource{procs: make(map[uint32]Process)}
	for _, p := range procs {
		fs.procs[p.PID] = p
	}
	return fs
}

func (fs *fakeSource) Processes() ([]Process, error) {
	if fs.listErr != nil {
		return nil, fs.listErr
	}
	var out []Process
	for _, p := range fs.procs {
		out = append(out, p)
	}
	return out, nil
}

func (fs *fakeSource) Lookup(pid uint32) (string, bool) {
	p, ok := fs.procs[pid]
	return p.Name, ok
}

func (fs *fakeSource) Kill(pid uint32, _ time.Duration) (bool, error) {
	if fs.killErr != nil {
		return false, fs.killErr
	}
	fs.killed = append(fs.killed, pid)
	delete(fs.procs, pid)
	return !fs.slow, nil
}

func TestIsAllowed(t *testing.T) {
	g := New([]string{"chrome", "Firefox", " notepad ", ""}, newFakeSource(), nil)

	tests := []struct {
		name string
		want bool
	}{
		{"chrome", true},
		{"Chrome", true},
		{"CHROME", true},
		{"firefox", true},
		{"notepad", true},
		{"chrome.exe", false}, // extension is not stripped
		{"chrom", false},      // no partial matches
		{"chromed", false},
		{"", false},
		{"   ", false},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, g.IsAllowed(tc.name), "IsAllowed(%q)", tc.name)
	}
}

func TestSnapshotClassification(t *testing.T) {
	fs := newFakeSource(
		Process{PID: 100, Name: "chrome", Title: "Chrome"},
		Process{PID: 200, Name: "game", Title: "Game"},
		Process{PID: 300, Name: "notepad", Title: "Untitled - Notepad"},
	)
	g := New([]string{"chrome", "notepad"}, fs, nil)

	classes := make(map[string]Classification)
	for _, snap := range g.Snapshot() {
		classes[snap.Name] = snap.Class
	}

	require.Equal(t, Allowed, classes["chrome"])
	require.Equal(t, Allowed, classes["notepad"])
	require.Equal(t, Blocked, classes["game"])
}

func TestSnapshotEnumerationFailure(t *testing.T) {
	fs := newFakeSource()
	fs.listErr = errors.New("access denied")
	g := New(nil, fs, nil)

	require.Empty(t, g.Snapshot())
	log := g.ActionLog()
	require.Len(t, log, 1)
	require.Contains(t, log[0], "enumeration failed")
}

func TestTerminateBlockedProcess(t *testing.T) {
	fs := newFakeSource(Process{PID: 42, Name: "game", Title: "Game"})
	g := New([]string{"chrome"}, fs, nil)

	require.True(t, g.Terminate(42))
	require.Equal(t, []uint32{42}, fs.killed)

	log := g.ActionLog()
	require.Len(t, log, 1)
	require.Contains(t, log[0], "terminated game (pid 42)")
}

func TestTerminateNonExistentIsIdempotentSuccess(t *testing.T) {
	fs := newFakeSource()
	g := New(nil, fs, nil)

	require.True(t, g.Terminate(9999))
	require.Empty(t, fs.killed)
	require.Empty(t, g.ActionLog())
}

func TestTerminateSkipsAllowListed(t *testing.T) {
	fs := newFakeSource(Process{PID: 10, Name: "chrome", Title: "Chrome"})
	g := New([]string{"chrome"}, fs, nil)

	require.False(t, g.Terminate(10))
	require.Empty(t, fs.killed)

	_, stillRunning := fs.Lookup(10)
	require.True(t, stillRunning)

	log := g.ActionLog()
	require.Len(t, log, 1)
	require.Contains(t, log[0], "allow-listed")
}

func TestTerminateSkipsCriticalProcesses(t *testing.T) {
	for pid, name := range map[uint32]string{
		1: "explorer", 2: "Winlogon", 3: "csrss", 4: "LSASS", 5: "svchost",
	} {
		fs := newFakeSource(Process{PID: pid, Name: name})
		g := New(nil, fs, nil)

		require.False(t, g.Terminate(pid), "critical process %s must not be terminated", name)
		require.Empty(t, fs.killed)

		_, stillRunning := fs.Lookup(pid)
		require.True(t, stillRunning)
	}
}

func TestTerminateKillError(t *testing.T) {
	fs := newFakeSource(Process{PID: 7, Name: "stubborn"})
	fs.killErr = errors.New("access is denied")
	g := New(nil, fs, nil)

	require.False(t, g.Terminate(7))

	log := g.ActionLog()
	require.Len(t, log, 1)
	require.Contains(t, log[0], "access is denied")
}

func TestTerminateUnconfirmedExitStillSucceeds(t *testing.T) {
	fs := newFakeSource(Process{PID: 8, Name: "sluggish"})
	fs.slow = true
	g := New(nil, fs, nil)

	require.True(t, g.Terminate(8))

	log := g.ActionLog()
	require.Len(t, log, 1)
	require.Contains(t, log[0], "exit not confirmed")
}

func TestActionLogBound(t *testing.T) {
	g := New(nil, newFakeSource(), nil)

	for i := 0; i < 150; i++ {
		fs := g.source.(*fakeSource)
		fs.procs[uint32(i)] = Process{PID: uint32(i), Name: fmt.Sprintf("proc%d", i)}
		g.Terminate(uint32(i))
	}

	log := g.ActionLog()
	require.Len(t, log, maxLogEntries)

	// Oldest entries were trimmed, newest kept, order preserved.
	require.Contains(t, log[0], "proc50 ")
	require.Contains(t, log[len(log)-1], "proc149 ")
	for i, entry := range log {
		require.Contains(t, entry, fmt.Sprintf("proc%d ", 50+i))
	}
}

func TestActionLogReturnsCopy(t *testing.T) {
	fs := newFakeSource(Process{PID: 1, Name: "game"})
	g := New(nil, fs, nil)
	g.Terminate(1)

	log := g.ActionLog()
	log[0] = "tampered"
	require.NotEqual(t, "tampered", g.ActionLog()[0])
}

func TestClearActionLog(t *testing.T) {
	fs := newFakeSource(Process{PID: 1, Name: "game"})
	g := New(nil, fs, nil)
	g.Terminate(1)
	require.NotEmpty(t, g.ActionLog())

	g.ClearActionLog()
	require.Empty(t, g.ActionLog())
}

func TestMonitorPollTerminatesBlockedOnly(t *testing.T) {
	fs := newFakeSource(
		Process{PID: 1, Name: "chrome", Title: "Chrome"},
		Process{PID: 2, Name: "game", Title: "Game"},
		Process{PID: 3, Name: "explorer", Title: "Explorer"},
	)
	g := New([]string{"chrome"}, fs, nil)
	m := NewMonitor(g)

	m.poll()

	require.Equal(t, []uint32{2}, fs.killed)
	_, chromeAlive := fs.Lookup(1)
	require.True(t, chromeAlive)
	_, explorerAlive := fs.Lookup(3)
	require.True(t, explorerAlive)
}

func TestMonitorOnUpdateFires(t *testing.T) {
	g := New(nil, newFakeSource(), nil)
	m := NewMonitor(g)

	updates := 0
	m.SetOnUpdate(func() { updates++ })
	m.poll()
	m.poll()

	require.Equal(t, 2, updates)
}

func TestMonitorStartStop(t *testing.T) {
	g := New(nil, newFakeSource(), nil)
	m := NewMonitor(g)
	m.SetPollInterval(10 * time.Millisecond)

	require.False(t, m.Running())
	m.Start()
	require.True(t, m.Running())
	m.Start() // second start is a no-op
	require.True(t, m.Running())

	m.Stop()
	require.False(t, m.Running())
	m.Stop() // second stop is a no-op
	require.False(t, m.Running())
}

func TestAdoptActionLogCarriesEntriesAcrossGuards(t *testing.T) {
	fs := newFakeSource(Process{PID: 1, Name: "game"})
	g := New(nil, fs, nil)
	g.Terminate(1)

	g2 := New([]string{"game"}, newFakeSource(), nil)
	g2.AdoptActionLog(g.ActionLog())
	require.Equal(t, g.ActionLog(), g2.ActionLog())
}

func TestAdoptActionLogKeepsOnlyRecentEntries(t *testing.T) {
	entries := make([]string, maxLogEntries+20)
	for i := range entries {
		entries[i] = fmt.Sprintf("entry %d", i)
	}

	g := New(nil, newFakeSource(), nil)
	g.AdoptActionLog(entries)

	got := g.ActionLog()
	require.Len(t, got, maxLogEntries)
	require.Equal(t, "entry 20", got[0])
	require.Equal(t, fmt.Sprintf("entry %d", maxLogEntries+19), got[len(got)-1])
}

func TestMonitorSetGuardSwapsGuard(t *testing.T) {
	g1 := New(nil, newFakeSource(), nil)
	m := NewMonitor(g1)
	require.Same(t, g1, m.Guard())

	g2 := New([]string{"chrome"}, newFakeSource(), nil)
	m.SetGuard(g2)
	require.Same(t, g2, m.Guard())
}

func TestTerminateEntriesAreTimestamped(t *testing.T) {
	fs := newFakeSource(Process{PID: 1, Name: "game"})
	g := New(nil, fs, nil)
	g.Terminate(1)

	entry := g.ActionLog()[0]
	require.True(t, strings.Contains(entry, time.Now().Format("2006-01-02")),
		"entry %q should carry today's date", entry)
}
