package procguard

import (
	"sync"
	"time"

	"github.com/user/focus-guard/internal/logger"
)

// defaultPollInterval is how often the monitor scans running processes.
const defaultPollInterval = 2 * time.Second

// Monitor drives the guard's poll-classify-terminate cycle from a single
// goroutine. Ticks run serially, so the guard never sees overlapping polls.
type Monitor struct {
	mu           sync.Mutex
	running      bool
	stopCh       chan struct{}
	guard        *Guard
	pollInterval time.Duration
	onUpdate     func() // callback after every completed tick
}

// NewMonitor creates a monitor for the given guard.
func NewMonitor(guard *Guard) *Monitor {
	return &Monitor{
		guard:        guard,
		stopCh:       make(chan struct{}),
		pollInterval: defaultPollInterval,
	}
}

// SetPollInterval changes the scan interval. Takes effect on the next Start.
func (m *Monitor) SetPollInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d > 0 {
		m.pollInterval = d
	}
}

// SetOnUpdate sets a callback that fires after each poll cycle.
func (m *Monitor) SetOnUpdate(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onUpdate = fn
}

// Guard returns the guard this monitor drives.
func (m *Monitor) Guard() *Guard {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.guard
}

// SetGuard replaces the guard. The monitor must be stopped first, or the
// in-flight poll cycle keeps using the old guard until the next tick.
func (m *Monitor) SetGuard(guard *Guard) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guard = guard
}

// Start begins polling. Starting a running monitor is a no-op.
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.stopCh = make(chan struct{})
	interval := m.pollInterval
	stopCh := m.stopCh
	m.mu.Unlock()

	logger.SafeGo("procguard-poll", func() {
		m.pollLoop(interval, stopCh)
	})
}

// Stop halts polling. Stopping a stopped monitor is a no-op.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	m.running = false
	close(m.stopCh)
}

// Running reports whether the monitor is polling.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Monitor) pollLoop(interval time.Duration, stopCh chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			m.poll()
		}
	}
}

// poll runs one cycle: snapshot, then terminate everything blocked.
func (m *Monitor) poll() {
	guard := m.Guard()
	for _, snap := range guard.Snapshot() {
		if snap.Class != Blocked {
			continue
		}
		guard.Terminate(snap.PID)
	}

	m.mu.Lock()
	fn := m.onUpdate
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}
