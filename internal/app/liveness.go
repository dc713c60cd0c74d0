package app

import (
	"context"
	"sync"
	"time"
)

// Monitor tracks the client's belief about backend reachability. It
// starts Offline until the first probe completes, flips state on probe
// results, and reports each Online/Offline edge exactly once. A
// background loop re-probes on a fixed interval; explicit probes before
// a send share the same state.
type Monitor struct {
	probe        func(ctx context.Context) error
	interval     time.Duration
	onTransition func(online bool)

	mu     sync.Mutex
	online bool

	stop      chan struct{}
	done      chan struct{}
	startOnce sync.Once
	started   bool
}

// NewMonitor wires a probe function (normally Backend.Health) and an
// optional transition hook. The hook fires once per edge, never once per
// probe, and runs outside the monitor lock.
func NewMonitor(probe func(ctx context.Context) error, interval time.Duration, onTransition func(online bool)) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Monitor{
		probe:        probe,
		interval:     interval,
		onTransition: onTransition,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// IsOnline returns the last known state without blocking.
func (m *Monitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Probe runs one health check and folds the result into the state
// machine. Probe failures never propagate; the caller reads the
// resulting state from the return value.
func (m *Monitor) Probe(ctx context.Context) bool {
	err := m.probe(ctx)
	m.setOnline(err == nil)
	return err == nil
}

// MarkOnline forces the state, with the same edge-triggered notification
// as a probe. Used when a chat round-trip itself proves (or disproves)
// reachability.
func (m *Monitor) MarkOnline(online bool) {
	m.setOnline(online)
}

func (m *Monitor) setOnline(online bool) {
	m.mu.Lock()
	changed := m.online != online
	m.online = online
	m.mu.Unlock()
	if changed && m.onTransition != nil {
		m.onTransition(online)
	}
}

// Start launches the polling loop: one immediate probe, then one every
// interval. Each fire schedules the next only after the probe returns,
// so slow probes never overlap.
func (m *Monitor) Start() {
	m.startOnce.Do(func() {
		m.mu.Lock()
		m.started = true
		m.mu.Unlock()
		go m.loop()
	})
}

func (m *Monitor) loop() {
	defer close(m.done)
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-timer.C:
			// The probe carries its own timeout, so a dead backend
			// stalls this loop for at most one probe bound.
			m.Probe(context.Background())
			timer.Reset(m.interval)
		}
	}
}

// Stop halts the polling loop and waits for it to exit. A monitor that
// was never started stops immediately.
func (m *Monitor) Stop() {
	select {
	case <-m.stop:
	default:
		close(m.stop)
	}
	m.mu.Lock()
	started := m.started
	m.mu.Unlock()
	if started {
		<-m.done
	}
}
