package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// flappableProbe lets a test script probe outcomes.
type flappableProbe struct {
	mu   sync.Mutex
	fail bool
}

func (f *flappableProbe) set(fail bool) {
	f.mu.Lock()
	f.fail = fail
	f.mu.Unlock()
}

func (f *flappableProbe) probe(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("unreachable")
	}
	return nil
}

func TestMonitor_InitialStateIsOffline(t *testing.T) {
	m := NewMonitor((&flappableProbe{}).probe, time.Hour, nil)
	if m.IsOnline() {
		t.Fatal("monitor must start offline until the first probe")
	}
}

func TestMonitor_EdgeNotificationsFireOncePerEdge(t *testing.T) {
	var edges []bool
	fp := &flappableProbe{}
	m := NewMonitor(fp.probe, time.Hour, func(online bool) {
		edges = append(edges, online)
	})

	ctx := context.Background()

	// Repeated successes: one edge, not one per probe.
	m.Probe(ctx)
	m.Probe(ctx)
	m.Probe(ctx)

	// Repeated failures: one edge again.
	fp.set(true)
	m.Probe(ctx)
	m.Probe(ctx)

	// Back up once more.
	fp.set(false)
	m.Probe(ctx)

	want := []bool{true, false, true}
	if len(edges) != len(want) {
		t.Fatalf("edges = %v, want %v", edges, want)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Fatalf("edges = %v, want %v", edges, want)
		}
	}
}

func TestMonitor_MarkOnlineSharesTheEdgeMachine(t *testing.T) {
	var edges int
	m := NewMonitor((&flappableProbe{}).probe, time.Hour, func(bool) { edges++ })

	m.MarkOnline(true)
	m.MarkOnline(true)
	if !m.IsOnline() {
		t.Fatal("expected online after MarkOnline(true)")
	}
	m.MarkOnline(false)
	m.MarkOnline(false)
	if edges != 2 {
		t.Fatalf("expected 2 edges, got %d", edges)
	}
}

func TestMonitor_PollLoopProbesAndStops(t *testing.T) {
	var mu sync.Mutex
	probes := 0
	m := NewMonitor(func(ctx context.Context) error {
		mu.Lock()
		probes++
		mu.Unlock()
		return nil
	}, 10*time.Millisecond, nil)

	m.Start()
	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := probes
		mu.Unlock()
		if n >= 3 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("poll loop made only %d probes", n)
		}
		time.Sleep(5 * time.Millisecond)
	}
	m.Stop()

	mu.Lock()
	after := probes
	mu.Unlock()
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	final := probes
	mu.Unlock()
	if final != after {
		t.Fatalf("probes continued after Stop: %d -> %d", after, final)
	}
	if !m.IsOnline() {
		t.Fatal("expected online after successful probes")
	}
}

func TestMonitor_StopWithoutStart(t *testing.T) {
	m := NewMonitor((&flappableProbe{}).probe, time.Hour, nil)
	m.Stop() // must not hang
}
