package health

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type proberStub struct {
	calls atomic.Int32
	fail  atomic.Bool
}

func (p *proberStub) Health(ctx context.Context) error {
	p.calls.Add(1)
	if p.fail.Load() {
		return errors.New("connection refused")
	}
	return nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestMonitor_FirstProbeIsImmediate(t *testing.T) {
	p := &proberStub{}
	m := NewMonitor(p, time.Hour, nil)
	if m.Available() {
		t.Fatalf("available before any sample")
	}
	if _, ok := m.Latest(); ok {
		t.Fatalf("latest before any sample")
	}
	m.Start(context.Background())
	defer m.Stop()
	select {
	case s := <-m.Samples():
		if !s.Available() {
			t.Fatalf("expected online sample, got %v", s.Status)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no immediate sample")
	}
	if !m.Available() {
		t.Fatalf("monitor should report available")
	}
}

func TestMonitor_EachSampleFlipsAvailability(t *testing.T) {
	p := &proberStub{}
	m := NewMonitor(p, 10*time.Millisecond, nil)
	m.Start(context.Background())
	defer m.Stop()
	waitFor(t, m.Available)
	p.fail.Store(true)
	waitFor(t, func() bool { return !m.Available() })
	s, ok := m.Latest()
	if !ok || s.Status != StatusOffline || s.Err == nil {
		t.Fatalf("expected offline sample with error, got %+v", s)
	}
	p.fail.Store(false)
	waitFor(t, m.Available)
}

func TestMonitor_StopHaltsPolling(t *testing.T) {
	p := &proberStub{}
	m := NewMonitor(p, 5*time.Millisecond, nil)
	m.Start(context.Background())
	waitFor(t, func() bool { return p.calls.Load() >= 2 })
	m.Stop()
	m.Stop()
	n := p.calls.Load()
	time.Sleep(30 * time.Millisecond)
	if p.calls.Load() != n {
		t.Fatalf("probes continued after Stop: %d -> %d", n, p.calls.Load())
	}
}

func TestMonitor_SamplesKeepLatestOnly(t *testing.T) {
	m := NewMonitor(&proberStub{}, time.Hour, nil)
	m.publish(Sample{Status: StatusOnline})
	m.publish(Sample{Status: StatusOffline})
	select {
	case s := <-m.Samples():
		if s.Status != StatusOffline {
			t.Fatalf("expected newest sample, got %v", s.Status)
		}
	default:
		t.Fatalf("no sample buffered")
	}
	select {
	case s := <-m.Samples():
		t.Fatalf("stale sample still buffered: %v", s.Status)
	default:
	}
}

func TestNewMonitor_DefaultInterval(t *testing.T) {
	if got := NewMonitor(&proberStub{}, 0, nil).Interval(); got != DefaultInterval {
		t.Fatalf("expected %v, got %v", DefaultInterval, got)
	}
}
