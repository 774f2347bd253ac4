// Package health polls the extraction service and keeps the latest
// availability sample for the UI.
package health

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is the polling period used when none is configured.
const DefaultInterval = 800 * time.Millisecond

// Prober checks the service once.
type Prober interface {
	Health(ctx context.Context) error
}

// Status is the coarse availability shown to the user.
type Status int

const (
	StatusUnknown Status = iota
	StatusOnline
	StatusOffline
)

func (s Status) String() string {
	switch s {
	case StatusOnline:
		return "online"
	case StatusOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// Sample is the outcome of one probe.
type Sample struct {
	Status  Status
	At      time.Time
	Latency time.Duration
	Err     error
}

// Available reports whether the sample saw a healthy service.
func (s Sample) Available() bool { return s.Status == StatusOnline }

// Monitor polls a Prober on a fixed interval from a single goroutine. Every
// sample replaces the previous one; there is no debounce or backoff.
type Monitor struct {
	prober   Prober
	interval time.Duration
	logger   *slog.Logger

	latest  atomic.Pointer[Sample]
	samples chan Sample

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor returns a stopped monitor. A non-positive interval selects
// DefaultInterval.
func NewMonitor(p Prober, interval time.Duration, logger *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{prober: p, interval: interval, logger: logger, samples: make(chan Sample, 1)}
}

// Interval returns the polling period.
func (m *Monitor) Interval() time.Duration { return m.interval }

// Start launches the polling goroutine. The first probe runs immediately.
// Calling Start on a running monitor is a no-op.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done != nil {
		return
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	go m.loop(ctx, m.done)
}

// Stop cancels polling and waits for the goroutine to exit. Safe to call
// more than once.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Available reports the latest sample. It is false until the first probe
// completes.
func (m *Monitor) Available() bool {
	if m == nil {
		return false
	}
	s := m.latest.Load()
	return s != nil && s.Available()
}

// Latest returns the most recent sample and whether one exists yet.
func (m *Monitor) Latest() (Sample, bool) {
	s := m.latest.Load()
	if s == nil {
		return Sample{}, false
	}
	return *s, true
}

// Samples delivers new samples. Only the newest undelivered sample is kept.
func (m *Monitor) Samples() <-chan Sample { return m.samples }

func (m *Monitor) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	m.probe(ctx)
	for {
		select {
		case <-ticker.C:
			m.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (m *Monitor) probe(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, m.interval)
	start := time.Now()
	err := m.prober.Health(pctx)
	cancel()
	if ctx.Err() != nil {
		return
	}
	s := Sample{Status: StatusOnline, At: time.Now(), Latency: time.Since(start), Err: err}
	if err != nil {
		s.Status = StatusOffline
	}
	prev := m.latest.Swap(&s)
	if m.logger != nil && (prev == nil || prev.Status != s.Status) {
		m.logger.Info("service.status", "status", s.Status.String(), "latency", s.Latency, "error", err)
	}
	m.publish(s)
}

// publish replaces any undelivered sample with s.
func (m *Monitor) publish(s Sample) {
	for {
		select {
		case m.samples <- s:
			return
		default:
		}
		select {
		case <-m.samples:
		default:
		}
	}
}
