package debug

// Debug goroutine metrics logger. Started only when config.Debug is true.
// Emits goroutine count (runtime metrics) and stack usage at a fixed interval.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/dustin/go-humanize"
)

// StartGoroutineLogger launches a ticker that logs goroutine count and stack
// memory until ctx is cancelled.
func StartGoroutineLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = time.Second
	}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			metrics.Read(samples)
			goroutines := samples[0].Value.Uint64()
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			logger.Info("goroutine-stacks",
				slog.Uint64("goroutines", goroutines),
				slog.String("stack_inuse", humanize.Bytes(ms.StackInuse)),
				slog.String("stack_sys", humanize.Bytes(ms.StackSys)),
				slog.String("heap_alloc", humanize.Bytes(ms.HeapAlloc)),
			)
		}
	}()
}

// LiveCounter reports how many artifact handles are still resolvable.
type LiveCounter interface {
	LiveTotal() int
}

func heapAttrs(ms *runtime.MemStats) []any {
	return []any{
		slog.Int("goroutines", runtime.NumGoroutine()),
		slog.String("heap_alloc", humanize.Bytes(ms.HeapAlloc)),
		slog.String("heap_inuse", humanize.Bytes(ms.HeapInuse)),
		slog.String("heap_idle", humanize.Bytes(ms.HeapIdle)),
		slog.String("heap_sys", humanize.Bytes(ms.HeapSys)),
		slog.String("next_gc", humanize.Bytes(ms.NextGC)),
		slog.Uint64("num_gc", uint64(ms.NumGC)),
	}
}
