//go:build !windows

package debug

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// StartMemLogger logs Go heap stats and live artifact handles every interval
// until ctx is cancelled. RSS is only reported on Windows.
func StartMemLogger(ctx context.Context, interval time.Duration, logger *slog.Logger, live LiveCounter) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			attrs := heapAttrs(&ms)
			if live != nil {
				attrs = append(attrs, slog.Int("live_handles", live.LiveTotal()))
			}
			logger.Info("memstats", attrs...)
		}
	}()
}
