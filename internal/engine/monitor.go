package engine

import (
	"context"
	"time"

	"github.com/yourusername/rmbrr/internal/broker"
	"github.com/yourusername/rmbrr/internal/monitor"
)

// startMonitor launches system-resource sampling for the duration of a
// Delete call and returns the monitor (for GenerateReport once stopped) and a
// function to stop it. NewWindowsMonitor selects the platform-specific
// sampling behavior at build time: on Windows it also samples CPU and disk
// I/O via Win32 counters; elsewhere it is a thin wrapper over Monitor.
func startMonitor(ctx context.Context, b *broker.Broker, start time.Time) (*monitor.WindowsMonitor, func()) {
	m := monitor.NewWindowsMonitor()
	monitorCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Start(monitorCtx, time.Second,
			func() int { return int(b.CompletedCount()) },
			func() float64 {
				elapsed := time.Since(start).Seconds()
				if elapsed <= 0 {
					return 0
				}
				return float64(b.CompletedCount()) / elapsed
			})
	}()
	return m, func() {
		cancel()
		<-done
	}
}
