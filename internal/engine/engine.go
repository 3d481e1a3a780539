// Package engine orchestrates a single deletion run: discovery builds the
// tree, a broker releases directories leaf-first, and a worker pool deletes
// them, reporting aggregate statistics and failures. This is the surface the
// CLI, safety layer, and progress reporter all depend on.
package engine

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/yourusername/rmbrr/internal/broker"
	"github.com/yourusername/rmbrr/internal/deleteworker"
	"github.com/yourusername/rmbrr/internal/discovery"
	"github.com/yourusername/rmbrr/internal/failurelog"
	"github.com/yourusername/rmbrr/internal/logger"
	"github.com/yourusername/rmbrr/internal/monitor"
	"github.com/yourusername/rmbrr/internal/platform"
)

// Config controls a single Delete call.
type Config struct {
	// Workers is the number of parallel worker goroutines. 0 or negative
	// auto-detects via runtime.NumCPU().
	Workers int

	// Verbose emits per-error diagnostic lines via the logger.
	Verbose bool

	// IgnoreErrors is reserved; current behavior is always "record and
	// continue" regardless of its value.
	IgnoreErrors bool

	// DryRun scans and plans but performs no filesystem mutation.
	DryRun bool

	// Monitor enables periodic system-resource sampling during the run.
	Monitor bool

	// ProgressFunc, if set, is called with (completed, total) directory
	// counts at an arbitrary cadence during the delete phase.
	ProgressFunc func(completed, total int64)
}

// FailureEntry mirrors failurelog.Entry as part of this package's public
// result type, so callers don't need to import internal/failurelog.
type FailureEntry struct {
	Path    string
	Kind    string
	Message string
}

// Result reports the outcome of a Delete call.
type Result struct {
	DirsTotal      int64
	DirsCompleted  int64
	FilesObserved  int64
	Failures       []FailureEntry
	ScanDuration   time.Duration
	DeleteDuration time.Duration

	// MonitorReport is the bottleneck-analysis report produced when
	// Config.Monitor was set; empty otherwise.
	MonitorReport string
}

// Clean reports whether the run left no failures and the root path no
// longer exists, the definition of a clean run (spec section 6).
func (r *Result) Clean(root string) bool {
	if len(r.Failures) != 0 {
		return false
	}
	_, err := os.Stat(root)
	return os.IsNotExist(err)
}

// Delete discovers and removes the directory tree rooted at root per cfg.
// It returns a fatal error only when discovery itself fails: root is missing
// or not a directory (spec's DiscoveryError), or ctx is cancelled during the
// walk. Every other failure is recorded into Result.Failures.
func Delete(ctx context.Context, root string, cfg Config) (*Result, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	adapter := platform.New()
	failures := failurelog.New()

	logger.Info("Scanning directory tree: %s", root)
	scanStart := time.Now()
	disc, err := discovery.Discover(ctx, root, adapter, failures)
	if err != nil {
		return nil, fmt.Errorf("discovery failed for %s: %w", root, err)
	}
	scanDuration := time.Since(scanStart)

	logger.Info("Found %d directories (%d initial leaves), %d files in %s",
		disc.Tree.TotalDirs(), len(disc.InitialLeaves), disc.Tree.Files(), scanDuration)

	b := broker.New(disc.Tree, disc.InitialLeaves)

	deleteStart := time.Now()

	var sysMonitor *monitor.WindowsMonitor
	var stopMonitor func()
	if cfg.Monitor {
		sysMonitor, stopMonitor = startMonitor(ctx, b, deleteStart)
	}

	progress := func(idx int) {
		if cfg.ProgressFunc != nil {
			cfg.ProgressFunc(b.CompletedCount(), b.TotalDirs())
		}
	}
	deleteworker.Run(ctx, workers, disc.Tree, b, adapter, failures, deleteworker.Config{
		Verbose:      cfg.Verbose,
		IgnoreErrors: cfg.IgnoreErrors,
		DryRun:       cfg.DryRun,
	}, progress)
	deleteDuration := time.Since(deleteStart)

	if stopMonitor != nil {
		stopMonitor()
	}

	entries := failures.Entries()
	out := make([]FailureEntry, len(entries))
	for i, e := range entries {
		out[i] = FailureEntry{Path: e.Path, Kind: string(e.Kind), Message: e.Message}
	}

	result := &Result{
		DirsTotal:      disc.Tree.TotalDirs(),
		DirsCompleted:  b.CompletedCount(),
		FilesObserved:  disc.Tree.Files(),
		Failures:       out,
		ScanDuration:   scanDuration,
		DeleteDuration: deleteDuration,
	}
	if sysMonitor != nil {
		result.MonitorReport = sysMonitor.GenerateReport()
	}

	logger.Info("Deletion completed: %d/%d directories, %d failures in %s",
		result.DirsCompleted, result.DirsTotal, len(result.Failures), deleteDuration)

	return result, nil
}
