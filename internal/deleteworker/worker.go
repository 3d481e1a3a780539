// Package deleteworker implements the fixed-size pool of goroutines that
// drain the broker's work channel: for each directory received, delete its
// contained files, remove the now-empty directory, and notify the broker of
// completion regardless of outcome. Workers never recurse; all topological
// ordering is enforced by the broker's release order.
package deleteworker

import (
	"context"
	"sync"

	"github.com/yourusername/rmbrr/internal/broker"
	"github.com/yourusername/rmbrr/internal/failurelog"
	"github.com/yourusername/rmbrr/internal/logger"
	"github.com/yourusername/rmbrr/internal/platform"
	"github.com/yourusername/rmbrr/internal/tree"
)

// Config controls worker behavior.
type Config struct {
	// Verbose emits a per-error diagnostic line to the logger as each
	// failure is recorded.
	Verbose bool

	// IgnoreErrors is reserved; the implemented behavior is always "record
	// and continue" (spec section 6, section 9 open question).
	IgnoreErrors bool

	// DryRun simulates deletion: no filesystem mutation occurs, but the
	// broker's completion protocol still runs so the whole tree is "walked"
	// for reporting purposes.
	DryRun bool
}

// ProgressFunc is invoked after each directory completes, with the index
// that was just completed. It may be nil.
type ProgressFunc func(completedIdx int)

// Run spawns count worker goroutines draining work from b, using adapter to
// perform filesystem operations, recording failures into failures, and
// returns once every directory has been completed or ctx is cancelled.
func Run(ctx context.Context, count int, t *tree.Tree, b *broker.Broker, adapter platform.Adapter, failures *failurelog.Log, cfg Config, progress ProgressFunc) {
	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func() {
			defer wg.Done()
			worker(ctx, t, b, adapter, failures, cfg, progress)
		}()
	}
	wg.Wait()
}

func worker(ctx context.Context, t *tree.Tree, b *broker.Broker, adapter platform.Adapter, failures *failurelog.Log, cfg Config, progress ProgressFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case idx, ok := <-b.Work():
			if !ok {
				return
			}
			dir := t.Path(idx)

			if !cfg.DryRun {
				deleteFilesIn(dir, adapter, failures, cfg)

				if err := adapter.RemoveEmptyDir(dir); err != nil {
					failures.RecordDirectory(dir, err)
					if cfg.Verbose {
						logger.Warning("Failed to remove %s: %v", dir, err)
					}
				}
			}

			b.MarkComplete(idx)
			if progress != nil {
				progress(idx)
			}
		}
	}
}

// deleteFilesIn removes every non-directory entry directly inside dir. A
// per-file failure is recorded and does not stop enumeration of the
// remaining entries.
func deleteFilesIn(dir string, adapter platform.Adapter, failures *failurelog.Log, cfg Config) {
	_ = adapter.EnumerateFiles(dir, func(path string, isDir bool) error {
		if isDir {
			return nil
		}
		if err := adapter.DeleteFile(path); err != nil {
			failures.RecordFile(path, err)
			if cfg.Verbose {
				logger.Warning("Failed to delete %s: %v", path, err)
			}
		}
		return nil
	})
}
