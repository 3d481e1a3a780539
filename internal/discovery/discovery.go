// Package discovery implements the single sequential walk that populates a
// tree.Tree ahead of deletion: one record per directory, parent links, per-
// directory child counts, and the initial set of leaves the broker can hand
// out immediately.
package discovery

import (
	"context"
	"fmt"
	"os"

	"github.com/yourusername/rmbrr/internal/failurelog"
	"github.com/yourusername/rmbrr/internal/platform"
	"github.com/yourusername/rmbrr/internal/tree"
)

// Result is what a completed walk produces: the populated tree and the
// indices of directories that were already leaves (no children observed)
// at discovery time.
type Result struct {
	Tree          *tree.Tree
	InitialLeaves []int
}

// Discover walks root depth-first, building t and returning the initial
// leaves. Enumeration errors at a directory are recorded into failures as an
// EnumerationError and do not abort the walk; the partially-known directory
// is still added to the tree with whatever children were observed, so a
// worker still attempts its RemoveEmptyDir later; failures then suppresses
// that directory's removal failure, since its enumeration failure is already
// recorded.
//
// Discovery is sequential by design (spec: its cost is syscall-latency
// bound, acceptable because the delete phase dominates); ctx is checked
// between recursions so a cancelled run aborts discovery promptly on very
// large trees.
func Discover(ctx context.Context, root string, adapter platform.Adapter, failures *failurelog.Log) (*Result, error) {
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("directory does not exist: %s", root)
	}

	t := tree.New()
	var leaves []int

	var walk func(dir string, parent int) error
	walk = func(dir string, parent int) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		idx := t.Append(dir, parent)

		childDirs := make([]string, 0, 8)
		err := adapter.EnumerateFiles(dir, func(path string, isDir bool) error {
			if isDir {
				t.IncrementChildren(idx)
				childDirs = append(childDirs, path)
			} else {
				t.FileCount.Add(1)
			}
			return nil
		})
		if err != nil {
			failures.RecordEnumeration(dir, err)
		}

		if t.Record(idx).RemainingChildren() == 0 {
			leaves = append(leaves, idx)
		}

		for _, child := range childDirs {
			if err := walk(child, idx); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root, tree.RootSentinel); err != nil {
		return nil, err
	}

	return &Result{Tree: t, InitialLeaves: leaves}, nil
}
