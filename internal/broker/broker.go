// Package broker mediates between the discovered tree's topology and the
// worker pool: it hands out leaf directories, and on each worker's
// completion notification decrements the parent's remaining-child count,
// releasing the parent exactly when it becomes a leaf itself.
package broker

import (
	"sync/atomic"

	"github.com/yourusername/rmbrr/internal/tree"
)

// Broker owns the work channel and the completion protocol. It has no
// goroutine of its own: MarkComplete runs inline on whichever worker
// goroutine calls it, matching spec's "no dedicated broker thread"
// requirement.
type Broker struct {
	tree           *tree.Tree
	work           chan int
	completedCount atomic.Int64
	totalCount     int64
}

// New constructs a Broker over t, seeding the work channel with every
// initial leaf. The channel is buffered to the tree's full directory count
// so that MarkComplete's release-on-zero send never blocks the completing
// worker — spec requires the protocol be wait-free "except under the
// channel's internal contention"; sizing the buffer to the worst case
// removes that contention entirely.
func New(t *tree.Tree, initialLeaves []int) *Broker {
	total := t.TotalDirs()
	b := &Broker{
		tree:       t,
		work:       make(chan int, total),
		totalCount: total,
	}
	for _, idx := range initialLeaves {
		b.work <- idx
	}
	if total == 0 {
		close(b.work)
	}
	return b
}

// Work returns the receiver end workers pull directory indices from. It
// closes once every directory has been completed.
func (b *Broker) Work() <-chan int {
	return b.work
}

// CompletedCount returns the number of directories completed so far, safe to
// sample concurrently for progress reporting.
func (b *Broker) CompletedCount() int64 {
	return b.completedCount.Load()
}

// TotalDirs returns the immutable total directory count this broker was
// constructed with.
func (b *Broker) TotalDirs() int64 {
	return b.totalCount
}

// MarkComplete runs the four-step completion protocol from spec section 4.4
// for the directory at idx, regardless of whether deletion of idx succeeded.
// It is idempotent: a second call for the same idx is a no-op.
func (b *Broker) MarkComplete(idx int) {
	if b.tree.TakeCompletion(idx) {
		return
	}

	completed := b.completedCount.Add(1)

	if parent := b.tree.Parent(idx); parent != tree.RootSentinel {
		if b.tree.DecrementChildren(parent) == 0 {
			b.work <- parent
		}
	}

	if completed == b.totalCount {
		close(b.work)
	}
}
