// Package tree holds the in-memory record of a directory tree discovered for
// deletion: one record per directory, parent links by dense index, and the
// two atomically-mutated fields ("remaining children" and "completed") that
// the broker and worker pool coordinate through.
package tree

import "sync/atomic"

// RootSentinel is the Parent value for a directory with no parent within the
// discovered tree (the root of the delete target itself).
const RootSentinel = -1

// Record is one directory discovered during the walk. Path and Parent are
// immutable after construction; remainingChildren and completed are the only
// fields mutated after discovery, and only through atomic operations so no
// full-tree lock is ever required.
type Record struct {
	Path   string
	Parent int

	remainingChildren atomic.Int64
	completed         atomic.Bool
}

// RemainingChildren returns the current count of not-yet-completed direct
// subdirectories.
func (r *Record) RemainingChildren() int64 {
	return r.remainingChildren.Load()
}

// Completed reports whether this record has already been handed a completion
// notification.
func (r *Record) Completed() bool {
	return r.completed.Load()
}

// Tree is an append-only collection of directory records keyed by dense
// index in discovery order. It is built exclusively by the discovery pass;
// afterwards it is shared read-only except for the two atomic fields on each
// record, which the broker mutates via DecrementChildren and TakeCompletion.
type Tree struct {
	records   []*Record
	FileCount atomic.Int64
}

// New returns an empty tree ready for discovery to populate.
func New() *Tree {
	return &Tree{records: make([]*Record, 0, 64)}
}

// Append creates a new record with the given path and parent index, returning
// its dense index. Called only by the discovery pass.
func (t *Tree) Append(path string, parent int) int {
	idx := len(t.records)
	t.records = append(t.records, &Record{Path: path, Parent: parent})
	return idx
}

// IncrementChildren bumps the remaining-child count of the record at
// parentIdx. Called only by the discovery pass when a child directory is
// observed, before the child's own record is fully walked.
func (t *Tree) IncrementChildren(parentIdx int) {
	if parentIdx == RootSentinel {
		return
	}
	t.records[parentIdx].remainingChildren.Add(1)
}

// DecrementChildren atomically decrements the remaining-child count of the
// record at idx and returns the new value. Callers release the record to
// the broker's work queue exactly when this returns zero, which by atomic
// decrement semantics happens for exactly one caller.
func (t *Tree) DecrementChildren(idx int) int64 {
	return t.records[idx].remainingChildren.Add(-1)
}

// TakeCompletion atomically sets the record's completed flag and reports
// whether it was already set. It transitions false->true exactly once per
// record; callers use the returned prior value to make the broker's
// completion protocol idempotent.
func (t *Tree) TakeCompletion(idx int) (alreadyCompleted bool) {
	return t.records[idx].completed.Swap(true)
}

// Path returns the path recorded at idx.
func (t *Tree) Path(idx int) string {
	return t.records[idx].Path
}

// Parent returns the parent index recorded at idx, or RootSentinel.
func (t *Tree) Parent(idx int) int {
	return t.records[idx].Parent
}

// Record returns the record at idx for read-only inspection (tests, property
// checks); production code should prefer the narrower accessors above.
func (t *Tree) Record(idx int) *Record {
	return t.records[idx]
}

// TotalDirs returns the number of directory records discovered.
func (t *Tree) TotalDirs() int64 {
	return int64(len(t.records))
}

// Files returns the reporting-only file count accumulated during discovery.
// It is never updated after discovery and has no bearing on deletion
// correctness (spec's file-count accumulator is a hint, not a critical-path
// quantity).
func (t *Tree) Files() int64 {
	return t.FileCount.Load()
}
