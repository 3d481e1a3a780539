// Package failurelog is the append-only record of every path that could not
// be deleted, shared concurrently across discovery and the worker pool.
package failurelog

import "sync"

// Kind distinguishes which operation failed for a given path.
type Kind string

const (
	KindEnumeration Kind = "enumeration"
	KindFile        Kind = "file"
	KindDirectory   Kind = "dir"
)

// Entry is one recorded failure.
type Entry struct {
	Path    string
	Kind    Kind
	Message string
}

// Log is a mutex-guarded append-only sequence of failures. Contention is
// negligible relative to the syscalls surrounding each append, so a single
// mutex (rather than per-shard locking) is sufficient, matching spec's
// resource model.
type Log struct {
	mu       sync.Mutex
	entries  []Entry
	enumSeen map[string]bool
}

// New returns an empty failure log.
func New() *Log {
	return &Log{enumSeen: make(map[string]bool)}
}

// RecordEnumeration records that dir's children could not be listed. It also
// marks dir so a later RecordDirectory failure for the same path is
// suppressed: an enumeration failure already implies the directory will
// fail to empty out, so reporting both would double-count the same root
// cause (spec's documented, implementer's-choice de-duplication).
func (l *Log) RecordEnumeration(dir string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enumSeen[dir] = true
	l.entries = append(l.entries, Entry{Path: dir, Kind: KindEnumeration, Message: err.Error()})
}

// RecordFile records that a single file entry could not be deleted.
func (l *Log) RecordFile(path string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Path: path, Kind: KindFile, Message: err.Error()})
}

// RecordDirectory records that a directory could not be removed. If an
// EnumerationError was already recorded for the same path, this call is
// suppressed to avoid double-reporting the same blocked directory.
func (l *Log) RecordDirectory(path string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.enumSeen[path] {
		return
	}
	l.entries = append(l.entries, Entry{Path: path, Kind: KindDirectory, Message: err.Error()})
}

// Entries returns a snapshot copy of everything recorded so far.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len reports how many failures have been recorded so far.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
