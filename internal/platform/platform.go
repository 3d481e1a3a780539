// Package platform is the sole gateway to the filesystem for the deletion
// engine: enumerating a directory's immediate children, deleting a single
// file, and removing an emptied directory. It is stateless and safe to call
// concurrently from any worker.
package platform

// Adapter is the minimal syscall-level surface the engine needs. Symlinks are
// never dereferenced by any implementation: a symlink to a directory is
// reported as a non-directory entry and removed as a file.
type Adapter interface {
	// EnumerateFiles visits the immediate children of dir, calling visit once
	// per entry with its full path and whether it is itself a real
	// directory (never a symlink, even one pointing at a directory).
	// EnumerateFiles fails if dir's handle cannot be opened; a non-nil
	// return from visit does not abort enumeration of the remaining entries,
	// it is only surfaced to the caller as part of the accumulated walk
	// error.
	EnumerateFiles(dir string, visit func(path string, isDir bool) error) error

	// DeleteFile removes a single non-directory entry, without following
	// symlinks, overriding a read-only attribute where the platform allows
	// it on delete.
	DeleteFile(path string) error

	// RemoveEmptyDir removes a directory that must already contain no
	// entries. It fails if the directory is non-empty or inaccessible.
	RemoveEmptyDir(path string) error
}

// New returns the Adapter appropriate for the current platform: a
// NT-namespace-detach-aware implementation on Windows, plain unlink/rmdir
// (already namespace-detach on POSIX) elsewhere.
func New() Adapter {
	return newPlatformAdapter()
}
