//go:build windows

// Package platform provides Windows-optimized file deletion using direct
// Win32/NT API calls, preferring namespace-detach ("POSIX semantics") delete
// disposition where the running kernel supports it.
package platform

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"syscall"

	"golang.org/x/sys/windows"

	"github.com/yourusername/rmbrr/internal/logger"
)

// WindowsAdapter deletes files and directories via direct Win32 API calls,
// falling back from namespace-detach disposition to plain DeleteFile/
// RemoveDirectory when the running Windows version rejects the newer ioctl.
// One adapter instance is shared across every worker goroutine, so the
// fallback latch must be a concurrency-safe flag rather than a plain bool.
type WindowsAdapter struct {
	posixSemantics atomic.Bool // cleared after the first ERROR_INVALID_PARAMETER
}

// NewWindowsAdapter creates a new Windows-optimized adapter. It optimistically
// assumes POSIX delete semantics are available; the first rejection by the
// kernel permanently disables it for the life of this adapter.
func NewWindowsAdapter() *WindowsAdapter {
	a := &WindowsAdapter{}
	a.posixSemantics.Store(true)
	return a
}

// EnumerateFiles reads all immediate children of dir in a single ReadDir
// call, then visits them in turn. Entry type comes from
// the directory entry itself so a symlink/reparse point to a directory is
// reported as isDir=false and never dereferenced.
func (a *WindowsAdapter) EnumerateFiles(dir string, visit func(path string, isDir bool) error) error {
	f, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("failed to open directory %s: %w", dir, err)
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var walkErr error
	for _, entry := range entries {
		isDir := entry.Type()&os.ModeSymlink == 0 && entry.IsDir()
		path := dir + `\` + entry.Name()
		if verr := visit(path, isDir); verr != nil && walkErr == nil {
			walkErr = verr
		}
	}
	return walkErr
}

// DeleteFile removes a single file, preferring namespace-detach disposition.
func (a *WindowsAdapter) DeleteFile(path string) error {
	return a.deleteEntry(path, false)
}

// RemoveEmptyDir removes an empty directory, preferring namespace-detach
// disposition.
func (a *WindowsAdapter) RemoveEmptyDir(path string) error {
	return a.deleteEntry(path, true)
}

func (a *WindowsAdapter) deleteEntry(path string, isDir bool) error {
	if a.posixSemantics.Load() {
		if err := a.deletePosixSemantics(path, isDir); err == nil {
			return nil
		} else if errors.Is(err, windows.ERROR_INVALID_PARAMETER) {
			logger.Debug("POSIX delete semantics unsupported on this system, falling back: %s", path)
			a.posixSemantics.Store(false)
		} else {
			return err
		}
	}

	extendedPath := toExtendedLengthPath(path)
	pathPtr, err := syscall.UTF16PtrFromString(extendedPath)
	if err != nil {
		return fmt.Errorf("failed to convert path to UTF-16: %w", err)
	}

	if isDir {
		if err := windows.RemoveDirectory(pathPtr); err != nil {
			return fmt.Errorf("failed to delete directory %s: %w", path, err)
		}
		return nil
	}
	if err := windows.DeleteFile(pathPtr); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", path, err)
	}
	return nil
}

// toExtendedLengthPath converts a regular path to the \\?\-prefixed
// extended-length form so paths beyond MAX_PATH are handled correctly.
func toExtendedLengthPath(path string) string {
	if len(path) >= 4 && path[:4] == `\\?\` {
		return path
	}
	if len(path) >= 2 && path[:2] == `\\` {
		return `\\?\UNC\` + path[2:]
	}
	return `\\?\` + path
}
