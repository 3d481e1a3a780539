//go:build !windows

// Package platform provides cross-platform file deletion using standard Go
// operations on POSIX-like systems, where unlink/rmdir already detach the
// name from the namespace immediately regardless of open handles.
package platform

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/yourusername/rmbrr/internal/logger"
)

// readDirChunk bounds how many entries GenericAdapter.EnumerateFiles reads
// from the kernel per ReadDir call, so a directory with millions of entries
// never forces one giant slice allocation.
const readDirChunk = 4096

// GenericAdapter implements Adapter with os.Remove and a streaming
// directory read, portable to every platform Go supports.
type GenericAdapter struct{}

// NewGenericAdapter creates a new cross-platform adapter.
func NewGenericAdapter() *GenericAdapter {
	return &GenericAdapter{}
}

// EnumerateFiles streams the immediate children of dir in bounded chunks.
// Entry type is taken from the directory entry itself (Lstat semantics), so
// a symlink to a directory is reported with isDir=false and is never
// dereferenced.
func (a *GenericAdapter) EnumerateFiles(dir string, visit func(path string, isDir bool) error) error {
	f, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("failed to open directory %s: %w", dir, err)
	}
	defer f.Close()

	var walkErr error
	for {
		entries, err := f.ReadDir(readDirChunk)
		for _, entry := range entries {
			isDir := entry.Type()&os.ModeSymlink == 0 && entry.IsDir()
			path := dir + string(os.PathSeparator) + entry.Name()
			if verr := visit(path, isDir); verr != nil && walkErr == nil {
				walkErr = verr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("failed to read directory %s: %w", dir, err)
		}
		if len(entries) < readDirChunk {
			break
		}
	}
	return walkErr
}

// DeleteFile removes a single file via os.Remove, which never follows
// symlinks.
func (a *GenericAdapter) DeleteFile(path string) error {
	if err := os.Remove(path); err != nil {
		logger.Debug("os.Remove failed for file: %s (error: %v)", path, err)
		return fmt.Errorf("failed to delete file %s: %w", path, err)
	}
	return nil
}

// RemoveEmptyDir removes an empty directory via os.Remove.
func (a *GenericAdapter) RemoveEmptyDir(path string) error {
	if err := os.Remove(path); err != nil {
		logger.Debug("os.Remove failed for directory: %s (error: %v)", path, err)
		return fmt.Errorf("failed to delete directory %s: %w", path, err)
	}
	return nil
}
