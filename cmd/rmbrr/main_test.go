package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yourusername/rmbrr/internal/config"
	"github.com/yourusername/rmbrr/internal/engine"
)

func resetFlags() {
	flagThreads = 0
	flagDryRun = false
	flagSilent = false
	flagVerbose = false
	flagIgnoreErrors = true
	flagConfirm = false
	flagStats = false
	flagForce = false
	flagMonitor = false
	flagLogFile = ""
	flagConfigFile = ""
}

func TestNewRootCmdRegistersAllFlags(t *testing.T) {
	resetFlags()
	cmd := newRootCmd()

	for _, name := range []string{
		"threads", "dry-run", "silent", "verbose", "ignore-errors",
		"confirm", "stats", "force", "log-file", "config",
	} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag %q to be registered", name)
		}
	}
}

func TestNewRootCmdRequiresAtLeastOnePath(t *testing.T) {
	resetFlags()
	cmd := newRootCmd()
	if err := cmd.Args(cmd, nil); err == nil {
		t.Fatal("expected an error when no paths are given")
	}
	if err := cmd.Args(cmd, []string{"somedir"}); err != nil {
		t.Fatalf("expected a single path to satisfy Args, got: %v", err)
	}
}

func TestResolveSettingsAppliesOnlyExplicitFlags(t *testing.T) {
	resetFlags()
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--threads=4", "--verbose"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	settings, err := resolveSettings(cmd)
	if err != nil {
		t.Fatalf("resolveSettings: %v", err)
	}
	if settings.Threads != 4 {
		t.Errorf("expected Threads=4, got %d", settings.Threads)
	}
	if !settings.Verbose {
		t.Error("expected Verbose=true")
	}
	if !settings.IgnoreErrors {
		t.Error("expected IgnoreErrors to keep its default-true value")
	}
}

func TestResolveSettingsAllowsOverridingBoolFlagBackToFalse(t *testing.T) {
	resetFlags()
	t.Setenv("RMBRR_VERBOSE", "true")

	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--verbose=false"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	settings, err := resolveSettings(cmd)
	if err != nil {
		t.Fatalf("resolveSettings: %v", err)
	}
	if settings.Verbose {
		t.Error("expected --verbose=false to override RMBRR_VERBOSE=true")
	}
}

func TestProcessSinglePathRejectsNonExistentPath(t *testing.T) {
	resetFlags()
	_, err := processSinglePath(nil, filepath.Join(t.TempDir(), "missing"), config.Defaults())
	if err == nil {
		t.Fatal("expected an error for a non-existent path")
	}
}

func TestProcessSinglePathRejectsNonDirectory(t *testing.T) {
	resetFlags()
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "afile")
	if err := os.WriteFile(filePath, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := processSinglePath(nil, filePath, config.Defaults())
	if err == nil {
		t.Fatal("expected an error when the path is not a directory")
	}
}

func TestAggregateStatsMergeSumsAcrossPaths(t *testing.T) {
	var stats aggregateStats
	stats.dirsDeleted = 2
	stats.filesObserved = 5

	stats.merge(&engine.Result{DirsCompleted: 3, FilesObserved: 7})

	if stats.dirsDeleted != 5 {
		t.Errorf("expected dirsDeleted=5, got %d", stats.dirsDeleted)
	}
	if stats.filesObserved != 12 {
		t.Errorf("expected filesObserved=12, got %d", stats.filesObserved)
	}
}
