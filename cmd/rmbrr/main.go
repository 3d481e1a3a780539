// Package main provides the rmbrr command-line interface: parallel,
// leaf-first directory deletion with cross-platform namespace-detach
// semantics on Windows.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/rmbrr/internal/config"
	"github.com/yourusername/rmbrr/internal/engine"
	"github.com/yourusername/rmbrr/internal/logger"
	"github.com/yourusername/rmbrr/internal/progress"
	"github.com/yourusername/rmbrr/internal/safety"
	"github.com/yourusername/rmbrr/internal/style"
)

var (
	flagThreads      int
	flagDryRun       bool
	flagSilent       bool
	flagVerbose      bool
	flagIgnoreErrors bool
	flagConfirm      bool
	flagStats        bool
	flagForce        bool
	flagMonitor      bool
	flagLogFile      string
	flagConfigFile   string
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(2)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rmbrr PATH [PATH...]",
		Short: "Fast, parallel directory deletion with cross-platform support",
		Long: "rmbrr (rm + brrr) deletes directory trees leaf-first with a fixed worker pool, " +
			"using POSIX-semantics namespace detach on Windows for immediate removal regardless of " +
			"open handles elsewhere.",
		Example: "  rmbrr ./node_modules\n" +
			"  rmbrr -n ./build\n" +
			"  rmbrr -v ./dist\n" +
			"  rmbrr --stats ./target\n" +
			"  rmbrr --confirm ./data\n" +
			"  rmbrr ./dir1 ./dir2 ./dir3",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAll(cmd, args)
		},
	}

	cmd.Flags().IntVarP(&flagThreads, "threads", "t", 0, "number of worker threads (default: logical CPU count)")
	cmd.Flags().BoolVarP(&flagDryRun, "dry-run", "n", false, "scan and plan but don't delete anything")
	cmd.Flags().BoolVarP(&flagSilent, "silent", "s", false, "disable progress output")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "print every failure as it occurs")
	cmd.Flags().BoolVar(&flagIgnoreErrors, "ignore-errors", true, "ignore errors and continue deletion")
	cmd.Flags().BoolVarP(&flagConfirm, "confirm", "c", false, "ask for confirmation before deleting")
	cmd.Flags().BoolVar(&flagStats, "stats", false, "show detailed statistics at the end")
	cmd.Flags().BoolVar(&flagForce, "force", false, "force deletion of dangerous paths (use with extreme caution)")
	cmd.Flags().BoolVar(&flagMonitor, "monitor", false, "sample CPU, memory, and I/O during deletion and print a bottleneck report")
	cmd.Flags().StringVar(&flagLogFile, "log-file", "", "write logs to the specified file")
	cmd.Flags().StringVar(&flagConfigFile, "config", "", "path to a YAML config file (default: ./rmbrr.yaml or $HOME/rmbrr.yaml)")

	return cmd
}

// aggregateStats accumulates per-path results for the multi-path summary.
type aggregateStats struct {
	dirsDeleted   int64
	filesObserved int64
	scanTime      time.Duration
	deleteTime    time.Duration
}

func (a *aggregateStats) merge(r *engine.Result) {
	a.dirsDeleted += r.DirsCompleted
	a.filesObserved += r.FilesObserved
	a.scanTime += r.ScanDuration
	a.deleteTime += r.DeleteDuration
}

func runAll(cmd *cobra.Command, paths []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	if err := logger.SetupLogging(settings.Verbose, settings.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to set up logging: %v\n", err)
	}
	defer logger.Close()

	ctx, cancel := engine.SetupInterruptHandler()
	defer cancel()

	var stats aggregateStats
	var allFailures []engine.FailureEntry
	var failedPaths []string

	for i, path := range paths {
		if len(paths) > 1 && !settings.Silent {
			fmt.Printf("\n[%d/%d] Processing: %s\n", i+1, len(paths), path)
		}

		result, err := processSinglePath(ctx, path, settings)
		if err != nil {
			fmt.Fprintln(os.Stderr, style.Danger.Render(fmt.Sprintf("Failed to process %s: %v", path, err)))
			failedPaths = append(failedPaths, path)
			continue
		}
		if result == nil {
			// user declined confirmation; nothing to merge
			continue
		}

		stats.merge(result)
		allFailures = append(allFailures, result.Failures...)
	}

	if len(paths) > 1 && !settings.Silent {
		printSummary(&stats, allFailures, failedPaths, settings)
	}

	if len(failedPaths) > 0 || len(allFailures) > 0 {
		return fmt.Errorf("%d path(s) failed, %d item(s) could not be deleted", len(failedPaths), len(allFailures))
	}
	return nil
}

// resolveSettings layers CLI flags over the config-file/environment layer,
// using cobra's per-flag Changed() tracking (not a flag's post-parse value)
// to decide explicitness — a boolean flag's zero value is indistinguishable
// from "not passed" otherwise, which would make it impossible to override a
// true config/env value back to false from the command line.
func resolveSettings(cmd *cobra.Command) (config.Settings, error) {
	settings, err := config.Load(flagConfigFile)
	if err != nil {
		return settings, err
	}

	explicit := map[string]bool{
		"threads":       cmd.Flags().Changed("threads"),
		"silent":        cmd.Flags().Changed("silent"),
		"verbose":       cmd.Flags().Changed("verbose"),
		"stats":         cmd.Flags().Changed("stats"),
		"ignore_errors": cmd.Flags().Changed("ignore-errors"),
		"log_file":      cmd.Flags().Changed("log-file"),
	}
	flags := config.Settings{
		Threads:      flagThreads,
		Silent:       flagSilent,
		Verbose:      flagVerbose,
		Stats:        flagStats,
		IgnoreErrors: flagIgnoreErrors,
		LogFile:      flagLogFile,
	}
	return config.MergeFlags(settings, flags, explicit)
}

func processSinglePath(ctx context.Context, path string, settings config.Settings) (*engine.Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", path)
	}

	safe, reason := safety.IsSafePath(path)
	if !safe {
		if !flagForce {
			return nil, fmt.Errorf("unsafe to delete: %s (use --force to override if allowed)", reason)
		}
		if !settings.Silent {
			fmt.Fprintln(os.Stderr, style.Warning.Render(fmt.Sprintf("warning: deleting dangerous path with --force: %s", reason)))
		}
	}

	if settings.Verbose && runtime.GOOS != "windows" {
		logger.Debug("Running on %s: POSIX unlink/rmdir already detach on delete", runtime.GOOS)
	}

	if flagConfirm && !flagDryRun {
		if !safety.GetUserConfirmation(path, 0, flagDryRun, flagForce) {
			fmt.Println("Aborted.")
			return nil, nil
		}
	}

	var reporter *progress.Reporter
	var progressFunc func(completed, total int64)
	if !settings.Silent {
		reporter = progress.NewReporter(0)
		progressFunc = reporter.Update
	}

	result, err := engine.Delete(ctx, path, engine.Config{
		Workers:      settings.Threads,
		Verbose:      settings.Verbose,
		IgnoreErrors: settings.IgnoreErrors,
		DryRun:       flagDryRun,
		Monitor:      flagMonitor,
		ProgressFunc: progressFunc,
	})
	if err != nil {
		return nil, err
	}

	if reporter != nil {
		reporter.Finish(result.DirsCompleted, result.DirsTotal, len(result.Failures))
	}
	if settings.Verbose {
		for _, f := range result.Failures {
			if reporter != nil {
				reporter.TraceItem(f.Kind, f.Path, f.Message)
			} else {
				fmt.Printf("  [%s] %s: %s\n", f.Kind, f.Path, f.Message)
			}
		}
	}
	if result.MonitorReport != "" && !settings.Silent {
		fmt.Println(result.MonitorReport)
	}

	return result, nil
}

func printSummary(stats *aggregateStats, failures []engine.FailureEntry, failedPaths []string, settings config.Settings) {
	fmt.Println()
	fmt.Println(style.Heading.Render("============================================================"))
	fmt.Println(style.Heading.Render("SUMMARY"))
	fmt.Println(style.Heading.Render("============================================================"))
	fmt.Printf("Directories deleted: %d\n", stats.dirsDeleted)
	fmt.Printf("Files observed:      %d\n", stats.filesObserved)
	if len(failures) > 0 {
		fmt.Printf("Failed items:        %d\n", len(failures))
	}
	if len(failedPaths) > 0 {
		fmt.Printf("Failed paths:        %d\n", len(failedPaths))
	}
	if settings.Stats {
		fmt.Println("\nTiming:")
		fmt.Printf("  Total scan time:   %s\n", stats.scanTime)
		fmt.Printf("  Total delete time: %s\n", stats.deleteTime)
		fmt.Printf("  Total time:        %s\n", stats.scanTime+stats.deleteTime)
	}
}
