// Package progress renders a live progress line during deletion, reporting
// directories completed against the broker's total (the unit the engine
// actually tracks), not a flat file count. The completion-percentage
// line format mirrors a "Deleting... {pct}% ({completed}/{total} dirs)"
// line.
package progress

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/rivo/uniseg"

	"github.com/yourusername/rmbrr/internal/style"
)

// Reporter renders directory-completion progress to stdout each time Update
// is called (it runs no ticker of its own), suppressing carriage-return redraws when stdout is not a terminal so a
// piped or logged run doesn't fill a log file with redraw noise.
type Reporter struct {
	total     int64
	startTime time.Time
	isTTY     bool
}

// NewReporter creates a Reporter for a run expected to complete total
// directories.
func NewReporter(total int64) *Reporter {
	return &Reporter{
		total:     total,
		startTime: time.Now(),
		isTTY:     isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

// Update renders the current completed/total state, refreshing the total
// each call since the engine only learns it once discovery finishes. On a
// terminal it redraws in place via \r; otherwise it is a no-op, since a
// non-interactive consumer has no use for a line that immediately gets
// overwritten.
func (r *Reporter) Update(completed, total int64) {
	r.total = total
	if r.total == 0 || !r.isTTY {
		return
	}

	elapsed := time.Since(r.startTime)
	rate := r.rate(completed, elapsed)
	eta := r.eta(completed, rate)
	pct := float64(completed) / float64(r.total) * 100

	fmt.Printf("\rDeleting... %.1f%% (%s/%s dirs) | %s dirs/sec | elapsed %s | eta %s",
		pct,
		humanize.Comma(completed),
		humanize.Comma(r.total),
		humanize.Comma(int64(rate)),
		formatDuration(elapsed),
		formatDuration(eta),
	)
}

// TraceItem prints a single verbose per-failure line, clamping the path to
// a reasonable display width without splitting a multi-byte grapheme
// cluster (CJK, emoji, or combining-mark paths render correctly truncated).
func (r *Reporter) TraceItem(kind, path, message string) {
	fmt.Printf("  [%s] %s: %s\n", kind, truncateGraphemes(path, 100), message)
}

// truncateGraphemes clamps s to at most width grapheme clusters, appending
// an ellipsis when it had to cut, so a multi-rune emoji or combining-mark
// sequence is never split in the middle.
func truncateGraphemes(s string, width int) string {
	if uniseg.GraphemeClusterCount(s) <= width {
		return s
	}

	g := uniseg.NewGraphemes(s)
	var out []byte
	for i := 0; i < width && g.Next(); i++ {
		out = append(out, []byte(g.Str())...)
	}
	return string(out) + "…"
}

func (r *Reporter) rate(completed int64, elapsed time.Duration) float64 {
	if elapsed.Seconds() == 0 {
		return 0
	}
	return float64(completed) / elapsed.Seconds()
}

func (r *Reporter) eta(completed int64, rate float64) time.Duration {
	if completed == 0 || rate == 0 {
		return time.Duration(math.MaxInt64)
	}
	remaining := r.total - completed
	if remaining <= 0 {
		return 0
	}
	return time.Duration(float64(remaining)/rate) * time.Second
}

// Finish prints the closing summary line once a run completes.
func (r *Reporter) Finish(completed, total int64, failed int) {
	if r.isTTY {
		fmt.Println()
	}
	totalTime := time.Since(r.startTime)
	summary := fmt.Sprintf("Completed %s/%s directories in %s", humanize.Comma(completed), humanize.Comma(total), formatDuration(totalTime))
	if failed == 0 {
		fmt.Println(style.Success.Render(summary))
		return
	}
	fmt.Println(summary)
	fmt.Println(style.Warning.Render(fmt.Sprintf("Failed items: %s", humanize.Comma(int64(failed)))))
}

func formatDuration(d time.Duration) string {
	if d >= time.Duration(math.MaxInt64) {
		return "unknown"
	}
	if d < 0 {
		return "0s"
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
