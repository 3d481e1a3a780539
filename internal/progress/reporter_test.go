package progress

import (
	"math"
	"testing"
	"time"
)

func TestRateReturnsZeroWithNoElapsedTime(t *testing.T) {
	r := NewReporter(1000)
	if rate := r.rate(100, 0); rate != 0 {
		t.Errorf("expected rate 0 for zero elapsed time, got %.2f", rate)
	}
}

func TestRateComputesCompletionsPerSecond(t *testing.T) {
	r := NewReporter(1000)
	if rate := r.rate(1000, 10*time.Second); rate != 100.0 {
		t.Errorf("expected rate 100, got %.2f", rate)
	}
}

func TestETAReturnsMaxWhenNothingCompletedYet(t *testing.T) {
	r := NewReporter(1000)
	if eta := r.eta(0, 50.0); eta != time.Duration(math.MaxInt64) {
		t.Errorf("expected max duration ETA, got %v", eta)
	}
}

func TestETAReturnsZeroOnceTotalReached(t *testing.T) {
	r := NewReporter(1000)
	if eta := r.eta(1000, 100.0); eta != 0 {
		t.Errorf("expected ETA 0 once total reached, got %v", eta)
	}
}

func TestETAComputesRemainingTime(t *testing.T) {
	r := NewReporter(1000)
	if eta := r.eta(250, 50.0); eta != 15*time.Second {
		t.Errorf("expected ETA 15s, got %v", eta)
	}
}

func TestFormatDurationBuckets(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{0, "0s"},
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m 30s"},
		{3661 * time.Second, "1h 1m 1s"},
		{time.Duration(math.MaxInt64), "unknown"},
		{-1 * time.Second, "0s"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.input); got != tt.expected {
			t.Errorf("formatDuration(%v) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestUpdateDoesNotPanicWithZeroTotal(t *testing.T) {
	r := NewReporter(0)
	r.Update(0, 0)
}

func TestTruncateGraphemesPreservesShortStrings(t *testing.T) {
	if got := truncateGraphemes("short", 100); got != "short" {
		t.Fatalf("expected unchanged string, got %q", got)
	}
}

func TestTruncateGraphemesClampsLongUnicodePaths(t *testing.T) {
	s := "日本語のとても長いディレクトリ名がここに続きます延々と"
	got := truncateGraphemes(s, 5)
	if got == s {
		t.Fatal("expected truncation to shorten the string")
	}
}
