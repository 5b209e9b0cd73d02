package engine

import (
	"bufio"
	"math"
	"strings"
	"testing"
)

func TestProgressTrackerRatio(t *testing.T) {
	tr := newProgressTracker()

	if _, ok := tr.Observe("frame=  100 fps= 25 time=00:00:10.00 bitrate=..."); ok {
		t.Fatal("progress reported before duration is known")
	}

	if _, ok := tr.Observe("  Duration: 00:01:40.00, start: 0.000000, bitrate: 1000 kb/s"); ok {
		t.Fatal("duration line must not itself report progress")
	}

	ratio, ok := tr.Observe("frame=  250 fps= 25 time=00:00:25.00 bitrate= 900kbits/s")
	if !ok {
		t.Fatal("expected progress after duration was seen")
	}
	if math.Abs(ratio-0.25) > 1e-9 {
		t.Errorf("ratio = %v, want 0.25", ratio)
	}

	ratio, ok = tr.Observe("frame= 9999 time=00:02:10.00 bitrate= 900kbits/s")
	if !ok || ratio != 1 {
		t.Errorf("overshoot ratio = %v, %v; want clamped 1", ratio, ok)
	}
}

func TestScanStatusLinesSplitsOnCarriageReturn(t *testing.T) {
	input := "Duration: 00:00:10.00\nframe=1 time=00:00:02.00\rframe=2 time=00:00:04.00\rdone\n"
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Split(scanStatusLines)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4: %q", len(lines), lines)
	}
	if lines[2] != "frame=2 time=00:00:04.00" {
		t.Errorf("unexpected third line: %q", lines[2])
	}
}
