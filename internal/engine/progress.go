package engine

import (
	"bytes"
	"regexp"
	"strconv"
	"time"
)

// ffmpeg reports the stream duration once and then emits status lines with
// a running "time=" clock, separated by carriage returns.
var (
	durationRe = regexp.MustCompile(`Duration:\s*(\d+):(\d{2}):(\d{2})\.(\d+)`)
	clockRe    = regexp.MustCompile(`time=(\d+):(\d{2}):(\d{2})\.(\d+)`)
)

type progressTracker struct {
	total time.Duration
}

func newProgressTracker() *progressTracker {
	return &progressTracker{}
}

// Observe inspects one status line and, when possible, derives a fractional
// completion ratio in [0,1].
func (t *progressTracker) Observe(line string) (float64, bool) {
	if m := durationRe.FindStringSubmatch(line); m != nil {
		t.total = parseClock(m)
		return 0, false
	}
	if t.total <= 0 {
		return 0, false
	}
	m := clockRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	ratio := float64(parseClock(m)) / float64(t.total)
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}
	return ratio, true
}

func parseClock(m []string) time.Duration {
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	centis, _ := strconv.Atoi(m[4])
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(centis)*10*time.Millisecond
}

// scanStatusLines splits on both newlines and the carriage returns ffmpeg
// uses to rewrite its status line in place.
func scanStatusLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
