package worker

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/Zixzorash/BURN-SUB/internal/config"
	"github.com/pkg/errors"
)

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws, err := NewWorkspace(filepath.Join(t.TempDir(), "job"), config.StagingConfig{
		LargeFileThreshold:  100,
		BufferedCopyCeiling: 1000,
	})
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}
	return ws
}

func TestStageInputSmallUsesBufferedCopy(t *testing.T) {
	ws := newTestWorkspace(t)

	links, copies := 0, 0
	ws.linkFn = func(_, _ string) error { links++; return nil }
	ws.copyFn = func(_, _ string) error { copies++; return nil }

	dst, err := ws.StageInput("/tmp/source.mp4", 50)
	if err != nil {
		t.Fatalf("StageInput: %v", err)
	}
	if links != 0 {
		t.Errorf("small input must not request a mounted view, got %d link calls", links)
	}
	if copies != 1 {
		t.Errorf("expected 1 copy, got %d", copies)
	}
	if filepath.Base(dst) != "input.mp4" {
		t.Errorf("staged name = %s, want input.mp4", filepath.Base(dst))
	}
}

func TestStageInputLargeUsesMountedView(t *testing.T) {
	ws := newTestWorkspace(t)

	links, copies := 0, 0
	ws.linkFn = func(_, _ string) error { links++; return nil }
	ws.copyFn = func(_, _ string) error { copies++; return nil }

	if _, err := ws.StageInput("/tmp/source.mkv", 500); err != nil {
		t.Fatalf("StageInput: %v", err)
	}
	if links != 1 || copies != 0 {
		t.Errorf("large input must hardlink only, got %d links and %d copies", links, copies)
	}
}

func TestStageInputMountFailureFallsBackToCopy(t *testing.T) {
	ws := newTestWorkspace(t)

	copies := 0
	ws.linkFn = func(_, _ string) error { return errors.New("cross-device link") }
	ws.copyFn = func(_, _ string) error { copies++; return nil }

	if _, err := ws.StageInput("/tmp/source.mp4", 500); err != nil {
		t.Fatalf("StageInput: %v", err)
	}
	if copies != 1 {
		t.Errorf("expected copy fallback after mount failure, got %d copies", copies)
	}
}

func TestStageInputOverCeilingNeverCopies(t *testing.T) {
	ws := newTestWorkspace(t)

	copies := 0
	ws.linkFn = func(_, _ string) error { return errors.New("cross-device link") }
	ws.copyFn = func(_, _ string) error { copies++; return nil }

	_, err := ws.StageInput("/tmp/source.mp4", 2000)
	if !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("expected ErrInputTooLarge, got %v", err)
	}
	if copies != 0 {
		t.Errorf("copy fallback must not run over the ceiling, got %d copies", copies)
	}
}

func TestSpoolReportsWrittenBytes(t *testing.T) {
	ws := newTestWorkspace(t)

	payload := strings.Repeat("x", 5000)
	_, written, err := ws.Spool("movie.mp4", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("Spool: %v", err)
	}
	if written != 5000 {
		t.Errorf("written = %d, want 5000", written)
	}
}

func TestStageSubtitleCanonicalExtension(t *testing.T) {
	ws := newTestWorkspace(t)
	ws.copyFn = func(_, _ string) error { return nil }

	cases := map[string]string{
		"/tmp/movie.srt": "subs.srt",
		"/tmp/movie.ssa": "subs.ass",
		"/tmp/movie.vtt": "subs.vtt",
	}
	for src, want := range cases {
		dst, err := ws.StageSubtitle(src)
		if err != nil {
			t.Fatalf("StageSubtitle(%q): %v", src, err)
		}
		if filepath.Base(dst) != want {
			t.Errorf("StageSubtitle(%q) = %s, want %s", src, filepath.Base(dst), want)
		}
	}
}

func TestOutputPathNeverCollidesWithStagedInput(t *testing.T) {
	ws := newTestWorkspace(t)
	ws.copyFn = func(_, _ string) error { return nil }

	staged, err := ws.StageInput("/tmp/input.mp4", 50)
	if err != nil {
		t.Fatalf("StageInput: %v", err)
	}
	output := ws.OutputPath("input.mp4")
	if output == staged {
		t.Fatalf("output path %s collides with staged input", output)
	}
	if filepath.Dir(output) == filepath.Dir(staged) {
		t.Errorf("output %s shares the staged input's directory", output)
	}
}

func TestCleanupAttemptsEveryCreatedPath(t *testing.T) {
	ws := newTestWorkspace(t)

	ws.linkFn = func(_, _ string) error { return nil }
	ws.copyFn = func(_, _ string) error { return nil }

	removed := make(map[string]int)
	ws.removeFn = func(path string) error {
		removed[path]++
		return errors.New("remove failed") // swallowed
	}

	spooled, _, err := ws.Spool("movie.mp4", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("Spool: %v", err)
	}
	staged, err := ws.StageInput(spooled, 500)
	if err != nil {
		t.Fatalf("StageInput: %v", err)
	}
	subs, err := ws.StageSubtitle("/tmp/movie.srt")
	if err != nil {
		t.Fatalf("StageSubtitle: %v", err)
	}
	output := ws.OutputPath("burned.mp4")

	ws.Cleanup()

	for _, path := range []string{spooled, staged, subs, output, ws.Root()} {
		if removed[path] != 1 {
			t.Errorf("expected exactly one deletion attempt for %s, got %d", path, removed[path])
		}
	}
}
