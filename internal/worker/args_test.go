package worker

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Zixzorash/BURN-SUB/internal/config"
)

var testStaging = config.StagingConfig{
	LargeFileThreshold:  100,
	BufferedCopyCeiling: 1000,
}

func findFlagValue(t *testing.T, args []string, flag string) (string, bool) {
	t.Helper()
	for i, a := range args {
		if a == flag {
			if i+1 >= len(args) {
				t.Fatalf("flag %s has no value in %v", flag, args)
			}
			return args[i+1], true
		}
	}
	return "", false
}

func TestBuildArgsFixedOrder(t *testing.T) {
	args := BuildArgs(BurnArgs{
		InputPath:    "/work/job/input.mp4",
		SubtitlePath: "/work/job/subs.srt",
		OutputPath:   "/work/job/out.mp4",
		ForceStyle:   "FontSize=24,Alignment=2",
		FrameRate:    30,
		InputSize:    50,
	}, testStaging)

	want := []string{
		"-i", "/work/job/input.mp4",
		"-vf", "subtitles=/work/job/subs.srt:force_style='FontSize=24,Alignment=2'",
		"-r", "30",
		"-c:v", "libx264", "-preset", "medium", "-crf", "23",
		"-c:a", "aac", "-b:a", "128k",
		"-movflags", "+faststart",
		"-y", "/work/job/out.mp4",
	}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("BuildArgs mismatch:\n got %v\nwant %v", args, want)
	}
}

func TestBuildArgsNoDownscaleUnderThreshold(t *testing.T) {
	args := BuildArgs(BurnArgs{
		InputPath:    "in.mp4",
		SubtitlePath: "subs.srt",
		OutputPath:   "out.mp4",
		InputSize:    99,
	}, testStaging)

	vf, ok := findFlagValue(t, args, "-vf")
	if !ok {
		t.Fatal("expected a filter graph when a subtitle is present")
	}
	if strings.Contains(vf, "scale=") {
		t.Errorf("unexpected downscale stage for small input: %s", vf)
	}
}

func TestBuildArgsDownscalePrecedesSubtitles(t *testing.T) {
	args := BuildArgs(BurnArgs{
		InputPath:    "in.mp4",
		SubtitlePath: "subs.srt",
		OutputPath:   "out.mp4",
		InputSize:    101,
	}, testStaging)

	vf, ok := findFlagValue(t, args, "-vf")
	if !ok {
		t.Fatal("expected a filter graph for large input")
	}
	scaleIdx := strings.Index(vf, "scale=")
	subIdx := strings.Index(vf, "subtitles=")
	if scaleIdx == -1 || subIdx == -1 {
		t.Fatalf("filter graph missing a stage: %s", vf)
	}
	if scaleIdx > subIdx {
		t.Errorf("downscale stage must precede the subtitle stage: %s", vf)
	}
	if !strings.Contains(vf, ",") {
		t.Errorf("stages must be comma-joined: %s", vf)
	}
}

func TestBuildArgsEncodeTier(t *testing.T) {
	small := BuildArgs(BurnArgs{InputPath: "in.mp4", OutputPath: "out.mp4", InputSize: 10}, testStaging)
	large := BuildArgs(BurnArgs{InputPath: "in.mp4", OutputPath: "out.mp4", InputSize: 500}, testStaging)

	if preset, _ := findFlagValue(t, small, "-preset"); preset != "medium" {
		t.Errorf("small input preset = %s, want medium", preset)
	}
	if crf, _ := findFlagValue(t, small, "-crf"); crf != "23" {
		t.Errorf("small input crf = %s, want 23", crf)
	}
	if preset, _ := findFlagValue(t, large, "-preset"); preset != "faster" {
		t.Errorf("large input preset = %s, want faster", preset)
	}
	if crf, _ := findFlagValue(t, large, "-crf"); crf != "28" {
		t.Errorf("large input crf = %s, want 28", crf)
	}
}

func TestBuildArgsOptionalParts(t *testing.T) {
	args := BuildArgs(BurnArgs{
		InputPath:  "in.mp4",
		OutputPath: "out.mp4",
		InputSize:  10,
	}, testStaging)

	if _, ok := findFlagValue(t, args, "-vf"); ok {
		t.Error("no filter graph expected without a subtitle for a small input")
	}
	if _, ok := findFlagValue(t, args, "-r"); ok {
		t.Error("no frame-rate override expected when FrameRate is zero")
	}
	if args[len(args)-1] != "out.mp4" {
		t.Errorf("output path must be the final argument, got %s", args[len(args)-1])
	}
}
