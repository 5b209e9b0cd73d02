package subtitles

import (
	"strings"
	"testing"

	"github.com/Zixzorash/BURN-SUB/internal/models"
)

func TestASSColourReordersComponents(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"FF0000", "&H000000FF"}, // red
		{"00FF00", "&H0000FF00"}, // green
		{"0000FF", "&H00FF0000"}, // blue
		{"123456", "&H00563412"},
		{"#AABBCC", "&H00CCBBAA"},
		{"ffffff", "&H00FFFFFF"},
	}
	for _, c := range cases {
		if got := ASSColour(c.in); got != c.want {
			t.Errorf("ASSColour(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestASSColourMalformedFallsBackToWhite(t *testing.T) {
	for _, in := range []string{"", "fff", "1234567", "12345", "gggggg", "12 456"} {
		if got := ASSColour(in); got != FallbackColour {
			t.Errorf("ASSColour(%q) = %q, want fallback %q", in, got, FallbackColour)
		}
	}
}

func TestAlignmentCodes(t *testing.T) {
	cases := map[models.Alignment]int{
		models.AlignmentTop:    8,
		models.AlignmentMiddle: 5,
		models.AlignmentBottom: 2,
	}
	for alignment, want := range cases {
		if got := AlignmentCode(alignment); got != want {
			t.Errorf("AlignmentCode(%q) = %d, want %d", alignment, got, want)
		}
	}
	if got := AlignmentCode(models.Alignment("sideways")); got != 2 {
		t.Errorf("unknown alignment = %d, want bottom code 2", got)
	}
}

func TestForceStyle(t *testing.T) {
	style := models.StyleSpec{
		FontSize:       28,
		PrimaryColor:   "FFCC00",
		OutlineColor:   "000000",
		OutlineWidth:   1.5,
		MarginVertical: 20,
		Alignment:      models.AlignmentBottom,
		Bold:           true,
		Italic:         false,
	}

	got := ForceStyle(style)
	want := "FontSize=28,PrimaryColour=&H0000CCFF,OutlineColour=&H00000000,Outline=1.5,MarginV=20,Alignment=2,Bold=-1,Italic=0"
	if got != want {
		t.Errorf("ForceStyle = %q, want %q", got, want)
	}
}

func TestForceStyleMalformedColourNonFatal(t *testing.T) {
	style := models.StyleSpec{
		FontSize:     24,
		PrimaryColor: "nope",
		OutlineColor: "12345",
		Alignment:    models.AlignmentTop,
	}
	got := ForceStyle(style)
	if !strings.Contains(got, "PrimaryColour="+FallbackColour) {
		t.Errorf("malformed primary colour not replaced: %q", got)
	}
	if !strings.Contains(got, "OutlineColour="+FallbackColour) {
		t.Errorf("malformed outline colour not replaced: %q", got)
	}
	if !strings.Contains(got, "Alignment=8") {
		t.Errorf("top alignment not mapped: %q", got)
	}
}

func TestDetectFormat(t *testing.T) {
	cases := map[string]Format{
		"movie.srt":  FormatSRT,
		"movie.ASS":  FormatASS,
		"movie.ssa":  FormatASS,
		"movie.vtt":  FormatVTT,
		"movie.text": FormatSRT,
	}
	for name, want := range cases {
		if got := DetectFormat(name); got != want {
			t.Errorf("DetectFormat(%q) = %q, want %q", name, got, want)
		}
	}
}
