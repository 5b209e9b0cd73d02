package subtitles

import (
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatSRT Format = "srt"
	FormatASS Format = "ass"
	FormatVTT Format = "vtt"
)

// DetectFormat sniffs a subtitle format from the file extension. SRT is the
// supported path; ASS and VTT are passed through to the engine untouched.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ass", ".ssa":
		return FormatASS
	case ".vtt":
		return FormatVTT
	default:
		return FormatSRT
	}
}

// Ext returns the canonical file extension for a format.
func (f Format) Ext() string {
	return "." + string(f)
}
