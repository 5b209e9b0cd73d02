package subtitles

import (
	"fmt"
	"strings"

	"github.com/Zixzorash/BURN-SUB/internal/models"
)

// FallbackColour is used for any malformed color input. Opaque white keeps
// the burn pipeline non-fatal when the caller sends a bad value.
const FallbackColour = "&H00FFFFFF"

// ASS numpad alignment codes.
var alignmentCodes = map[models.Alignment]int{
	models.AlignmentTop:    8,
	models.AlignmentMiddle: 5,
	models.AlignmentBottom: 2,
}

// ASSColour converts a 6-hex-digit RGB string into the ASS &HAABBGGRR form
// with a fixed opaque alpha. Anything that is not exactly six hex digits
// falls back to opaque white instead of erroring.
func ASSColour(hex string) string {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return FallbackColour
	}
	for _, r := range hex {
		if !isHexDigit(r) {
			return FallbackColour
		}
	}
	r, g, b := hex[0:2], hex[2:4], hex[4:6]
	return strings.ToUpper(fmt.Sprintf("&H00%s%s%s", b, g, r))
}

// AlignmentCode maps the 3-way UI alignment onto the ASS numeric code.
// Unknown values land at the bottom, matching the player default.
func AlignmentCode(a models.Alignment) int {
	if code, ok := alignmentCodes[a]; ok {
		return code
	}
	return alignmentCodes[models.AlignmentBottom]
}

// ForceStyle renders a StyleSpec as the force_style override string consumed
// by the engine's subtitle filter.
func ForceStyle(style models.StyleSpec) string {
	return fmt.Sprintf(
		"FontSize=%d,PrimaryColour=%s,OutlineColour=%s,Outline=%g,MarginV=%d,Alignment=%d,Bold=%d,Italic=%d",
		style.FontSize,
		ASSColour(style.PrimaryColor),
		ASSColour(style.OutlineColor),
		style.OutlineWidth,
		style.MarginVertical,
		AlignmentCode(style.Alignment),
		assBool(style.Bold),
		assBool(style.Italic),
	)
}

// ASS booleans are -1 for true.
func assBool(b bool) int {
	if b {
		return -1
	}
	return 0
}

func isHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	}
	return false
}
