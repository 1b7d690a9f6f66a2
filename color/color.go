package color

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// DarkText is used on light backgrounds and on any non-hex color.
	DarkText = "#111111"
	// LightText is used on dark backgrounds.
	LightText = "#f5f5f5"

	// HighlightAlpha is the opacity of a term color behind matched text.
	HighlightAlpha = 0.3

	highlightBase = "#ffffff"
)

// Color is a display color in both CSS and hex form.
type Color struct {
	// CSS is the color as written in a style sheet.
	CSS string
	// Hex is the equivalent #rrggbb, for terminal styling.
	Hex string
}

// HSL builds a Color from a hue in degrees and saturation and lightness
// percentages.
func HSL(hue, saturation, lightness int) Color {
	c := colorful.Hsl(float64(hue), float64(saturation)/100, float64(lightness)/100)
	return Color{
		CSS: fmt.Sprintf("hsl(%d, %d%%, %d%%)", hue, saturation, lightness),
		Hex: c.Clamped().Hex(),
	}
}

// Hue returns the sum of the characters of s modulo 360. A character outside
// the Basic Multilingual Plane counts as its UTF-16 high surrogate.
func Hue(s string) int {
	sum := 0
	for _, r := range s {
		if r > 0xFFFF {
			r, _ = utf16.EncodeRune(r)
		}
		sum += int(r)
	}
	return sum % 360
}

// TermColor returns the color of a search term. Equal terms always get equal
// colors.
func TermColor(term string) Color {
	return HSL(Hue(term), 70, 50)
}

// HighlightColor returns a term's color at HighlightAlpha. The hex form is
// the color composited over white.
func HighlightColor(term string) Color {
	h := Hue(term)
	base, _ := colorful.Hex(highlightBase)
	c := colorful.Hsl(float64(h), 0.7, 0.5)
	return Color{
		CSS: fmt.Sprintf("hsla(%d, 70%%, 50%%, %.1f)", h, HighlightAlpha),
		Hex: base.BlendRgb(c, HighlightAlpha).Clamped().Hex(),
	}
}

// FromHex builds a Color from #rgb or #rrggbb.
func FromHex(s string) (Color, error) {
	full, ok := expandHex(s)
	if !ok {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	c, err := colorful.Hex(full)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return Color{CSS: s, Hex: c.Hex()}, nil
}

// ContrastText picks a readable text color for a background. Hex
// backgrounds get DarkText or LightText by perceived luminance; every other
// color gets DarkText.
func ContrastText(background string) string {
	full, ok := expandHex(background)
	if !ok {
		return DarkText
	}
	c, err := colorful.Hex(full)
	if err != nil {
		return DarkText
	}
	r, g, b := c.RGB255()
	luminance := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
	if luminance > 0.5 {
		return DarkText
	}
	return LightText
}

func expandHex(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return "", false
	}
	digits := s[1:]
	for _, r := range digits {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return "", false
		}
	}
	switch len(digits) {
	case 3:
		var b strings.Builder
		b.WriteByte('#')
		for i := range 3 {
			b.WriteByte(digits[i])
			b.WriteByte(digits[i])
		}
		return strings.ToLower(b.String()), true
	case 6:
		return strings.ToLower(s), true
	default:
		return "", false
	}
}
