package color

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHue(t *testing.T) {
	assert.Equal(t, 327, Hue("art")) // 97 + 114 + 116
	assert.Equal(t, 0, Hue(""))
	assert.Equal(t, (233+99+111+108+101)%360, Hue("école"))
	assert.Equal(t, 277, Hue("😀")) // high surrogate 0xD83D
	assert.Equal(t, (0xD83D+97)%360, Hue("😀a"))
	assert.Equal(t, "hsl(277, 70%, 50%)", TermColor("😀").CSS)
}

func TestTermColor(t *testing.T) {
	c := TermColor("art")
	assert.Equal(t, "hsl(327, 70%, 50%)", c.CSS)
	assert.Len(t, c.Hex, 7)
	assert.True(t, strings.HasPrefix(c.Hex, "#"))
	assert.Equal(t, c, TermColor("art"), "stable across calls")
	assert.NotEqual(t, c, TermColor("nhs"))
}

func TestHSL_Hex(t *testing.T) {
	assert.Equal(t, "#ff0000", HSL(0, 100, 50).Hex)
	assert.Equal(t, "#ffffff", HSL(0, 0, 100).Hex)
	assert.Equal(t, "#000000", HSL(120, 50, 0).Hex)
}

func TestHighlightColor(t *testing.T) {
	c := HighlightColor("art")
	assert.Equal(t, "hsla(327, 70%, 50%, 0.3)", c.CSS)
	assert.Equal(t, DarkText, ContrastText(c.Hex), "highlights are light enough for dark text")
}

func TestFromHex(t *testing.T) {
	c, err := FromHex("#6AB023")
	require.NoError(t, err)
	assert.Equal(t, "#6AB023", c.CSS)
	assert.Equal(t, "#6ab023", c.Hex)

	c, err = FromHex("#fff")
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", c.Hex)

	for _, bad := range []string{"6ab023", "#6ab02", "#ggg", "red", ""} {
		_, err := FromHex(bad)
		assert.ErrorIs(t, err, ErrInvalidHex, bad)
	}
}

func TestContrastText(t *testing.T) {
	tests := []struct {
		background string
		want       string
	}{
		{"#ffffff", DarkText},
		{"#FFF", DarkText},
		{"#000000", LightText},
		{"#000", LightText},
		{"#0087DC", LightText},
		{"#FDF38E", DarkText},
		{"#808080", DarkText},
		{"#7f7f7f", LightText},
		{"hsl(0, 0%, 0%)", DarkText},
		{"black", DarkText},
		{"#12345", DarkText},
	}
	for _, tt := range tests {
		t.Run(tt.background, func(t *testing.T) {
			assert.Equal(t, tt.want, ContrastText(tt.background))
		})
	}
}

func TestPalette(t *testing.T) {
	p := NewPalette(map[string]string{
		"Green Party": "#6AB023",
		"Broken":      "not-a-color",
	}, nil)

	assert.Equal(t, "#6ab023", p.Party("Green Party").Hex)

	fallback := p.Party("Broken")
	assert.Equal(t, HSL(Hue("Broken"), 60, 75), fallback)

	unknown := p.Party("Unknown")
	assert.Equal(t, "hsl("+strconv.Itoa(Hue("Unknown"))+", 60%, 75%)", unknown.CSS)

	p.Set("Unknown", Color{CSS: "#ccc", Hex: "#cccccc"})
	assert.Equal(t, "#cccccc", p.Party("Unknown").Hex)
	assert.Len(t, p.Table(), 2)
}

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	assert.Len(t, p.Table(), len(DefaultPartyColors))
	assert.Equal(t, "#e4003b", p.Party("Labour Party").Hex)
}
