package color

import (
	"log/slog"
	"maps"
	"sync"
)

// DefaultPartyColors holds the usual colors of the larger UK parties, keyed
// by the party names used in the candidate feed.
var DefaultPartyColors = map[string]string{
	"Labour Party":                     "#E4003B",
	"Labour and Co-operative Party":    "#E4003B",
	"Conservative and Unionist Party":  "#0087DC",
	"Liberal Democrats":                "#FAA61A",
	"Green Party":                      "#6AB023",
	"Scottish Green Party":             "#00B140",
	"Reform UK":                        "#12B6CF",
	"Scottish National Party (SNP)":    "#FDF38E",
	"Plaid Cymru - The Party of Wales": "#005B54",
	"Independent":                      "#DDDDDD",
}

// Palette assigns colors to parties from a configured table, falling back to
// a hue derived from the party name.
type Palette struct {
	mu     sync.RWMutex
	colors map[string]Color
}

// NewPalette builds a palette from party name to hex color. Invalid entries
// are logged and skipped.
func NewPalette(table map[string]string, logger *slog.Logger) *Palette {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Palette{colors: make(map[string]Color, len(table))}
	for name, hex := range table {
		c, err := FromHex(hex)
		if err != nil {
			logger.Warn("ignoring party color", "party", name, "err", err)
			continue
		}
		p.colors[name] = c
	}
	return p
}

// DefaultPalette returns a palette built from DefaultPartyColors.
func DefaultPalette() *Palette {
	return NewPalette(DefaultPartyColors, nil)
}

// Party returns the color for a party.
func (p *Palette) Party(name string) Color {
	p.mu.RLock()
	c, ok := p.colors[name]
	p.mu.RUnlock()
	if ok {
		return c
	}
	return HSL(Hue(name), 60, 75)
}

// Set overrides the color of one party.
func (p *Palette) Set(name string, c Color) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.colors[name] = c
}

// Table returns a copy of the configured colors.
func (p *Palette) Table() map[string]Color {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return maps.Clone(p.colors)
}
