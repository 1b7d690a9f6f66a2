package present

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/poiesic/hustings/color"
)

// Color palette for chrome around results.
const (
	ColorAccent    = "#5fafd7"
	ColorMuted     = "#8a8a8a"
	ColorNotice    = "#d7af00"
	ColorActive    = "#87d75f"
	ColorSeparator = "#444444"
)

// Styles holds the styles used by a Renderer.
type Styles struct {
	renderer *lipgloss.Renderer
	plain    bool

	Name      lipgloss.Style
	URL       lipgloss.Style
	Section   lipgloss.Style
	Heading   lipgloss.Style
	Muted     lipgloss.Style
	Notice    lipgloss.Style
	Active    lipgloss.Style
	Link      lipgloss.Style
	Separator lipgloss.Style
}

// DefaultStyles returns colored styles bound to w's color profile.
func DefaultStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		renderer:  r,
		Name:      r.NewStyle().Bold(true),
		URL:       r.NewStyle().Foreground(lipgloss.Color(ColorAccent)).Underline(true),
		Section:   r.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccent)),
		Heading:   r.NewStyle().Bold(true),
		Muted:     r.NewStyle().Foreground(lipgloss.Color(ColorMuted)),
		Notice:    r.NewStyle().Foreground(lipgloss.Color(ColorNotice)),
		Active:    r.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color(ColorActive)),
		Link:      r.NewStyle().Underline(true),
		Separator: r.NewStyle().Foreground(lipgloss.Color(ColorSeparator)),
	}
}

// PlainStyles returns styles that emit text unchanged.
func PlainStyles() Styles {
	r := lipgloss.NewRenderer(io.Discard)
	s := r.NewStyle()
	return Styles{
		renderer:  r,
		plain:     true,
		Name:      s,
		URL:       s,
		Section:   s,
		Heading:   s,
		Muted:     s,
		Notice:    s,
		Active:    s,
		Link:      s,
		Separator: s,
	}
}

// Plain reports whether the styles emit no escape sequences.
func (s Styles) Plain() bool {
	return s.plain
}

// highlight styles a matched term with its translucent color.
func (s Styles) highlight(term string) lipgloss.Style {
	if s.plain {
		return s.renderer.NewStyle()
	}
	bg := color.HighlightColor(term).Hex
	return s.renderer.NewStyle().
		Bold(true).
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(color.ContrastText(bg)))
}

// chip styles a label on a solid background.
func (s Styles) chip(c color.Color) lipgloss.Style {
	if s.plain {
		return s.renderer.NewStyle()
	}
	return s.renderer.NewStyle().
		Background(lipgloss.Color(c.Hex)).
		Foreground(lipgloss.Color(color.ContrastText(c.Hex))).
		Padding(0, 1)
}

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// DetectNoColor checks if NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// StylesFor picks colored styles for terminals and plain styles otherwise.
func StylesFor(w io.Writer, noColor bool) Styles {
	if noColor || DetectNoColor() || !IsTTY(w) {
		return PlainStyles()
	}
	return DefaultStyles(w)
}
