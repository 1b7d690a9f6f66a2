package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/poiesic/hustings/color"
	"github.com/poiesic/hustings/core"
	"github.com/poiesic/hustings/search"
)

const (
	// DefaultSnippetRadius is the context shown around the first match.
	DefaultSnippetRadius = 120

	// NoMatches is printed when no candidate passes the filter.
	NoMatches = "No matches found."
)

// Renderer writes search results to a terminal or other writer.
type Renderer struct {
	out     io.Writer
	styles  Styles
	palette *color.Palette
	full    bool
	radius  int
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithStyles overrides the styles chosen for the writer.
func WithStyles(s Styles) RendererOption {
	return func(r *Renderer) { r.styles = s }
}

// WithPalette sets the party palette.
// Default is color.DefaultPalette().
func WithPalette(p *color.Palette) RendererOption {
	return func(r *Renderer) {
		if p != nil {
			r.palette = p
		}
	}
}

// WithFullText shows whole sections instead of snippets.
func WithFullText(full bool) RendererOption {
	return func(r *Renderer) { r.full = full }
}

// WithSnippetRadius sets the snippet context in runes.
func WithSnippetRadius(n int) RendererOption {
	return func(r *Renderer) {
		if n > 0 {
			r.radius = n
		}
	}
}

// NewRenderer creates a Renderer for out. Styling is enabled only when out
// is a terminal and NO_COLOR is unset.
func NewRenderer(out io.Writer, opts ...RendererOption) *Renderer {
	r := &Renderer{
		out:     out,
		styles:  StylesFor(out, false),
		palette: color.DefaultPalette(),
		radius:  DefaultSnippetRadius,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetFullText switches between snippets and whole sections.
func (r *Renderer) SetFullText(full bool) {
	r.full = full
}

// FullText reports whether whole sections are shown.
func (r *Renderer) FullText() bool {
	return r.full
}

// Render writes candidate groups followed by the party breakdown. A result
// with no terms writes nothing.
func (r *Renderer) Render(res *search.Result) error {
	if len(res.Terms) == 0 {
		return nil
	}
	var b strings.Builder

	if !res.Found() {
		b.WriteString(r.styles.Muted.Render(NoMatches))
		b.WriteString("\n")
	}
	for i, g := range res.Candidates {
		if i > 0 {
			b.WriteString("\n")
		}
		r.writeGroup(&b, g, res)
	}

	if len(res.Breakdown) > 0 {
		b.WriteString("\n")
		r.writeBreakdown(&b, res)
	}

	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *Renderer) writeGroup(b *strings.Builder, g search.Group, res *search.Result) {
	name := g.Candidate
	if name == "" {
		name = g.PersonID
	}
	fmt.Fprintf(b, "%s (%s) %s\n",
		r.styles.Name.Render(name),
		r.styles.chip(r.palette.Party(g.Party)).Render(g.Party),
		r.styles.URL.Render(g.URL))

	for _, sec := range g.Sections {
		b.WriteString("  ")
		b.WriteString(r.styles.Section.Render(sec.Key))
		b.WriteString("\n")

		text := Sanitize(sec.Raw)
		if !r.full {
			text = Snippet(text, res.Terms, r.radius)
		}
		body := r.segments(Highlight(text, res.Terms, res.Colors))
		b.WriteString(indent(body, "    "))
		b.WriteString("\n")
	}
}

func (r *Renderer) writeBreakdown(b *strings.Builder, res *search.Result) {
	b.WriteString(r.styles.Heading.Render("Party Breakdown"))
	b.WriteString("\n")
	for _, pc := range res.Breakdown {
		line := formatCount(pc)
		if pc.Party == res.Filter {
			b.WriteString("* ")
			b.WriteString(r.styles.Active.Render(line))
		} else {
			b.WriteString("  ")
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	if res.Filter != "" {
		if _, shown := res.MatchedCounts()[res.Filter]; !shown {
			fmt.Fprintf(b, "* %s\n", r.styles.Active.Render(res.Filter+": no matches"))
		}
	}
}

func formatCount(pc core.PartyCount) string {
	return fmt.Sprintf("%s: %d / %d", pc.Party, pc.Matched, pc.Total)
}

// segments renders highlighted text. Styles are applied per line so
// multi-line runs are not padded into blocks.
func (r *Renderer) segments(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		switch s.Kind {
		case Match:
			b.WriteString(perLine(r.styles.highlight(s.Term), s.Text))
		case Link:
			b.WriteString(perLine(r.styles.Link, s.Text))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

func perLine(style lipgloss.Style, s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = style.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// RenderTerms writes the current terms, each on its color.
func (r *Renderer) RenderTerms(terms []string, colors map[string]color.Color, mode core.MatchMode) error {
	if len(terms) == 0 {
		_, err := fmt.Fprintln(r.out, r.styles.Muted.Render("No search terms."))
		return err
	}
	chips := make([]string, len(terms))
	for i, t := range terms {
		c, ok := colors[t]
		if !ok {
			c = color.TermColor(t)
		}
		chips[i] = r.styles.chip(c).Render(t)
	}
	_, err := fmt.Fprintf(r.out, "%s %s\n", strings.Join(chips, " "), r.styles.Muted.Render("(match "+mode.String()+")"))
	return err
}

// Notice writes an informational message.
func (r *Renderer) Notice(msg string) error {
	_, err := fmt.Fprintln(r.out, r.styles.Notice.Render(msg))
	return err
}
