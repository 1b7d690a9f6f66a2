package present

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/poiesic/hustings/color"
)

// SegmentKind classifies a run of text.
type SegmentKind int

const (
	// Plain is unmatched text.
	Plain SegmentKind = iota
	// Match is text matching a search term.
	Match
	// Link is a URL inside unmatched text.
	Link
)

// Segment is a run of text with one presentation.
type Segment struct {
	Kind  SegmentKind
	Text  string
	Term  string
	Color color.Color
}

var urlPattern = regexp.MustCompile(`https?://[^\s<>"'()\[\]]+[^\s<>"'()\[\].,;:!?]`)

// Highlight splits text into plain and matched segments. Matching is
// case-insensitive; at each position the leftmost match wins and earlier
// terms win ties. Every term must have a color in colors: a missing color
// panics. URLs in unmatched text become Link segments.
func Highlight(text string, terms []string, colors map[string]color.Color) []Segment {
	var segments []Segment
	addPlain := func(s string) {
		if s != "" {
			segments = append(segments, splitLinks(s)...)
		}
	}

	re, groupTerms := termPattern(terms)
	if re == nil {
		addPlain(text)
		return segments
	}

	last := 0
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		if loc[1] == loc[0] {
			continue
		}
		term := ""
		for g := 1; g < len(loc)/2; g++ {
			if loc[2*g] >= 0 {
				term = groupTerms[g-1]
				break
			}
		}
		c, ok := colors[term]
		if !ok {
			panic(fmt.Sprintf("present: no color registered for term %q", term))
		}
		addPlain(text[last:loc[0]])
		segments = append(segments, Segment{Kind: Match, Text: text[loc[0]:loc[1]], Term: term, Color: c})
		last = loc[1]
	}
	addPlain(text[last:])
	return segments
}

func termPattern(terms []string) (*regexp.Regexp, []string) {
	var groups []string
	var parts []string
	for _, t := range terms {
		if t == "" {
			continue
		}
		groups = append(groups, t)
		parts = append(parts, "("+regexp.QuoteMeta(t)+")")
	}
	if len(parts) == 0 {
		return nil, nil
	}
	return regexp.MustCompile("(?i)" + strings.Join(parts, "|")), groups
}

func splitLinks(s string) []Segment {
	var out []Segment
	last := 0
	for _, loc := range urlPattern.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			out = append(out, Segment{Kind: Plain, Text: s[last:loc[0]]})
		}
		out = append(out, Segment{Kind: Link, Text: s[loc[0]:loc[1]]})
		last = loc[1]
	}
	if last < len(s) {
		out = append(out, Segment{Kind: Plain, Text: s[last:]})
	}
	return out
}

// Snippet returns up to radius runes of context either side of the first
// match of any term, with whitespace runs collapsed to single spaces and an
// ellipsis marking cut ends. Without a match it returns the first 2*radius
// runes.
func Snippet(text string, terms []string, radius int) string {
	text = collapseSpace(text)
	if radius <= 0 {
		return text
	}

	start, end := 0, 0
	after := 2 * radius
	if re, _ := termPattern(terms); re != nil {
		if loc := re.FindStringIndex(text); loc != nil {
			start, end = loc[0], loc[1]
			after = radius
		}
	}

	from := start
	for n := 0; n < radius && from > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(text[:from])
		from -= size
	}
	to := end
	for n := 0; n < after && to < len(text); n++ {
		_, size := utf8.DecodeRuneInString(text[to:])
		to += size
	}

	out := text[from:to]
	if from > 0 {
		out = "…" + out
	}
	if to < len(text) {
		out += "…"
	}
	return out
}

func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}
