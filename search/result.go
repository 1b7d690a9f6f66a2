package search

import (
	"github.com/poiesic/hustings/color"
	"github.com/poiesic/hustings/core"
)

// SectionMatch is one matching section of a candidate document.
type SectionMatch struct {
	Key string
	// Raw is the section's original HTML.
	Raw string
	// Text is the cached plain text the match was found in.
	Text string
}

// Group is a candidate with the sections that matched.
type Group struct {
	Candidate string
	PersonID  string
	Party     string
	URL       string
	Location  string
	Sections  []SectionMatch
}

// Result is the outcome of one Run.
type Result struct {
	Terms  []string
	Mode   core.MatchMode
	Filter string

	// Matches holds every matching section, ignoring the party filter.
	Matches []core.MatchRecord

	// Candidates holds the matched documents that pass the party filter,
	// in load order.
	Candidates []Group

	// Breakdown lists matched and total documents per party, in order of
	// first match. Matched counts ignore the party filter.
	Breakdown []core.PartyCount

	// Documents is the number of matched documents, ignoring the filter.
	Documents int

	// Colors maps each term to its display color.
	Colors map[string]color.Color
}

// Found reports whether any candidate passes the filter.
func (r *Result) Found() bool {
	return len(r.Candidates) > 0
}

// CanExport reports whether there is anything to export.
func (r *Result) CanExport() bool {
	return len(r.Matches) > 0
}

// MatchedCounts returns matched documents per party.
func (r *Result) MatchedCounts() map[string]int {
	out := make(map[string]int, len(r.Breakdown))
	for _, pc := range r.Breakdown {
		out[pc.Party] = pc.Matched
	}
	return out
}
