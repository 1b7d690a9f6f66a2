package core

import (
	"slices"
	"strings"
)

// TermSet is an ordered set of lowercase, trimmed search terms.
// The zero value is an empty set ready to use. TermSet is not safe for
// concurrent use; callers own synchronization.
type TermSet struct {
	terms []string
}

// NewTermSet creates a set from comma separated inputs.
func NewTermSet(inputs ...string) *TermSet {
	ts := &TermSet{}
	for _, in := range inputs {
		ts.Add(in)
	}
	return ts
}

// NormalizeTerm lowercases and trims a single term.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Add splits input on commas, normalizes each part and appends the ones not
// already present. It returns the newly added terms in input order.
func (ts *TermSet) Add(input string) []string {
	var added []string
	for _, part := range strings.Split(input, ",") {
		term := NormalizeTerm(part)
		if term == "" || ts.Contains(term) {
			continue
		}
		ts.terms = append(ts.terms, term)
		added = append(added, term)
	}
	return added
}

// Remove deletes a term. It reports whether the term was present.
func (ts *TermSet) Remove(term string) bool {
	term = NormalizeTerm(term)
	i := slices.Index(ts.terms, term)
	if i < 0 {
		return false
	}
	ts.terms = slices.Delete(ts.terms, i, i+1)
	return true
}

// Contains reports whether the normalized term is in the set.
func (ts *TermSet) Contains(term string) bool {
	return slices.Contains(ts.terms, NormalizeTerm(term))
}

// Len returns the number of terms.
func (ts *TermSet) Len() int {
	return len(ts.terms)
}

// Terms returns a copy of the terms in insertion order.
func (ts *TermSet) Terms() []string {
	return slices.Clone(ts.terms)
}
