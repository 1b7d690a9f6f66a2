package core

import (
	"encoding/binary"
	"net/url"
	"path"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

const (
	// UnknownParty is reported for person IDs missing from the party directory.
	UnknownParty = "Unknown"

	// DefaultProfileBase is the base of canonical candidate profile URLs.
	DefaultProfileBase = "https://candidates.democracyclub.org.uk/person"
)

// ID is a content-derived identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Section is one named fragment of a candidate's scraped content.
// Value holds the raw decoded JSON value; only string values are searchable.
type Section struct {
	Key   string
	Value any
}

// Text returns the section value and whether it is a string.
func (s Section) Text() (string, bool) {
	v, ok := s.Value.(string)
	return v, ok
}

// Document is one loaded corpus resource. Sections keep the key order of the
// source JSON object. A Document is never modified after loading.
type Document struct {
	Location string
	Identity Identity
	Sections []Section
}

// Section returns the section with the given key.
func (d *Document) Section(key string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

// Identity is the person a document belongs to, derived from its location.
type Identity struct {
	PersonID string
	Name     string
}

// ParseIdentity derives an Identity from a document location.
// The last path segment has its .json suffix removed and is split on "_":
// the first token is the person ID, the rest joined by spaces is the name.
func ParseIdentity(location string) Identity {
	base := location
	if u, err := url.Parse(location); err == nil && u.Scheme != "" && u.Host != "" {
		base = u.Path
	}
	base = strings.ReplaceAll(base, "\\", "/")
	base = path.Base(base)
	if unescaped, err := url.PathUnescape(base); err == nil {
		base = unescaped
	}
	if strings.HasSuffix(strings.ToLower(base), ".json") {
		base = base[:len(base)-len(".json")]
	}

	parts := strings.Split(base, "_")
	return Identity{
		PersonID: parts[0],
		Name:     strings.Join(parts[1:], " "),
	}
}

// ProfileURL returns the canonical profile URL for a person.
func ProfileURL(base, personID string) string {
	return strings.TrimRight(base, "/") + "/" + personID
}

// MatchMode selects how multiple terms combine.
type MatchMode int

const (
	// MatchAll requires every term to appear in the same section.
	MatchAll MatchMode = iota
	// MatchAny requires at least one term to appear.
	MatchAny
)

// String returns the lowercase name of the mode.
func (m MatchMode) String() string {
	switch m {
	case MatchAll:
		return "all"
	case MatchAny:
		return "any"
	default:
		return "unknown"
	}
}

// Matches reports whether lowered text satisfies the mode for terms.
// Terms must already be lowercase. An empty term list never matches.
func (m MatchMode) Matches(lowered string, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	switch m {
	case MatchAny:
		for _, term := range terms {
			if strings.Contains(lowered, term) {
				return true
			}
		}
		return false
	default:
		for _, term := range terms {
			if !strings.Contains(lowered, term) {
				return false
			}
		}
		return true
	}
}

// MatchRecord is one matching section of one candidate document.
type MatchRecord struct {
	Candidate string
	PersonID  string
	Party     string
	URL       string
	Section   string
	RawText   string
}

// PartyCount pairs a party with matched and total document counts.
type PartyCount struct {
	Party   string
	Matched int
	Total   int
}
