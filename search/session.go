package search

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/poiesic/hustings/color"
	"github.com/poiesic/hustings/core"
	"github.com/poiesic/hustings/corpus"
)

// CorpusLoader provides the loaded corpus, loading it on first use.
type CorpusLoader interface {
	Load(ctx context.Context) (*corpus.Corpus, error)
}

// Session holds one user's search state: the term set with its colors, the
// match mode, the party filter and the current match set. A Session is safe
// for concurrent use.
type Session struct {
	loader      CorpusLoader
	parties     corpus.PartyResolver
	profileBase string
	monitor     Monitor
	logger      *slog.Logger

	mu      sync.Mutex
	terms   core.TermSet
	colors  map[string]color.Color
	mode    core.MatchMode
	filter  string
	matches []core.MatchRecord
}

// Option configures a Session.
type Option func(*Session) error

// WithProfileBase sets the base of candidate profile URLs.
// Default is core.DefaultProfileBase.
func WithProfileBase(base string) Option {
	return func(s *Session) error {
		if base != "" {
			s.profileBase = base
		}
		return nil
	}
}

// WithMode sets the initial match mode.
// Default is core.MatchAll.
func WithMode(mode core.MatchMode) Option {
	return func(s *Session) error {
		s.mode = mode
		return nil
	}
}

// WithMonitor sets a monitor that observes each Run.
func WithMonitor(m Monitor) Option {
	return func(s *Session) error {
		if m != nil {
			s.monitor = m
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSession creates a Session with no terms.
func NewSession(loader CorpusLoader, parties corpus.PartyResolver, opts ...Option) (*Session, error) {
	if loader == nil {
		return nil, ErrCorpusRequired
	}
	if parties == nil {
		return nil, ErrPartiesRequired
	}
	s := &Session{
		loader:      loader,
		parties:     parties,
		profileBase: core.DefaultProfileBase,
		monitor:     noopMonitor{},
		logger:      slog.Default(),
		colors:      make(map[string]color.Color),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// AddTerms adds comma separated terms and assigns each new term its color.
// It returns the terms that were not already present.
func (s *Session) AddTerms(input string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := s.terms.Add(input)
	for _, t := range added {
		s.colors[t] = color.TermColor(t)
	}
	return added
}

// RemoveTerm removes a term and releases its color.
func (s *Session) RemoveTerm(term string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.terms.Remove(term) {
		return false
	}
	delete(s.colors, core.NormalizeTerm(term))
	return true
}

// ClearTerms removes every term.
func (s *Session) ClearTerms() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terms = core.TermSet{}
	clear(s.colors)
}

// Terms returns the current terms in insertion order.
func (s *Session) Terms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terms.Terms()
}

// TermColor returns the color of a current term.
func (s *Session) TermColor(term string) (color.Color, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.colors[core.NormalizeTerm(term)]
	return c, ok
}

// SetMode sets how terms combine.
func (s *Session) SetMode(mode core.MatchMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// Mode returns the current match mode.
func (s *Session) Mode() core.MatchMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// ToggleParty makes party the active filter, or clears the filter when party
// is already active. It reports whether a filter is active afterwards.
func (s *Session) ToggleParty(party string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filter == party {
		s.filter = ""
		return false
	}
	s.filter = party
	return true
}

// ClearFilter removes the party filter.
func (s *Session) ClearFilter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = ""
}

// Filter returns the active party filter, or "".
func (s *Session) Filter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Matches returns a copy of the current match set. It holds every match of
// the last Run regardless of the party filter.
func (s *Session) Matches() []core.MatchRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.matches)
}

// CanExport reports whether the current match set is non-empty.
func (s *Session) CanExport() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.matches) > 0
}

// Run recomputes matches for the current state, loading the corpus if
// needed. With no terms it clears the match set without loading.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	q := query{
		terms:  s.terms.Terms(),
		mode:   s.mode,
		filter: s.filter,
	}
	colors := maps.Clone(s.colors)
	s.mu.Unlock()

	s.monitor.Start(q.terms, q.mode)

	if len(q.terms) == 0 {
		res := &Result{Mode: q.mode, Filter: q.filter, Colors: colors}
		s.setMatches(nil)
		s.monitor.Finish(res)
		return res, nil
	}

	c, err := s.loader.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load corpus", "err", err)
		return nil, err
	}
	s.monitor.AfterLoad(c.Len())

	res := s.scan(c, q)
	res.Colors = colors
	s.setMatches(res.Matches)

	s.logger.Debug("search complete",
		"terms", q.terms,
		"mode", q.mode.String(),
		"filter", q.filter,
		"matches", len(res.Matches),
		"documents", res.Documents)
	s.monitor.Finish(res)
	return res, nil
}

func (s *Session) setMatches(matches []core.MatchRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches = matches
}

type query struct {
	terms  []string
	mode   core.MatchMode
	filter string
}

func (s *Session) scan(c *corpus.Corpus, q query) *Result {
	res := &Result{
		Terms:  q.terms,
		Mode:   q.mode,
		Filter: q.filter,
	}
	matched := make(map[string]int)
	var order []string

	for _, doc := range c.Documents() {
		var sections []SectionMatch
		for _, entry := range c.Sections(doc) {
			if !q.mode.Matches(strings.ToLower(entry.Text), q.terms) {
				continue
			}
			raw := ""
			if sec, ok := doc.Section(entry.Key); ok {
				raw, _ = sec.Text()
			}
			sections = append(sections, SectionMatch{Key: entry.Key, Raw: raw, Text: entry.Text})
		}
		if len(sections) == 0 {
			continue
		}

		id := doc.Identity.PersonID
		party := s.parties.Lookup(id)
		url := core.ProfileURL(s.profileBase, id)
		for _, sec := range sections {
			rec := core.MatchRecord{
				Candidate: doc.Identity.Name,
				PersonID:  id,
				Party:     party,
				URL:       url,
				Section:   sec.Key,
				RawText:   sec.Raw,
			}
			res.Matches = append(res.Matches, rec)
			s.monitor.Match(rec)
		}

		res.Documents++
		if _, seen := matched[party]; !seen {
			order = append(order, party)
		}
		matched[party]++

		if q.filter != "" && party != q.filter {
			continue
		}
		res.Candidates = append(res.Candidates, Group{
			Candidate: doc.Identity.Name,
			PersonID:  id,
			Party:     party,
			URL:       url,
			Location:  doc.Location,
			Sections:  sections,
		})
	}

	for _, party := range order {
		res.Breakdown = append(res.Breakdown, core.PartyCount{
			Party:   party,
			Matched: matched[party],
			Total:   c.Total(party),
		})
	}
	return res
}
