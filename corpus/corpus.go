package corpus

import (
	"maps"

	"github.com/poiesic/hustings/core"
	"github.com/poiesic/hustings/textcache"
)

// PartyResolver maps a person ID to a party name. Lookup never fails;
// unknown IDs resolve to core.UnknownParty.
type PartyResolver interface {
	Lookup(personID string) string
}

// Corpus is a fully loaded, immutable set of documents together with their
// cached text and the per-party document totals.
type Corpus struct {
	docs   []*core.Document
	cache  *textcache.Cache
	totals map[string]int
}

// NewCorpus assembles a Corpus and computes party totals with parties.
// Every document must already be in cache.
func NewCorpus(docs []*core.Document, cache *textcache.Cache, parties PartyResolver) *Corpus {
	totals := make(map[string]int)
	for _, d := range docs {
		party := core.UnknownParty
		if parties != nil {
			party = parties.Lookup(d.Identity.PersonID)
		}
		totals[party]++
	}
	return &Corpus{docs: docs, cache: cache, totals: totals}
}

// Documents returns the documents in load order.
// The returned slice must not be modified.
func (c *Corpus) Documents() []*core.Document {
	return c.docs
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	return len(c.docs)
}

// Sections returns the cached text sections of a document in section order.
func (c *Corpus) Sections(doc *core.Document) []textcache.Entry {
	return c.cache.Entries(doc.Location)
}

// Cache returns the text cache backing the corpus.
func (c *Corpus) Cache() *textcache.Cache {
	return c.cache
}

// Total returns the number of documents attributed to party.
func (c *Corpus) Total(party string) int {
	return c.totals[party]
}

// Totals returns a copy of the per-party document totals.
func (c *Corpus) Totals() map[string]int {
	return maps.Clone(c.totals)
}
