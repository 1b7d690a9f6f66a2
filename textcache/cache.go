package textcache

import (
	"log/slog"
	"sync"

	"github.com/poiesic/hustings/core"
)

// Entry is the extracted text of one document section.
type Entry struct {
	Key  string
	Text string
}

type pending struct {
	once sync.Once
}

// Extractor converts a section's HTML into plain text.
type Extractor func(markup string) string

// Cache holds extracted text per (document location, section key).
// Entries are computed once when a document is added and never change.
type Cache struct {
	mu        sync.RWMutex
	entries   map[string][]Entry
	pending   map[string]*pending
	extract   Extractor
	logger    *slog.Logger
	extracted int
}

// Option configures a Cache.
type Option func(*Cache) error

// WithExtractor replaces the HTML text extractor.
// Default is Extract.
func WithExtractor(fn Extractor) Option {
	return func(c *Cache) error {
		if fn == nil {
			return ErrExtractorRequired
		}
		c.extract = fn
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// New creates an empty Cache.
func New(opts ...Option) (*Cache, error) {
	c := &Cache{
		entries: make(map[string][]Entry),
		pending: make(map[string]*pending),
		extract: Extract,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add extracts text for every string-valued section of doc, in section
// order. Adding a document whose location is already cached is a no-op;
// concurrent adds of the same location extract once.
func (c *Cache) Add(doc *core.Document) {
	c.mu.Lock()
	p, ok := c.pending[doc.Location]
	if !ok {
		p = &pending{}
		c.pending[doc.Location] = p
	}
	c.mu.Unlock()

	p.once.Do(func() {
		entries := make([]Entry, 0, len(doc.Sections))
		for _, s := range doc.Sections {
			raw, ok := s.Text()
			if !ok {
				continue
			}
			entries = append(entries, Entry{Key: s.Key, Text: c.extract(raw)})
		}

		c.mu.Lock()
		c.entries[doc.Location] = entries
		c.extracted += len(entries)
		c.mu.Unlock()
		c.logger.Debug("cached document text", "location", doc.Location, "sections", len(entries))
	})
}

// Get returns the cached text for one section.
func (c *Cache) Get(location, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.entries[location] {
		if e.Key == key {
			return e.Text, true
		}
	}
	return "", false
}

// Entries returns the cached sections of a document in section order.
// The returned slice must not be modified.
func (c *Cache) Entries(location string) []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[location]
}

// Len returns the number of cached section entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.extracted
}
