package scrape

import (
	"bytes"
	"encoding/json"
	"os"
)

// Site is the text of a crawled site keyed by URL, in crawl order.
type Site struct {
	keys  []string
	pages map[string]string
}

func newSite() *Site {
	return &Site{pages: make(map[string]string)}
}

// Add stores text under key. A repeated key keeps its first position.
func (s *Site) Add(key, text string) {
	if _, ok := s.pages[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.pages[key] = text
}

// Len returns the number of pages.
func (s *Site) Len() int {
	return len(s.keys)
}

// Keys returns the page keys in crawl order.
func (s *Site) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Page returns the text stored under key.
func (s *Site) Page(key string) (string, bool) {
	text, ok := s.pages[key]
	return text, ok
}

// MarshalJSON encodes the site as an object whose keys keep crawl order.
func (s *Site) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(k); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
		buf.WriteByte(':')
		if err := enc.Encode(s.pages[k]); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteFile writes the site as indented JSON to path.
func (s *Site) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
