package corpus

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/poiesic/hustings/core"
)

// DecodeDocument reads a JSON object from r and returns it as a Document
// whose sections keep the object's key order. null values become the empty
// string; other non-string values are kept as decoded.
func DecodeDocument(location string, r io.Reader) (*core.Document, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", location, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("decode %s: %w", location, ErrNotObject)
	}

	doc := &core.Document{
		Location: location,
		Identity: core.ParseIdentity(location),
	}
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", location, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("decode %s: unexpected token %v", location, tok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode %s: key %q: %w", location, key, err)
		}
		if value == nil {
			value = ""
		}

		// Duplicate keys keep the first position and the last value.
		if i, dup := seen[key]; dup {
			doc.Sections[i].Value = value
			continue
		}
		seen[key] = len(doc.Sections)
		doc.Sections = append(doc.Sections, core.Section{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", location, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("decode %s: %w", location, ErrTrailingData)
	}
	return doc, nil
}
