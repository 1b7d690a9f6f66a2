package scrape

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/hustings/party"
)

// Candidate roster columns.
const (
	ColumnPersonID   = "person_id"
	ColumnPersonName = "person_name"
	ColumnHomepage   = "homepage_url"
)

// Candidate is one roster row.
type Candidate struct {
	PersonID string
	Name     string
	Homepage string
}

// ExistingIDs returns the person IDs that already have a document in any of
// dirs. A document's person ID is the part of its file name before the first
// underscore. Missing directories are ignored.
func ExistingIDs(dirs []string) (map[string]bool, error) {
	ids := make(map[string]bool)
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
				continue
			}
			id, _, _ := strings.Cut(e.Name(), "_")
			if id != "" {
				ids[id] = true
			}
		}
	}
	return ids, nil
}

// MissingCandidates reads the roster at csvPath and returns, in roster
// order, the candidates without a document in jsonDirs. Rows without a
// person ID are skipped.
func MissingCandidates(csvPath string, jsonDirs []string) ([]Candidate, error) {
	existing, err := ExistingIDs(jsonDirs)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var missing []Candidate
	err = party.ForEachRow(f, func(row party.Row) error {
		id := row.Get(ColumnPersonID)
		if id == "" || existing[id] {
			return nil
		}
		name := row.Get(ColumnPersonName)
		if name == "" {
			name = "unknown"
		}
		missing = append(missing, Candidate{
			PersonID: id,
			Name:     name,
			Homepage: row.Get(ColumnHomepage),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read candidates %s: %w", csvPath, err)
	}
	return missing, nil
}
