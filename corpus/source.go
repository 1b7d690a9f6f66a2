package corpus

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/poiesic/hustings/fetch"
)

// LocationSource yields the corpus locations to load.
type LocationSource interface {
	Locations(ctx context.Context) ([]string, error)
}

// Opener opens a resource, retrying transient failures.
type Opener interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// Source combines the configured ways of naming corpus resources: an explicit
// list, a manifest resource and a local directory. Locations are returned in
// that order with duplicates removed.
type Source struct {
	List     []string
	Manifest string
	Dir      string
	Opener   Opener
	Logger   *slog.Logger
}

var _ LocationSource = (*Source)(nil)

// Locations resolves the configured locations.
func (s *Source) Locations(ctx context.Context) ([]string, error) {
	var all []string
	all = append(all, s.List...)

	if s.Manifest != "" {
		if s.Opener == nil {
			return nil, ErrFetcherRequired
		}
		entries, err := ReadManifest(ctx, s.Opener, s.Manifest)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}

	if s.Dir != "" {
		files, err := Glob(s.Dir)
		if err != nil {
			return nil, err
		}
		all = append(all, files...)
	}

	locations := dedupe(all)
	if len(locations) == 0 {
		return nil, ErrNoLocations
	}
	s.logger().Debug("resolved corpus locations", "count", len(locations))
	return locations, nil
}

func (s *Source) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// ReadManifest reads a manifest resource. A manifest is either a JSON array
// of strings or plain text with one location per line, where blank lines and
// lines starting with # are ignored. Relative entries are resolved against
// the manifest location.
func ReadManifest(ctx context.Context, opener Opener, location string) ([]string, error) {
	rc, err := opener.Open(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", location, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", location, err)
	}

	entries, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", location, err)
	}
	for i, e := range entries {
		entries[i] = fetch.Resolve(location, e)
	}
	return entries, nil
}

// ParseManifest parses manifest content without resolving entries.
func ParseManifest(data []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var entries []string
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
		}
		out := entries[:0]
		for _, e := range entries {
			if e = strings.TrimSpace(e); e != "" {
				out = append(out, e)
			}
		}
		return out, nil
	}

	var entries []string
	sc := bufio.NewScanner(bytes.NewReader(trimmed))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Glob returns every *.json file in dir, sorted.
func Glob(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
