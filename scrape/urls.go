package scrape

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"regexp"
	"strings"
)

var (
	reScheme      = regexp.MustCompile(`(?i)^https?://`)
	reKeyRun      = regexp.MustCompile(`[^A-Za-z0-9]+`)
	reFilenameRun = regexp.MustCompile(`[^\p{L}\p{N}_\-]+`)
)

// skipExtensions lists paths that never hold page text.
var skipExtensions = map[string]bool{
	".pdf": true, ".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".svg": true, ".webp": true, ".mp4": true, ".mp3": true, ".wav": true,
	".zip": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true, ".csv": true, ".json": true, ".xml": true,
}

// NormalizeURL trims raw, adds https:// when no scheme is given and strips
// the fragment. It reports false for blank input.
func NormalizeURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if !reScheme.MatchString(raw) {
		raw = "https://" + raw
	}
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	return raw, true
}

// URLKey turns a URL into a document section key.
func URLKey(u string) string {
	return strings.Trim(reKeyRun.ReplaceAllString(u, "_"), "_")
}

// SafeFilename returns the document file name for a candidate.
func SafeFilename(personID, name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	name = strings.Trim(reFilenameRun.ReplaceAllString(name, "_"), "_")
	return fmt.Sprintf("%s_%s.json", personID, name)
}

func sameHost(a, b *url.URL) bool {
	return strings.EqualFold(a.Host, b.Host)
}

func shouldSkip(u *url.URL) bool {
	return skipExtensions[strings.ToLower(path.Ext(u.Path))]
}

// LoadExcludePatterns reads one regular expression per line from path.
// Blank lines and lines starting with # are ignored. A missing file yields
// no patterns.
func LoadExcludePatterns(path string) ([]*regexp.Regexp, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []*regexp.Regexp
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		re, err := regexp.Compile(text)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		patterns = append(patterns, re)
	}
	return patterns, sc.Err()
}
