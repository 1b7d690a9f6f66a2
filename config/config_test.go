package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8, cfg.Corpus.Concurrency)
	assert.Equal(t, "https://candidates.democracyclub.org.uk/person", cfg.ProfileBaseURL)
	assert.Equal(t, 50, cfg.Scrape.MaxPages)
	assert.Equal(t, time.Second, cfg.Scrape.Delay)
	assert.Equal(t, 20*time.Second, cfg.Scrape.Timeout)
	assert.Equal(t, "CandidateWebsiteScraper/1.0", cfg.Scrape.UserAgent)
	assert.True(t, cfg.Scrape.RespectRobots)
	assert.False(t, cfg.HasCorpus())
}

func TestFastScrape(t *testing.T) {
	cfg := Default()
	cfg.Scrape.FastScrape()
	assert.Equal(t, 15, cfg.Scrape.MaxPages)
	assert.Equal(t, 300*time.Millisecond, cfg.Scrape.Delay)
	assert.Equal(t, 6, cfg.Scrape.Workers)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hustings.yaml")
	content := `
corpus:
  manifest: https://example.org/manifest.txt
  concurrency: 4
party:
  feed: parties.csv
  wait: 500ms
  colors:
    Green Party: "#00ff00"
    Yorkshire Party: "#3cf"
http:
  timeout: 10s
scrape:
  existing_dirs: [a, b]
  readability: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.org/manifest.txt", cfg.Corpus.Manifest)
	assert.Equal(t, 4, cfg.Corpus.Concurrency)
	assert.Equal(t, "parties.csv", cfg.Party.Feed)
	assert.Equal(t, 500*time.Millisecond, cfg.Party.Wait)
	assert.Equal(t, "#00ff00", cfg.Party.Colors["Green Party"])
	assert.Equal(t, "#3cf", cfg.Party.Colors["Yorkshire Party"])
	assert.Equal(t, "#E4003B", cfg.Party.Colors["Labour Party"], "defaults kept")
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 3, cfg.HTTP.MaxRetries, "unset values keep defaults")
	assert.Equal(t, []string{"a", "b"}, cfg.Scrape.ExistingDirs)
	assert.True(t, cfg.Scrape.Readability)
	assert.True(t, cfg.HasCorpus())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "explicit path must exist")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("corpus: [\n"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("corpus:\n  concurrency: 0\n"), 0o644))
	_, err = Load(invalid)
	assert.ErrorContains(t, err, "corpus.concurrency")
}

func TestLoad_DefaultFileOptional(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Corpus, cfg.Corpus)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HUSTINGS_CORPUS_DIR", "/data/json")
	t.Setenv("HUSTINGS_CONCURRENCY", "3")
	t.Setenv("HUSTINGS_PARTY_FEED", "https://example.org/parties.csv")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/data/json", cfg.Corpus.Dir)
	assert.Equal(t, 3, cfg.Corpus.Concurrency)
	assert.Equal(t, "https://example.org/parties.csv", cfg.Party.Feed)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad color", func(c *Config) { c.Party.Colors["X"] = "green" }},
		{"negative wait", func(c *Config) { c.Party.Wait = -time.Second }},
		{"zero retries", func(c *Config) { c.HTTP.MaxRetries = 0 }},
		{"profile base not http", func(c *Config) { c.ProfileBaseURL = "ftp://x" }},
		{"zero pages", func(c *Config) { c.Scrape.MaxPages = 0 }},
		{"zero workers", func(c *Config) { c.Scrape.Workers = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.Corpus.Dir = "data"
	require.NoError(t, cfg.WriteYAML(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
