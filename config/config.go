package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/poiesic/hustings/color"
	"github.com/poiesic/hustings/core"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "hustings.yaml"

// Config is the complete hustings configuration.
type Config struct {
	Corpus         CorpusConfig `yaml:"corpus"`
	Party          PartyConfig  `yaml:"party"`
	ProfileBaseURL string       `yaml:"profile_base_url"`
	HTTP           HTTPConfig   `yaml:"http"`
	Scrape         ScrapeConfig `yaml:"scrape"`
}

// CorpusConfig names the documents to search.
type CorpusConfig struct {
	// Locations is an explicit list of document locations.
	Locations []string `yaml:"locations,omitempty"`
	// Manifest is a resource listing document locations.
	Manifest string `yaml:"manifest,omitempty"`
	// Dir is a local directory of *.json documents.
	Dir string `yaml:"dir,omitempty"`
	// Concurrency is the number of loader workers.
	Concurrency int `yaml:"concurrency"`
}

// PartyConfig configures the party feed and colors.
type PartyConfig struct {
	Feed string `yaml:"feed,omitempty"`
	// Wait bounds how long the first load waits for the feed before
	// computing party totals.
	Wait   time.Duration     `yaml:"wait"`
	Colors map[string]string `yaml:"colors"`
}

// HTTPConfig configures remote fetching.
type HTTPConfig struct {
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"user_agent"`
	MaxRetries int           `yaml:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

// ScrapeConfig configures the candidate site crawler.
type ScrapeConfig struct {
	CandidatesCSV string        `yaml:"candidates_csv"`
	OutputDir     string        `yaml:"output_dir"`
	ExistingDirs  []string      `yaml:"existing_dirs"`
	MaxPages      int           `yaml:"max_pages"`
	Delay         time.Duration `yaml:"delay"`
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	RespectRobots bool          `yaml:"respect_robots"`
	ExcludeFile   string        `yaml:"exclude_file,omitempty"`
	Workers       int           `yaml:"workers"`
	StateDir      string        `yaml:"state_dir"`
	Readability   bool          `yaml:"readability"`
}

// Default returns the built-in configuration.
func Default() *Config {
	colors := make(map[string]string, len(color.DefaultPartyColors))
	for k, v := range color.DefaultPartyColors {
		colors[k] = v
	}
	return &Config{
		Corpus: CorpusConfig{
			Concurrency: 8,
		},
		Party: PartyConfig{
			Wait:   2 * time.Second,
			Colors: colors,
		},
		ProfileBaseURL: core.DefaultProfileBase,
		HTTP: HTTPConfig{
			Timeout:    30 * time.Second,
			UserAgent:  "hustings/1.0",
			MaxRetries: 3,
			RetryDelay: 500 * time.Millisecond,
		},
		Scrape: ScrapeConfig{
			CandidatesCSV: "candidates.csv",
			OutputDir:     "assets/json",
			ExistingDirs:  []string{"assets/json"},
			MaxPages:      50,
			Delay:         time.Second,
			Timeout:       20 * time.Second,
			UserAgent:     "CandidateWebsiteScraper/1.0",
			RespectRobots: true,
			Workers:       min(4, max(1, runtime.NumCPU())),
			StateDir:      ".hustings/state",
		},
	}
}

// FastScrape applies the quick crawl preset: fewer pages, shorter delay and
// more workers.
func (s *ScrapeConfig) FastScrape() {
	s.MaxPages = 15
	s.Delay = 300 * time.Millisecond
	s.Workers = 6
}

// Load reads configuration from path over the defaults, applies HUSTINGS_*
// environment overrides and validates the result. An empty path reads
// DefaultFile when it exists.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.loadYAML(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadYAML decodes a YAML file onto c, keeping values the file omits.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("HUSTINGS_CORPUS_DIR"); v != "" {
		c.Corpus.Dir = v
	}
	if v := os.Getenv("HUSTINGS_CORPUS_MANIFEST"); v != "" {
		c.Corpus.Manifest = v
	}
	if v := os.Getenv("HUSTINGS_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Corpus.Concurrency = n
		}
	}
	if v := os.Getenv("HUSTINGS_PARTY_FEED"); v != "" {
		c.Party.Feed = v
	}
	if v := os.Getenv("HUSTINGS_PROFILE_BASE_URL"); v != "" {
		c.ProfileBaseURL = v
	}
	if v := os.Getenv("HUSTINGS_USER_AGENT"); v != "" {
		c.HTTP.UserAgent = v
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Corpus.Concurrency < 1 {
		return fmt.Errorf("corpus.concurrency must be at least 1, got %d", c.Corpus.Concurrency)
	}
	if c.Party.Wait < 0 {
		return fmt.Errorf("party.wait must be non-negative, got %s", c.Party.Wait)
	}
	for name, hex := range c.Party.Colors {
		if _, err := color.FromHex(hex); err != nil {
			return fmt.Errorf("party.colors[%s]: %w", name, err)
		}
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must be non-negative, got %s", c.HTTP.Timeout)
	}
	if c.HTTP.MaxRetries < 1 {
		return fmt.Errorf("http.max_retries must be at least 1, got %d", c.HTTP.MaxRetries)
	}
	if c.HTTP.RetryDelay < 0 {
		return fmt.Errorf("http.retry_delay must be non-negative, got %s", c.HTTP.RetryDelay)
	}
	if base := strings.ToLower(c.ProfileBaseURL); base != "" &&
		!strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return fmt.Errorf("profile_base_url must be an http(s) URL, got %s", c.ProfileBaseURL)
	}
	if c.Scrape.MaxPages < 1 {
		return fmt.Errorf("scrape.max_pages must be at least 1, got %d", c.Scrape.MaxPages)
	}
	if c.Scrape.Delay < 0 {
		return fmt.Errorf("scrape.delay must be non-negative, got %s", c.Scrape.Delay)
	}
	if c.Scrape.Workers < 1 {
		return fmt.Errorf("scrape.workers must be at least 1, got %d", c.Scrape.Workers)
	}
	return nil
}

// HasCorpus reports whether any corpus source is configured.
func (c *Config) HasCorpus() bool {
	return len(c.Corpus.Locations) > 0 || c.Corpus.Manifest != "" || c.Corpus.Dir != ""
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
