package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultUserAgent identifies hustings to remote hosts.
	DefaultUserAgent = "hustings/1.0"

	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second
)

// Opener opens corpus resources by location. Locations with an http or https
// scheme are fetched over HTTP; everything else is read from the local
// filesystem (a file:// prefix is accepted).
type Opener struct {
	client     *http.Client
	userAgent  string
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// Option configures an Opener.
type Option func(*Opener) error

// WithHTTPClient sets the HTTP client.
// Default is a client with DefaultTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Opener) error {
		if client == nil {
			return ErrClientRequired
		}
		o.client = client
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent with HTTP requests.
func WithUserAgent(agent string) Option {
	return func(o *Opener) error {
		if agent != "" {
			o.userAgent = agent
		}
		return nil
	}
}

// WithRetry enables retries for Open. maxAttempts of 1 disables retrying.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(o *Opener) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		o.maxRetries = maxAttempts
		o.retryDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Opener) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOpener creates an Opener.
func NewOpener(opts ...Option) (*Opener, error) {
	o := &Opener{
		client:     &http.Client{Timeout: DefaultTimeout},
		userAgent:  DefaultUserAgent,
		maxRetries: 1,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Fetch opens a location once, without retrying.
func (o *Opener) Fetch(ctx context.Context, location string) (io.ReadCloser, error) {
	if IsRemote(location) {
		return o.get(ctx, location)
	}
	f, err := os.Open(localPath(location))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", location, err)
	}
	return f, nil
}

// Open opens a location, retrying with exponential backoff when configured.
// Missing local files are not retried.
func (o *Opener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	var rc io.ReadCloser
	err := RetryWithBackoff(ctx, func() error {
		var err error
		rc, err = o.Fetch(ctx, location)
		if err != nil && errors.Is(err, fs.ErrNotExist) {
			return Permanent(err)
		}
		return err
	}, o.maxRetries, o.retryDelay)
	if err != nil {
		o.logger.Debug("open failed", "location", location, "err", err)
		return nil, err
	}
	return rc, nil
}

// ReadAll opens a location and reads it fully.
func (o *Opener) ReadAll(ctx context.Context, location string) ([]byte, error) {
	rc, err := o.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (o *Opener) get(ctx context.Context, location string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", o.userAgent)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", location, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		err := &StatusError{Location: location, StatusCode: resp.StatusCode}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, Permanent(err)
		}
		return nil, err
	}
	return resp.Body, nil
}

// IsRemote reports whether a location is fetched over HTTP.
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Resolve resolves ref relative to the location of base, the way links in a
// manifest refer to siblings.
func Resolve(base, ref string) string {
	if IsRemote(ref) || filepath.IsAbs(ref) || strings.HasPrefix(ref, "file://") {
		return ref
	}
	if IsRemote(base) {
		b, err := url.Parse(base)
		if err != nil {
			return ref
		}
		r, err := url.Parse(ref)
		if err != nil {
			return ref
		}
		return b.ResolveReference(r).String()
	}
	dir := filepath.Dir(localPath(base))
	return filepath.Join(dir, filepath.FromSlash(path.Clean(ref)))
}

func localPath(location string) string {
	return strings.TrimPrefix(location, "file://")
}
