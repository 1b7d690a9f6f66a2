package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/poiesic/hustings/core"
	"github.com/temoto/robotstxt"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultMaxPages caps the pages kept per site.
	DefaultMaxPages = 50
	// DefaultTimeout bounds each page request.
	DefaultTimeout = 20 * time.Second
	// DefaultUserAgent identifies the crawler to site owners.
	DefaultUserAgent = "CandidateWebsiteScraper/1.0"

	maxBodyBytes = 10 << 20
	maxRedirects = 15
)

// Crawler walks a single site breadth-first.
type Crawler struct {
	client        *http.Client
	userAgent     string
	maxPages      int
	respectRobots bool
	exclude       []*regexp.Regexp
	throttle      *Throttle
	readability   bool
	logger        *slog.Logger
}

// Option configures a Crawler.
type Option func(*Crawler) error

// WithHTTPClient sets the client used for every request.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Crawler) error {
		if client == nil {
			return fmt.Errorf("http client must not be nil")
		}
		c.client = client
		return nil
	}
}

// WithUserAgent sets the User-Agent header and the robots.txt group name.
func WithUserAgent(ua string) Option {
	return func(c *Crawler) error {
		if ua != "" {
			c.userAgent = ua
		}
		return nil
	}
}

// WithMaxPages caps the number of pages kept per site.
func WithMaxPages(n int) Option {
	return func(c *Crawler) error {
		if n < 1 {
			return fmt.Errorf("max pages must be at least 1, got %d", n)
		}
		c.maxPages = n
		return nil
	}
}

// WithRobots turns robots.txt checks on or off.
func WithRobots(respect bool) Option {
	return func(c *Crawler) error {
		c.respectRobots = respect
		return nil
	}
}

// WithExcludePatterns skips URLs matching any of patterns.
func WithExcludePatterns(patterns []*regexp.Regexp) Option {
	return func(c *Crawler) error {
		c.exclude = patterns
		return nil
	}
}

// WithThrottle shares a per-host throttle with other crawlers.
func WithThrottle(t *Throttle) Option {
	return func(c *Crawler) error {
		c.throttle = t
		return nil
	}
}

// WithReadability keeps only each page's main content when it can be found.
func WithReadability(enabled bool) Option {
	return func(c *Crawler) error {
		c.readability = enabled
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// NewCrawler returns a Crawler that honors robots.txt by default.
func NewCrawler(opts ...Option) (*Crawler, error) {
	c := &Crawler{
		client: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent:     DefaultUserAgent,
		maxPages:      DefaultMaxPages,
		respectRobots: true,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// CrawlSite fetches pages reachable from startURL on the same host until
// the queue drains or the page cap is reached. Unreachable pages, error
// statuses and non-HTML responses are skipped. Pages whose text matches an
// earlier page are not stored again.
func (c *Crawler) CrawlSite(ctx context.Context, startURL string) (*Site, error) {
	normalized, ok := NormalizeURL(startURL)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, startURL)
	}
	start, err := url.Parse(normalized)
	if err != nil || start.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, startURL)
	}

	var robots *robotstxt.Group
	if c.respectRobots {
		robots = c.robotsGroup(ctx, start)
	}

	site := newSite()
	seen := make(map[string]bool)
	hashes := make(map[core.ID]bool)
	queue := []string{normalized}

	for len(queue) > 0 && site.Len() < c.maxPages {
		if err := ctx.Err(); err != nil {
			return site, err
		}
		raw := queue[0]
		queue = queue[1:]

		pageURL, ok := NormalizeURL(raw)
		if !ok || seen[pageURL] {
			continue
		}
		seen[pageURL] = true

		u, err := url.Parse(pageURL)
		if err != nil || !c.allowed(start, u, pageURL, robots) {
			continue
		}

		if err := c.throttle.Wait(ctx, u.Host); err != nil {
			return site, err
		}

		body, ok := c.fetchPage(ctx, pageURL)
		if !ok {
			continue
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
		if err != nil {
			c.logger.Debug("failed to parse page", "url", pageURL, "err", err)
			continue
		}

		text := c.pageText(doc, body, u)
		if text != "" {
			h := core.IDFromContent(text)
			if !hashes[h] {
				hashes[h] = true
				site.Add(URLKey(pageURL), text)
			}
		}

		doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			ref, err := u.Parse(strings.TrimSpace(href))
			if err != nil {
				return
			}
			next, ok := NormalizeURL(ref.String())
			if !ok || seen[next] {
				return
			}
			if nu, err := url.Parse(next); err == nil && sameHost(start, nu) {
				queue = append(queue, next)
			}
		})
	}

	c.logger.Debug("site crawled", "start", normalized, "pages", site.Len(), "visited", len(seen))
	return site, nil
}

func (c *Crawler) allowed(start, u *url.URL, raw string, robots *robotstxt.Group) bool {
	if shouldSkip(u) || !sameHost(start, u) {
		return false
	}
	for _, re := range c.exclude {
		if re.MatchString(raw) {
			return false
		}
	}
	return robots == nil || robots.Test(u.RequestURI())
}

// robotsGroup fetches robots.txt for the start host. Any failure allows
// every path.
func (c *Crawler) robotsGroup(ctx context.Context, start *url.URL) *robotstxt.Group {
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", start.Scheme, start.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("failed to fetch robots.txt", "url", robotsURL, "err", err)
		return nil
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		c.logger.Debug("failed to parse robots.txt", "url", robotsURL, "err", err)
		return nil
	}
	return data.FindGroup(c.userAgent)
}

// fetchPage returns the UTF-8 body of an HTML page, or false when the page
// should be skipped.
func (c *Crawler) fetchPage(ctx context.Context, pageURL string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "url", pageURL, "err", err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Debug("skipping error status", "url", pageURL, "status", resp.StatusCode)
		return "", false
	}
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return "", false
	}

	r, err := charset.NewReader(resp.Body, contentType)
	if err != nil {
		r = resp.Body
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBodyBytes))
	if err != nil {
		c.logger.Debug("failed to read body", "url", pageURL, "err", err)
		return "", false
	}
	return string(data), true
}

func (c *Crawler) pageText(doc *goquery.Document, body string, u *url.URL) string {
	if c.readability {
		article, err := readability.FromReader(strings.NewReader(body), u)
		if err == nil && article.Content != "" {
			if content, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content)); err == nil {
				if text := VisibleText(content); text != "" {
					return text
				}
			}
		}
	}
	return VisibleText(doc)
}

// VisibleText joins the trimmed text nodes of doc with single spaces,
// leaving out scripts, styles and templates.
func VisibleText(doc *goquery.Document) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "template", "noscript":
				return
			}
		case html.CommentNode:
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}
