package scrape

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const homePage = `<html><head><title>Jane</title><style>p { color: red }</style></head>
<body>
<h1>Jane Doe</h1>
<script>var tracking = 1;</script>
<p>Vote for <b>Jane</b></p>
<a href="/about">About</a>
<a href="/private/notes">Notes</a>
<a href="/leaflet.pdf">Leaflet</a>
<a href="https://elsewhere.example/">Elsewhere</a>
<a href="/copy">Copy</a>
<a href="/missing">Missing</a>
<a href="/data">Data</a>
<a href="/about#team">Team</a>
<a href="/events/1">Event</a>
</body></html>`

const aboutPage = `<html><body><p>About Jane</p></body></html>`

type siteServer struct {
	*httptest.Server
	mu   sync.Mutex
	hits map[string]int
}

func newSiteServer(t *testing.T) *siteServer {
	t.Helper()
	s := &siteServer{hits: make(map[string]int)}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		s.mu.Unlock()

		switch r.URL.Path {
		case "/robots.txt":
			_, _ = io.WriteString(w, "User-agent: *\nDisallow: /private\n")
		case "/":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = io.WriteString(w, homePage)
		case "/about", "/copy", "/private/notes", "/events/1":
			w.Header().Set("Content-Type", "text/html")
			_, _ = io.WriteString(w, aboutPage)
		case "/data":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"a":1}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *siteServer) hitCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func TestCrawlSite(t *testing.T) {
	srv := newSiteServer(t)
	c, err := NewCrawler(WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	site, err := c.CrawlSite(context.Background(), srv.URL+"/")
	require.NoError(t, err)

	homeKey := URLKey(srv.URL + "/")
	aboutKey := URLKey(srv.URL + "/about")
	assert.Equal(t, []string{homeKey, aboutKey}, site.Keys(), "duplicate page text is stored once")

	home, ok := site.Page(homeKey)
	require.True(t, ok)
	assert.Contains(t, home, "Jane Doe")
	assert.Contains(t, home, "Vote for Jane")
	assert.NotContains(t, home, "tracking")
	assert.NotContains(t, home, "color: red")

	about, _ := site.Page(aboutKey)
	assert.Equal(t, "About Jane", about)

	assert.Equal(t, 0, srv.hitCount("/private/notes"), "robots.txt disallows /private")
	assert.Equal(t, 0, srv.hitCount("/leaflet.pdf"))
	assert.Equal(t, 1, srv.hitCount("/about"), "fragment variants are the same page")
	assert.Equal(t, 1, srv.hitCount("/copy"))
	assert.Equal(t, 1, srv.hitCount("/data"))
}

func TestCrawlSite_IgnoreRobotsAndExclude(t *testing.T) {
	srv := newSiteServer(t)
	c, err := NewCrawler(
		WithHTTPClient(srv.Client()),
		WithRobots(false),
		WithExcludePatterns([]*regexp.Regexp{regexp.MustCompile(`/events/`)}),
	)
	require.NoError(t, err)

	_, err = c.CrawlSite(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 1, srv.hitCount("/private/notes"))
	assert.Equal(t, 0, srv.hitCount("/events/1"))
	assert.Equal(t, 0, srv.hitCount("/robots.txt"))
}

func TestCrawlSite_MaxPages(t *testing.T) {
	srv := newSiteServer(t)
	c, err := NewCrawler(WithHTTPClient(srv.Client()), WithMaxPages(1))
	require.NoError(t, err)

	site, err := c.CrawlSite(context.Background(), srv.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, 1, site.Len())
	assert.Equal(t, 0, srv.hitCount("/about"))
}

func TestCrawlSite_InvalidStart(t *testing.T) {
	c, err := NewCrawler()
	require.NoError(t, err)

	_, err = c.CrawlSite(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestCrawlSite_Canceled(t *testing.T) {
	srv := newSiteServer(t)
	c, err := NewCrawler(WithHTTPClient(srv.Client()), WithRobots(false))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.CrawlSite(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewCrawler_Options(t *testing.T) {
	_, err := NewCrawler(WithMaxPages(0))
	assert.Error(t, err)

	_, err = NewCrawler(WithHTTPClient(nil))
	assert.Error(t, err)
}

func TestVisibleText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<body><p> Hello </p><noscript>enable js</noscript><!-- hidden --><template><p>tpl</p></template><div>world</div></body>`))
	require.NoError(t, err)
	assert.Equal(t, "Hello world", VisibleText(doc))
}
