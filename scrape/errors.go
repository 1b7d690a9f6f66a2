package scrape

import "errors"

var (
	// ErrInvalidURL is returned when a start URL cannot be normalized.
	ErrInvalidURL = errors.New("invalid url")

	// ErrCrawlerRequired is returned when a Runner is built without a Crawler.
	ErrCrawlerRequired = errors.New("crawler required")

	// ErrOutputDirRequired is returned when a Runner has nowhere to write.
	ErrOutputDirRequired = errors.New("output directory required")
)
