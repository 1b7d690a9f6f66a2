package textcache

import "errors"

// ErrExtractorRequired is returned when a nil extractor is supplied.
var ErrExtractorRequired = errors.New("extractor required")
