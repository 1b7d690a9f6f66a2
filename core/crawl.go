package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// CrawlStatus is the outcome of crawling one candidate's site.
type CrawlStatus int64

const (
	// CrawlScraped means pages were fetched and a document was written.
	CrawlScraped CrawlStatus = iota + 1
	// CrawlEmpty means the crawl finished without any usable page.
	CrawlEmpty
	// CrawlFailed means the crawl or the write failed.
	CrawlFailed
	// CrawlSkipped means the candidate was not crawled.
	CrawlSkipped
)

// String returns the lowercase name of the status.
func (s CrawlStatus) String() string {
	switch s {
	case CrawlScraped:
		return "scraped"
	case CrawlEmpty:
		return "empty"
	case CrawlFailed:
		return "failed"
	case CrawlSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// ParseCrawlStatus parses a status name.
func ParseCrawlStatus(s string) (CrawlStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scraped":
		return CrawlScraped, nil
	case "empty":
		return CrawlEmpty, nil
	case "failed":
		return CrawlFailed, nil
	case "skipped":
		return CrawlSkipped, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCrawlStatus, s)
	}
}

// CrawlRecord remembers what happened the last time a candidate was crawled.
type CrawlRecord struct {
	PersonID  string
	Name      string
	Homepage  string
	Status    CrawlStatus
	Pages     int64
	Output    string
	Error     string
	UpdatedAt time.Time
}

// CrawlRecordMUS is the binary serializer for CrawlRecord.
var CrawlRecordMUS = crawlRecordMUS{}

type crawlRecordMUS struct{}

func (s crawlRecordMUS) Marshal(v CrawlRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.PersonID, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Homepage, bs[n:])
	n += varint.Int64.Marshal(int64(v.Status), bs[n:])
	n += varint.Int64.Marshal(v.Pages, bs[n:])
	n += ord.String.Marshal(v.Output, bs[n:])
	n += ord.String.Marshal(v.Error, bs[n:])
	return n + varint.Int64.Marshal(v.UpdatedAt.UnixMicro(), bs[n:])
}

func (s crawlRecordMUS) Unmarshal(bs []byte) (v CrawlRecord, n int, err error) {
	var n1 int
	v.PersonID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Homepage, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var status int64
	status, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Status = CrawlStatus(status)
	v.Pages, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Output, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Error, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt = time.UnixMicro(micros).UTC()
	return
}

func (s crawlRecordMUS) Size(v CrawlRecord) (size int) {
	size = ord.String.Size(v.PersonID)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Homepage)
	size += varint.Int64.Size(int64(v.Status))
	size += varint.Int64.Size(v.Pages)
	size += ord.String.Size(v.Output)
	size += ord.String.Size(v.Error)
	return size + varint.Int64.Size(v.UpdatedAt.UnixMicro())
}

func (s crawlRecordMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i, skip := range []func([]byte) (int, error){
		ord.String.Skip, ord.String.Skip, ord.String.Skip,
		varint.Int64.Skip, varint.Int64.Skip,
		ord.String.Skip, ord.String.Skip,
		varint.Int64.Skip,
	} {
		n1, err = skip(bs[n:])
		n += n1
		if err != nil {
			return n, fmt.Errorf("field %d: %w", i, err)
		}
	}
	return
}
