package storage

import (
	"testing"
	"time"

	"github.com/poiesic/hustings/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalCrawlRecord(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name   string
		record *core.CrawlRecord
	}{
		{
			name: "scraped",
			record: &core.CrawlRecord{
				PersonID:  "C123",
				Name:      "Jane Doe",
				Homepage:  "https://jane.example.org",
				Status:    core.CrawlScraped,
				Pages:     7,
				Output:    "assets/json/C123_Jane_Doe.json",
				UpdatedAt: now,
			},
		},
		{
			name: "failed with error text",
			record: &core.CrawlRecord{
				PersonID:  "C9",
				Homepage:  "jane.example.org",
				Status:    core.CrawlFailed,
				Error:     "get https://jane.example.org: HTTP 503",
				UpdatedAt: now,
			},
		},
		{
			name: "unicode name",
			record: &core.CrawlRecord{
				PersonID:  "C10",
				Name:      "Siân Ní Bhriain",
				Status:    core.CrawlSkipped,
				UpdatedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalCrawlRecord(tt.record)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalCrawlRecord(data)
			require.NoError(t, err)
			assert.Equal(t, tt.record, decoded)
		})
	}
}

func TestUnmarshalCrawlRecord_Invalid(t *testing.T) {
	_, err := UnmarshalCrawlRecord([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
