package badger

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

// Key prefixes for different data types
const (
	crawlRecordPrefix     = "crawlrec"
	crawlRecordDatePrefix = "crawlrecd"
)

// normalizePersonID folds person IDs so lookups are case-insensitive.
func normalizePersonID(personID string) string {
	return strings.ToLower(strings.TrimSpace(personID))
}

// makeCrawlRecordKey generates a key for a crawl record by person ID.
func makeCrawlRecordKey(personID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", crawlRecordPrefix, normalizePersonID(personID)))
}

// makeCrawlDateKey generates a composite key for the update-time index.
// Format: prefix:timestamp:personID
func makeCrawlDateKey(timestamp time.Time, personID string) []byte {
	prefixBytes := []byte(crawlRecordDatePrefix + ":")
	id := normalizePersonID(personID)
	buf := make([]byte, len(prefixBytes)+8+len(id))
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	copy(buf[offset:], id)
	return buf
}

// makeCrawlDateSeekKey generates the key a reverse iterator seeks to so the
// newest index entry comes first.
func makeCrawlDateSeekKey() []byte {
	prefixBytes := []byte(crawlRecordDatePrefix + ":")
	buf := make([]byte, len(prefixBytes)+9)
	offset := copy(buf, prefixBytes)
	for i := offset; i < len(buf); i++ {
		buf[i] = 0xff
	}
	return buf
}
