package party

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row is one CSV record addressed by header name.
type Row struct {
	header map[string]int
	record []string
}

// Get returns the trimmed value of a column, or "" when absent.
func (r Row) Get(column string) string {
	i, ok := r.header[column]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

// ForEachRow streams a header-led CSV from r, calling fn for every non-blank
// row. Columns are resolved by header name so their order does not matter.
// Rows with a different number of fields are accepted.
func ForEachRow(r io.Reader, fn func(Row) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return ErrEmptyFeed
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	header := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := header[h]; !dup {
			header[h] = i
		}
	}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		if blank(record) {
			continue
		}
		if err := fn(Row{header: header, record: record}); err != nil {
			return err
		}
	}
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
