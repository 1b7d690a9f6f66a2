package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/poiesic/hustings/core"
)

// DefaultFileName is the file written when no name is given.
const DefaultFileName = "search_results.csv"

// Header is the first row of every export.
var Header = []string{"Candidate", "ID", "Party", "URL", "Section", "Matched Text"}

// Write writes matches as CSV. Every value is double-quoted with embedded
// quotes doubled, and rows are separated by a single "\n" with no trailing
// newline. An empty match set returns ErrNoResults and writes nothing.
func Write(w io.Writer, matches []core.MatchRecord) error {
	if len(matches) == 0 {
		return ErrNoResults
	}
	bw := bufio.NewWriter(w)
	writeRow(bw, Header)
	for _, m := range matches {
		bw.WriteByte('\n')
		writeRow(bw, []string{m.Candidate, m.PersonID, m.Party, m.URL, m.Section, m.RawText})
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// WriteFile writes matches to path, creating or truncating it. Nothing is
// created when there are no matches.
func WriteFile(path string, matches []core.MatchRecord) error {
	if len(matches) == 0 {
		return ErrNoResults
	}
	if path == "" {
		path = DefaultFileName
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	if err := Write(f, matches); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeRow(w *bufio.Writer, values []string) {
	for i, v := range values {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(v, `"`, `""`))
		w.WriteByte('"')
	}
}
