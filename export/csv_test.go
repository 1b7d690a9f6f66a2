package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/hustings/core"
)

var matches = []core.MatchRecord{
	{
		Candidate: "Jane Doe",
		PersonID:  "C123",
		Party:     "Green Party",
		URL:       "https://candidates.democracyclub.org.uk/person/C123",
		Section:   "home",
		RawText:   `<p class="x">Art, "culture"</p>` + "\n<p>more</p>",
	},
	{Candidate: "", PersonID: "7", Party: "Unknown", URL: "u", Section: "s", RawText: ""},
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, matches))

	out := buf.String()
	lines := strings.SplitN(out, "\n", 2)
	assert.Equal(t, `"Candidate","ID","Party","URL","Section","Matched Text"`, lines[0])
	assert.Contains(t, out, `"<p class=""x"">Art, ""culture""</p>`)
	assert.True(t, strings.HasSuffix(out, `"","7","Unknown","u","s",""`), "no trailing newline")

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, Header, records[0])
	assert.Equal(t, matches[0].RawText, records[1][5])
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Write(&buf, nil), ErrNoResults)
	assert.Zero(t, buf.Len())
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, WriteFile(path, matches[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `"Candidate"`))

	empty := filepath.Join(dir, "empty.csv")
	assert.ErrorIs(t, WriteFile(empty, nil), ErrNoResults)
	_, err = os.Stat(empty)
	assert.True(t, os.IsNotExist(err))
}
