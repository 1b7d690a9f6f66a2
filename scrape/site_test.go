package scrape

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSite_JSONKeepsCrawlOrder(t *testing.T) {
	s := newSite()
	s.Add("z_page", "last letter first")
	s.Add("a_page", "Fish & <chips>")
	s.Add("z_page", "replaced")

	data, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"z_page":"replaced","a_page":"Fish & <chips>"}`, string(data))

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, s.WriteFile(path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"z_page", "a_page"}, s.Keys())
	assert.Equal(t, "{\n  \"z_page\": \"replaced\",\n  \"a_page\": \"Fish & <chips>\"\n}\n", string(raw))
}
