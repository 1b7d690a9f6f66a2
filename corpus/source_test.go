package corpus

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/hustings/fetch"
)

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"json array", `["a.json", " b.json ", ""]`, []string{"a.json", "b.json"}, false},
		{"lines", "# corpus\na.json\n\n  b.json  \n#c.json\n", []string{"a.json", "b.json"}, false},
		{"empty", "", nil, false},
		{"bad json", `["a.json", 3]`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseManifest([]byte(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidManifest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadManifest_RemoteResolvesRelative(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "json/1_A.json\nhttps://cdn.example.org/2_B.json\n")
	}))
	defer srv.Close()

	opener, err := fetch.NewOpener(fetch.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	got, err := ReadManifest(context.Background(), opener, srv.URL+"/data/manifest.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/data/json/1_A.json", "https://cdn.example.org/2_B.json"}, got)
}

func TestSource_Locations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2_B.json", "1_A.json", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(`{}`), 0o644))
	}
	manifest := filepath.Join(dir, "manifest.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("1_A.json\n3_C.json\n"), 0o644))

	opener, err := fetch.NewOpener()
	require.NoError(t, err)

	src := &Source{
		List:     []string{"0_Z.json"},
		Manifest: manifest,
		Dir:      dir,
		Opener:   opener,
	}
	got, err := src.Locations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"0_Z.json",
		filepath.Join(dir, "1_A.json"),
		filepath.Join(dir, "3_C.json"),
		filepath.Join(dir, "2_B.json"),
	}, got)
}

func TestSource_Errors(t *testing.T) {
	_, err := (&Source{}).Locations(context.Background())
	assert.ErrorIs(t, err, ErrNoLocations)

	opener, err := fetch.NewOpener()
	require.NoError(t, err)
	_, err = (&Source{Manifest: filepath.Join(t.TempDir(), "none.txt"), Opener: opener}).Locations(context.Background())
	assert.Error(t, err)
}
