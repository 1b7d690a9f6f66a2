package fetch

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpener_LocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":"b"}`), 0o644))

	o, err := NewOpener()
	require.NoError(t, err)

	data, err := o.ReadAll(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"b"}`, string(data))

	data, err = o.ReadAll(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"b"}`, string(data))
}

func TestOpener_MissingFileNotRetried(t *testing.T) {
	o, err := NewOpener(WithRetry(5, time.Second))
	require.NoError(t, err)

	start := time.Now()
	_, err = o.Open(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Less(t, time.Since(start), time.Second, "missing files should fail fast")
}

func TestOpener_HTTP(t *testing.T) {
	var agent atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent.Store(r.UserAgent())
		if r.URL.Path == "/missing.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, `{"x":"y"}`)
	}))
	defer srv.Close()

	o, err := NewOpener(WithHTTPClient(srv.Client()), WithUserAgent("test-agent"))
	require.NoError(t, err)

	t.Run("ok", func(t *testing.T) {
		data, err := o.ReadAll(context.Background(), srv.URL+"/a.json")
		require.NoError(t, err)
		assert.Equal(t, `{"x":"y"}`, string(data))
		assert.Equal(t, "test-agent", agent.Load())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := o.Fetch(context.Background(), srv.URL+"/missing.json")
		require.Error(t, err)
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusNotFound, se.StatusCode)
	})
}

func TestOpener_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, "ok")
	}))
	defer srv.Close()

	o, err := NewOpener(WithHTTPClient(srv.Client()), WithRetry(3, time.Millisecond))
	require.NoError(t, err)

	data, err := o.ReadAll(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
	assert.Equal(t, int32(3), calls.Load())
}

func TestOpener_Options(t *testing.T) {
	_, err := NewOpener(WithHTTPClient(nil))
	assert.ErrorIs(t, err, ErrClientRequired)

	_, err = NewOpener(WithRetry(0, time.Second))
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{"remote relative", "https://example.org/data/manifest.txt", "json/1_A.json", "https://example.org/data/json/1_A.json"},
		{"remote absolute ref", "https://example.org/m.txt", "https://cdn.example.org/1_A.json", "https://cdn.example.org/1_A.json"},
		{"local relative", filepath.Join("data", "manifest.txt"), "json/1_A.json", filepath.Join("data", "json", "1_A.json")},
		{"local absolute ref", "manifest.txt", "/srv/1_A.json", "/srv/1_A.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.base, tt.ref))
		})
	}
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://example.org"))
	assert.True(t, IsRemote("HTTP://example.org"))
	assert.False(t, IsRemote("/tmp/x.json"))
	assert.False(t, IsRemote("file:///tmp/x.json"))
}
