package corpus

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/hustings/core"
	"github.com/poiesic/hustings/textcache"
)

type staticSource struct {
	locations []string
	failures  atomic.Int32
	calls     atomic.Int32
	gate      chan struct{}
}

func (s *staticSource) Locations(ctx context.Context) ([]string, error) {
	s.calls.Add(1)
	if s.gate != nil {
		<-s.gate
	}
	if s.failures.Load() > 0 {
		s.failures.Add(-1)
		return nil, errors.New("manifest unavailable")
	}
	return s.locations, nil
}

type mapParties map[string]string

func (m mapParties) Lookup(id string) string {
	if p, ok := m[id]; ok {
		return p
	}
	return core.UnknownParty
}

func newTestStore(t *testing.T, src LocationSource, opts ...StoreOption) (*Store, *mapFetcher) {
	t.Helper()
	fetcher := newMapFetcher(map[string]string{
		"c123_Jane Doe.json": `{"home":"<p>Art and culture</p>"}`,
		"c456_John Roe.json": `{"home":"<p>Roads</p>"}`,
		"c789_Ann Lee.json":  `{"home":"<p>Schools</p>"}`,
	})
	loader, err := NewLoader(fetcher, WithConcurrency(2))
	require.NoError(t, err)
	store, err := NewStore(src, loader, opts...)
	require.NoError(t, err)
	return store, fetcher
}

func TestNewStore_Validation(t *testing.T) {
	loader, err := NewLoader(newMapFetcher(nil))
	require.NoError(t, err)

	_, err = NewStore(nil, loader)
	assert.ErrorIs(t, err, ErrSourceRequired)
	_, err = NewStore(&staticSource{}, nil)
	assert.ErrorIs(t, err, ErrLoaderRequired)
}

func TestStore_LoadOnce(t *testing.T) {
	src := &staticSource{locations: []string{"c123_Jane Doe.json", "c456_John Roe.json", "c789_Ann Lee.json"}}

	var extractions atomic.Int32
	store, fetcher := newTestStore(t, src,
		WithParties(mapParties{"c123": "Green Party", "c456": "Green Party"}),
		WithCacheOptions(textcache.WithExtractor(func(s string) string {
			extractions.Add(1)
			return textcache.Extract(s)
		})),
	)

	var wg sync.WaitGroup
	results := make([]*Corpus, 10)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := store.Load(context.Background())
			assert.NoError(t, err)
			results[i] = c
		}()
	}
	wg.Wait()

	for _, c := range results {
		assert.Same(t, results[0], c)
	}
	assert.True(t, store.Loaded())
	assert.Equal(t, int32(1), src.calls.Load())
	assert.Equal(t, 1, fetcher.count("c123_Jane Doe.json"))
	assert.Equal(t, int32(3), extractions.Load())

	c := results[0]
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 2, c.Total("Green Party"))
	assert.Equal(t, 1, c.Total(core.UnknownParty))
	assert.Equal(t, map[string]int{"Green Party": 2, core.UnknownParty: 1}, c.Totals())

	sections := c.Sections(c.Documents()[0])
	require.Len(t, sections, 1)
	assert.Equal(t, "Art and culture", sections[0].Text)
}

func TestStore_FailureResets(t *testing.T) {
	src := &staticSource{locations: []string{"c123_Jane Doe.json"}}
	src.failures.Store(1)
	store, _ := newTestStore(t, src)

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.False(t, store.Loaded())

	c, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestStore_CallerCancelDoesNotAbortLoad(t *testing.T) {
	src := &staticSource{
		locations: []string{"c123_Jane Doe.json"},
		gate:      make(chan struct{}),
	}
	store, _ := newTestStore(t, src)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := store.Load(ctx)
		errCh <- err
	}()

	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	close(src.gate)
	c, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, int32(1), src.calls.Load(), "the detached load is shared")
}

type slowParties struct {
	mapParties
	ready chan struct{}
}

func (p slowParties) Wait(ctx context.Context) error {
	select {
	case <-p.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestStore_PartyWaitTimesOut(t *testing.T) {
	src := &staticSource{locations: []string{"c123_Jane Doe.json"}}
	parties := slowParties{mapParties: mapParties{"c123": "Green Party"}, ready: make(chan struct{})}
	store, _ := newTestStore(t, src, WithParties(parties), WithPartyWait(10*time.Millisecond))

	c, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, c.Total("Green Party"))
}
