package party

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/poiesic/hustings/core"
)

const (
	// ColumnPersonID is the feed column holding the person ID.
	ColumnPersonID = "person_id"
	// ColumnPartyName is the feed column holding the party name.
	ColumnPartyName = "party_name"
)

// Opener opens the party feed.
type Opener interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// Directory maps lowercased person IDs to party names. Entries are only ever
// added. A Directory is safe for concurrent use.
type Directory struct {
	mu      sync.RWMutex
	parties map[string]string
	order   []string
	ready   chan struct{}
	once    sync.Once
	err     error
	logger  *slog.Logger
}

// Option configures a Directory.
type Option func(*Directory) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Directory) error {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
		return nil
	}
}

// NewDirectory creates an empty Directory.
func NewDirectory(opts ...Option) (*Directory, error) {
	d := &Directory{
		parties: make(map[string]string),
		ready:   make(chan struct{}),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Populate reads a party feed and adds its entries as rows arrive. Rows
// missing a person ID or party name are skipped. It returns the number of
// rows added.
func (d *Directory) Populate(r io.Reader) (int, error) {
	added := 0
	err := ForEachRow(r, func(row Row) error {
		id := row.Get(ColumnPersonID)
		name := row.Get(ColumnPartyName)
		if id == "" || name == "" {
			return nil
		}
		d.Set(id, name)
		added++
		return nil
	})
	return added, err
}

// Set records the party for a person ID.
func (d *Directory) Set(personID, party string) {
	key := strings.ToLower(strings.TrimSpace(personID))
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.parties[key]; !ok {
		d.order = append(d.order, key)
	}
	d.parties[key] = party
}

// LoadAsync populates the directory from location in the background and
// marks it ready when done. Only the first call has any effect. Failures are
// logged; lookups then resolve to core.UnknownParty.
func (d *Directory) LoadAsync(ctx context.Context, opener Opener, location string) {
	d.once.Do(func() {
		go func() {
			defer close(d.ready)
			n, err := d.load(ctx, opener, location)
			if err != nil {
				d.mu.Lock()
				d.err = err
				d.mu.Unlock()
				d.logger.Error("failed to load party feed", "location", location, "err", err)
				return
			}
			d.logger.Info("party feed loaded", "location", location, "entries", n)
		}()
	})
}

// MarkReady marks the directory complete without loading a feed.
func (d *Directory) MarkReady() {
	d.once.Do(func() { close(d.ready) })
}

func (d *Directory) load(ctx context.Context, opener Opener, location string) (int, error) {
	if opener == nil {
		return 0, ErrOpenerRequired
	}
	rc, err := opener.Open(ctx, location)
	if err != nil {
		return 0, err
	}
	defer rc.Close()
	n, err := d.Populate(rc)
	if err != nil {
		return n, fmt.Errorf("parse %s: %w", location, err)
	}
	return n, nil
}

// Lookup returns the party for a person ID, or core.UnknownParty.
func (d *Directory) Lookup(personID string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if p, ok := d.parties[strings.ToLower(personID)]; ok {
		return p
	}
	return core.UnknownParty
}

// Len returns the number of entries.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.parties)
}

// Parties returns the distinct party names in first-seen order.
func (d *Directory) Parties() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, id := range d.order {
		p := d.parties[id]
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// Ready reports whether population has finished, successfully or not.
func (d *Directory) Ready() bool {
	select {
	case <-d.ready:
		return true
	default:
		return false
	}
}

// Wait blocks until population finishes or ctx ends. It returns the feed
// error, if any.
func (d *Directory) Wait(ctx context.Context) error {
	select {
	case <-d.ready:
		d.mu.RLock()
		defer d.mu.RUnlock()
		return d.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
