package badger

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/hustings/core"
	"github.com/poiesic/hustings/storage"
)

// CrawlRepository implements storage.CrawlRepository for BadgerDB.
type CrawlRepository struct {
	backend *Backend
}

var _ storage.CrawlRepository = (*CrawlRepository)(nil)

// NewCrawlRepository creates a new CrawlRepository.
func NewCrawlRepository(backend *Backend) (*CrawlRepository, error) {
	if backend == nil {
		return nil, storage.ErrStorageClosed
	}
	return &CrawlRepository{backend: backend}, nil
}

// Close is a no-op; the backend is owned by the caller.
func (r *CrawlRepository) Close() error {
	return nil
}

// PutCrawlRecords inserts or replaces crawl records.
func (r *CrawlRepository) PutCrawlRecords(ctx context.Context, records ...*core.CrawlRecord) error {
	for _, record := range records {
		if normalizePersonID(record.PersonID) == "" {
			return core.ErrEmptyPersonID
		}
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if record.UpdatedAt.IsZero() {
				record.UpdatedAt = time.Now()
			}
			// Stored with microsecond precision
			record.UpdatedAt = record.UpdatedAt.UTC().Truncate(time.Microsecond)
			key := makeCrawlRecordKey(record.PersonID)

			// Drop the stale index entry when replacing
			old, err := r.readCrawlRecord(tx, key)
			if err != nil {
				return err
			}
			if old != nil {
				if err := tx.Delete(makeCrawlDateKey(old.UpdatedAt, old.PersonID)); err != nil {
					return err
				}
			}

			if err := tx.Set(key, storage.MarshalCrawlRecord(record)); err != nil {
				return err
			}
			dateKey := makeCrawlDateKey(record.UpdatedAt, record.PersonID)
			if err := tx.Set(dateKey, []byte(normalizePersonID(record.PersonID))); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetCrawlRecord retrieves a single crawl record by person ID.
func (r *CrawlRepository) GetCrawlRecord(ctx context.Context, personID string) (*core.CrawlRecord, error) {
	var result *core.CrawlRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readCrawlRecord(tx, makeCrawlRecordKey(personID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetCrawlRecords returns every crawl record ordered by person ID.
func (r *CrawlRepository) GetCrawlRecords(ctx context.Context) ([]*core.CrawlRecord, error) {
	var results []*core.CrawlRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(crawlRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var record *core.CrawlRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalCrawlRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, record)
		}
		return nil
	}, false)
	return results, err
}

// GetRecentCrawlRecords returns up to limit records, most recently updated first.
func (r *CrawlRepository) GetRecentCrawlRecords(ctx context.Context, limit int) ([]*core.CrawlRecord, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.CrawlRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(crawlRecordDatePrefix + ":")
		for iter.Seek(makeCrawlDateSeekKey()); iter.Valid() && len(results) < limit; iter.Next() {
			if !bytes.HasPrefix(iter.Item().Key(), prefix) {
				break
			}

			personID, err := iter.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			record, err := r.readCrawlRecord(tx, makeCrawlRecordKey(string(personID)))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	return results, err
}

// DeleteCrawlRecords removes crawl records and their index entries.
func (r *CrawlRepository) DeleteCrawlRecords(ctx context.Context, personIDs ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, personID := range personIDs {
			key := makeCrawlRecordKey(personID)
			record, err := r.readCrawlRecord(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return storage.ErrNotFound
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
			if err := tx.Delete(makeCrawlDateKey(record.UpdatedAt, record.PersonID)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// readCrawlRecord reads a crawl record from the transaction.
func (r *CrawlRepository) readCrawlRecord(tx *badger.Txn, key []byte) (*core.CrawlRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var record *core.CrawlRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalCrawlRecord(val)
		return unmarshalErr
	})
	return record, err
}
