// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"context"

	"github.com/poiesic/hustings/core"
)

// CrawlRepository persists the outcome of crawling each candidate's site.
// Implementations must be thread-safe and support concurrent access.
type CrawlRepository interface {
	// PutCrawlRecords inserts or replaces records keyed by person ID.
	// Sets UpdatedAt if not already set.
	// Returns core.ErrEmptyPersonID if any record has no person ID.
	PutCrawlRecords(ctx context.Context, records ...*core.CrawlRecord) error

	// GetCrawlRecord retrieves the record for a person ID.
	// Person IDs are matched case-insensitively.
	// Returns ErrNotFound if the record doesn't exist.
	GetCrawlRecord(ctx context.Context, personID string) (*core.CrawlRecord, error)

	// GetCrawlRecords returns every record ordered by person ID.
	GetCrawlRecords(ctx context.Context) ([]*core.CrawlRecord, error)

	// GetRecentCrawlRecords returns up to limit records, most recently updated first.
	GetRecentCrawlRecords(ctx context.Context, limit int) ([]*core.CrawlRecord, error)

	// DeleteCrawlRecords removes records by person ID.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteCrawlRecords(ctx context.Context, personIDs ...string) error

	// Close releases resources held by the repository.
	Close() error
}
