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


package hustings

import (
	"log/slog"

	"github.com/poiesic/hustings/storage"
	"github.com/poiesic/hustings/storage/badger"
)

// CrawlState is the scraper's on-disk crawl log.
type CrawlState struct {
	backend *badger.Backend
	repo    *badger.CrawlRepository
	logger  *slog.Logger
}

// OpenCrawlState opens or creates the crawl log in dir.
func OpenCrawlState(dir string) (*CrawlState, error) {
	backend, err := badger.OpenBackend(dir, false)
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewCrawlRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &CrawlState{
		backend: backend,
		repo:    repo,
		logger:  slog.Default(),
	}, nil
}

// Repository returns the crawl record repository.
func (s *CrawlState) Repository() storage.CrawlRepository {
	return s.repo
}

// Close releases the repository and closes the database.
func (s *CrawlState) Close() error {
	if err := s.repo.Close(); err != nil {
		s.logger.Error("error closing crawl repository", "err", err)
		return err
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing crawl state storage", "err", err)
		return err
	}
	return nil
}
