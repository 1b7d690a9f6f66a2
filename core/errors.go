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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidMatchMode indicates a match mode name is not "all" or "any".
	ErrInvalidMatchMode = errors.New("invalid match mode")

	// ErrEmptyLocation indicates a document location is empty.
	ErrEmptyLocation = errors.New("location cannot be empty")

	// ErrEmptyPersonID indicates a crawl record has no person ID.
	ErrEmptyPersonID = errors.New("person ID cannot be empty")
)

// ErrInvalidCrawlStatus indicates a crawl status name is not recognized.
var ErrInvalidCrawlStatus = errors.New("invalid crawl status")
