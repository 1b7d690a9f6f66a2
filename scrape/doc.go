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


// Package scrape builds corpus documents for candidates that do not have one.
//
// MissingCandidates compares the candidate roster against the document
// directories. A Crawler walks one candidate's site breadth-first, staying on
// the starting host, honoring robots.txt and a per-host request delay, and
// returns the visible text of each page keyed by its URL. A Runner crawls many
// candidates on a worker pool, writes one JSON document per candidate and
// records the outcome in the crawl-state store.
package scrape
