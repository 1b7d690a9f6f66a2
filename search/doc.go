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


// Package search runs multi-term substring searches over a loaded corpus.
//
// A Session owns the interactive state: the ordered term set and each term's
// color, the match mode, the party filter and the current match set. Run
// scans every cached section of every document:
//   - in MatchAll mode a section matches when it contains every term
//   - in MatchAny mode a section matches when it contains at least one
//
// Matching is case-insensitive exact substring containment. The party filter
// narrows the candidate groups shown to the user; the match set and the
// per-party matched counts always cover every matched document.
package search
