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

import (
	"fmt"
	"strings"
)

// ParseMatchMode parses "all" or "any" (case-insensitive).
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return MatchAll, nil
	case "any":
		return MatchAny, nil
	default:
		return MatchAll, fmt.Errorf("%w: %q", ErrInvalidMatchMode, s)
	}
}

// ValidateLocation checks that a corpus location is not blank. A location
// whose file name yields an empty person ID is still valid.
func ValidateLocation(location string) error {
	if strings.TrimSpace(location) == "" {
		return ErrEmptyLocation
	}
	return nil
}
