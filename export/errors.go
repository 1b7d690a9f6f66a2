package export

import "errors"

// ErrNoResults is returned when there is nothing to export.
var ErrNoResults = errors.New("no results to export")
