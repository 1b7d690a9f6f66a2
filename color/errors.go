package color

import "errors"

// ErrInvalidHex is returned for strings that are not #rgb or #rrggbb.
var ErrInvalidHex = errors.New("invalid hex color")
