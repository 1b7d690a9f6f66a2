package party

import "errors"

var (
	// ErrEmptyFeed is returned when a feed has no header row.
	ErrEmptyFeed = errors.New("feed is empty")

	// ErrOpenerRequired is returned when LoadAsync is given no opener.
	ErrOpenerRequired = errors.New("opener required")
)
