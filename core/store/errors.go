package store

import "errors"

var (
	// ErrNotFound is returned when no snapshot exists under the requested name.
	ErrNotFound = errors.New("snapshot not found")

	// ErrNilSource is returned when a nil observable is passed to Restore or Persist.
	ErrNilSource = errors.New("nil observable source")
)
