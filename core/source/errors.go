package source

import "errors"

var (
	// ErrEmptyPath is returned when a source is created without a file path.
	ErrEmptyPath = errors.New("empty file path")

	// ErrNilTarget is returned when a source is created without an
	// observable to feed.
	ErrNilTarget = errors.New("nil observable target")
)
