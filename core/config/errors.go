package config

import "errors"

// ErrNilConfig is returned when Load receives a nil pointer.
var ErrNilConfig = errors.New("nil config pointer")
