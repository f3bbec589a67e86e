package relay

import "errors"

var (
	// ErrNilClient is returned when a nil Redis client is passed to New.
	ErrNilClient = errors.New("nil redis client")

	// ErrNilSource is returned when a nil observable is passed to New.
	ErrNilSource = errors.New("nil observable source")

	// ErrAlreadyRunning is returned when Run is called on a relay that is
	// already running.
	ErrAlreadyRunning = errors.New("relay already running")

	// ErrSubscriptionClosed is returned when the Redis subscription closes
	// before the run context is canceled.
	ErrSubscriptionClosed = errors.New("relay subscription closed")
)
