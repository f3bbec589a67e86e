package async

import "errors"

var (
	// ErrTimeout is returned when AwaitWithTimeout exceeds its duration
	// before the asynchronous function completes.
	ErrTimeout = errors.New("async operation timed out")

	// ErrNoFutures is returned when WaitAny or ExecAny is called with an
	// empty futures list.
	ErrNoFutures = errors.New("no futures provided")
)
