package live

import "errors"

// ErrAlreadyRunning is returned when Run is called on a hub that is
// already running.
var ErrAlreadyRunning = errors.New("hub already running")
