package server

import "errors"

var (
	// ErrAlreadyRunning is returned by Start when the server is running.
	ErrAlreadyRunning = errors.New("server already running")

	// ErrMissingAddress is returned by NewFromConfig when no listen
	// address is configured.
	ErrMissingAddress = errors.New("server address is required")
)
