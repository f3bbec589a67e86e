package mongo

import "errors"

// Connection and probe errors, joined with the underlying cause so both
// sides survive errors.Is checks.
var (
	ErrEmptyConnectionURL     = errors.New("empty mongodb connection URL")
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongodb")
	ErrHealthcheckFailed      = errors.New("mongodb healthcheck failed")
)
