package redis

import "errors"

// Connection and probe errors, joined with the underlying cause so both
// sides survive errors.Is checks.
var (
	ErrEmptyConnectionURL           = errors.New("empty redis connection URL")
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")
)
