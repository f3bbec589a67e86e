package binding

import "errors"

var (
	// ErrNotProvided is returned by Bind when no enclosing Provide call
	// exists for the provider in the given context.
	ErrNotProvided = errors.New("no value provided in context")

	// ErrNotObservable is returned by Bind when the nearest enclosing entry
	// is a fixed value. Fixed values never change, so subscribing to one is
	// a wiring mistake worth surfacing at the call site.
	ErrNotObservable = errors.New("provided value is not observable")
)
