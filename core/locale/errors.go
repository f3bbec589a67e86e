package locale

import "errors"

var (
	// ErrNoLocales is returned when a Locales set is built without any codes.
	ErrNoLocales = errors.New("no supported locales given")

	// ErrInvalidLocale is returned for codes that do not parse as BCP 47.
	ErrInvalidLocale = errors.New("invalid locale code")
)
