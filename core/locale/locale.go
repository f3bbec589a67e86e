package locale

import (
	"fmt"

	"golang.org/x/text/language"
)

// Locale is one resolved language. The zero value is the undetermined
// language "und"; use Default or a Locales set to avoid it in practice.
type Locale struct {
	tag language.Tag
}

// Default is the locale used when nothing better is known.
var Default = FromTag(language.English)

// New parses a BCP 47 code ("en", "de-AT", "pt-BR") into a Locale.
func New(code string) (Locale, error) {
	tag, err := language.Parse(code)
	if err != nil {
		return Locale{}, fmt.Errorf("%w: %q", ErrInvalidLocale, code)
	}
	return Locale{tag: tag}, nil
}

// MustNew is New that panics on invalid codes, for package-level defaults.
func MustNew(code string) Locale {
	l, err := New(code)
	if err != nil {
		panic(err)
	}
	return l
}

// FromTag wraps an already-parsed tag.
func FromTag(tag language.Tag) Locale {
	return Locale{tag: tag}
}

// Tag returns the underlying language tag.
func (l Locale) Tag() language.Tag {
	return l.tag
}

// String returns the canonical BCP 47 code.
func (l Locale) String() string {
	return l.tag.String()
}

// MarshalText implements encoding.TextMarshaler, so a Locale serializes as
// its BCP 47 code in JSON and YAML documents.
func (l Locale) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Locale) UnmarshalText(text []byte) error {
	parsed, err := New(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Locales is an ordered set of supported locales with an Accept-Language
// matcher. The first entry doubles as the default. Immutable after creation
// and safe for concurrent use.
type Locales struct {
	tags    []language.Tag
	matcher language.Matcher
}

// NewLocales builds a supported set from BCP 47 codes, first code first
// priority. At least one code is required.
func NewLocales(codes ...string) (*Locales, error) {
	if len(codes) == 0 {
		return nil, ErrNoLocales
	}

	tags := make([]language.Tag, 0, len(codes))
	for _, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLocale, code)
		}
		tags = append(tags, tag)
	}

	return &Locales{
		tags:    tags,
		matcher: language.NewMatcher(tags),
	}, nil
}

// MustLocales is NewLocales that panics on invalid codes.
func MustLocales(codes ...string) *Locales {
	ls, err := NewLocales(codes...)
	if err != nil {
		panic(err)
	}
	return ls
}

// Default returns the first supported locale.
func (ls *Locales) Default() Locale {
	return Locale{tag: ls.tags[0]}
}

// Supported returns the set in priority order.
func (ls *Locales) Supported() []Locale {
	out := make([]Locale, len(ls.tags))
	for i, tag := range ls.tags {
		out[i] = Locale{tag: tag}
	}
	return out
}

// Match resolves an Accept-Language header value against the supported set
// and returns the best supported locale. Empty or malformed headers resolve
// to the default.
//
// The matcher's index selects from the original tags: the tag the matcher
// itself returns may carry synthesized extensions that are not one of the
// supported entries.
func (ls *Locales) Match(acceptLanguage string) Locale {
	if acceptLanguage == "" {
		return ls.Default()
	}

	wanted, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(wanted) == 0 {
		return ls.Default()
	}

	_, index, _ := ls.matcher.Match(wanted...)
	return Locale{tag: ls.tags[index]}
}
