package locale_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/providerkit/core/locale"
	"github.com/dmitrymomot/providerkit/core/observable"
)

func TestLocale(t *testing.T) {
	t.Parallel()

	t.Run("parses bcp47 codes", func(t *testing.T) {
		t.Parallel()

		l, err := locale.New("de-AT")
		require.NoError(t, err)
		assert.Equal(t, "de-AT", l.String())
		assert.Equal(t, language.MustParse("de-AT"), l.Tag())
	})

	t.Run("rejects invalid codes", func(t *testing.T) {
		t.Parallel()

		_, err := locale.New("not a code")
		require.ErrorIs(t, err, locale.ErrInvalidLocale)

		assert.Panics(t, func() { locale.MustNew("not a code") })
	})

	t.Run("round trips through text marshalling", func(t *testing.T) {
		t.Parallel()

		type doc struct {
			Lang locale.Locale `json:"lang"`
		}

		raw, err := json.Marshal(doc{Lang: locale.MustNew("pt-BR")})
		require.NoError(t, err)
		assert.JSONEq(t, `{"lang":"pt-BR"}`, string(raw))

		var decoded doc
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Equal(t, "pt-BR", decoded.Lang.String())
	})

	t.Run("unmarshal rejects garbage", func(t *testing.T) {
		t.Parallel()

		var l locale.Locale
		assert.ErrorIs(t, l.UnmarshalText([]byte("!!")), locale.ErrInvalidLocale)
	})
}

func TestLocales(t *testing.T) {
	t.Parallel()

	t.Run("requires at least one code", func(t *testing.T) {
		t.Parallel()

		_, err := locale.NewLocales()
		assert.ErrorIs(t, err, locale.ErrNoLocales)
	})

	t.Run("rejects invalid codes", func(t *testing.T) {
		t.Parallel()

		_, err := locale.NewLocales("en", "??")
		require.ErrorIs(t, err, locale.ErrInvalidLocale)
		assert.ErrorContains(t, err, "??")
	})

	t.Run("first code is the default", func(t *testing.T) {
		t.Parallel()

		ls := locale.MustLocales("en", "de", "fr")
		assert.Equal(t, "en", ls.Default().String())

		supported := ls.Supported()
		require.Len(t, supported, 3)
		assert.Equal(t, "de", supported[1].String())
	})

	t.Run("matches exact and regional variants", func(t *testing.T) {
		t.Parallel()

		ls := locale.MustLocales("en", "de", "fr")

		assert.Equal(t, "de", ls.Match("de").String())
		assert.Equal(t, "de", ls.Match("de-AT").String())
		assert.Equal(t, "en", ls.Match("en-GB,en;q=0.9").String())
		assert.Equal(t, "fr", ls.Match("fr-CA,es;q=0.8").String())
	})

	t.Run("falls back to default", func(t *testing.T) {
		t.Parallel()

		ls := locale.MustLocales("en", "de")

		assert.Equal(t, "en", ls.Match("").String())
		assert.Equal(t, "en", ls.Match(";;;").String())
		assert.Equal(t, "en", ls.Match("ja").String())
	})

	t.Run("match result is always a supported entry", func(t *testing.T) {
		t.Parallel()

		ls := locale.MustLocales("en", "de")
		supported := map[string]bool{"en": true, "de": true}

		for _, header := range []string{"de-CH", "en-US,de;q=0.9", "it,de;q=0.5", "zh"} {
			got := ls.Match(header).String()
			assert.True(t, supported[got], "header %q resolved to %q", header, got)
		}
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	t.Run("provide and read back", func(t *testing.T) {
		t.Parallel()

		ctx := locale.Provide(context.Background(), locale.MustNew("de"))

		got, ok := locale.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, "de", got.String())
		assert.Equal(t, "de", locale.MustFromContext(ctx).String())
	})

	t.Run("absent locale", func(t *testing.T) {
		t.Parallel()

		_, ok := locale.FromContext(context.Background())
		assert.False(t, ok)
		assert.Equal(t, locale.Default, locale.FromContextOr(context.Background(), locale.Default))
		assert.Panics(t, func() { locale.MustFromContext(context.Background()) })
	})

	t.Run("observable locale follows the source", func(t *testing.T) {
		t.Parallel()

		lang := observable.New(locale.MustNew("en"))
		ctx := locale.ProvideObservable(context.Background(), lang)

		assert.Equal(t, "en", locale.MustFromContext(ctx).String())

		lang.Set(locale.MustNew("fr"))
		assert.Equal(t, "fr", locale.MustFromContext(ctx).String())

		src, ok := locale.Current.Observable(ctx)
		require.True(t, ok)
		assert.Same(t, lang, src)
	})
}
