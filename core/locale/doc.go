// Package locale broadcasts the active language through a subtree.
//
// It pairs a small Locale value type over golang.org/x/text language tags
// with a package-level provider, so request handlers, background workers and
// rendered components all read the same resolved language without parameter
// threading.
//
// A typical HTTP setup declares the supported set once and lets the
// middleware resolve each request:
//
//	locales := locale.MustLocales("en", "de", "fr")
//
//	mux := http.NewServeMux()
//	mux.Handle("/", pages)
//	handler := locale.Middleware(locales)(mux)
//
// Anything below the middleware reads the resolved locale from the request
// context:
//
//	func greet(w http.ResponseWriter, r *http.Request) {
//		loc := locale.MustFromContext(r.Context())
//		fmt.Fprintf(w, "lang=%s", loc)
//	}
//
// Matching uses the x/text matcher, so regional and script variants resolve
// to the closest supported entry ("en-GB" to "en", "zh-Hant" to a configured
// "zh" flavor) and the first configured code is the fallback.
//
// For live language switching, provide an observable source instead and bind
// consumers to locale.Current:
//
//	lang := observable.New(locale.Default)
//	ctx = locale.ProvideObservable(ctx, lang)
//
//	binding.Bind(ctx, scope, locale.Current, func(l locale.Locale) {
//		rerender(l)
//	})
package locale
