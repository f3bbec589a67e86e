package locale

import "net/http"

// Middleware resolves each request's Accept-Language header against the
// supported set and provides the result to the request subtree. Handlers and
// anything they render read it back with FromContext or MustFromContext.
func Middleware(locales *Locales) func(http.Handler) http.Handler {
	if locales == nil {
		panic("locale middleware: locales set is required")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			loc := locales.Match(r.Header.Get("Accept-Language"))
			next.ServeHTTP(w, r.WithContext(Provide(r.Context(), loc)))
		})
	}
}
