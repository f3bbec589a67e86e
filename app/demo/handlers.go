package demo

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/providerkit/core/live"
	"github.com/dmitrymomot/providerkit/core/locale"
	"github.com/dmitrymomot/providerkit/core/logger"
)

// Handler returns the demo's HTTP surface. Every request carries the
// settings observable and the negotiated locale in its context.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", a.handleLiveness)
	mux.HandleFunc("GET /readyz", a.handleReadiness)
	mux.HandleFunc("GET /settings", a.handleGetSettings)
	mux.HandleFunc("PUT /settings", a.handlePutSettings)
	mux.HandleFunc("GET /locale", a.handleLocale)
	mux.Handle("GET /events/settings", live.NewSSE(SettingsProvider, a.settings,
		live.WithLogger(a.logger),
	))
	mux.Handle("GET /ws/settings", a.hub.Handler())

	var h http.Handler = mux
	h = a.provideSettings(h)
	h = locale.Middleware(a.locales)(h)
	return h
}

// provideSettings exposes the settings observable to request handlers, so
// they resolve values through the provider instead of reaching for app
// internals.
func (a *App) provideSettings(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := SettingsProvider.ProvideObservable(r.Context(), a.settings)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *App) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ALIVE"))
}

func (a *App) handleReadiness(w http.ResponseWriter, r *http.Request) {
	for _, check := range a.checks {
		if err := check(r.Context()); err != nil {
			a.logger.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	_, _ = w.Write([]byte("READY"))
}

func (a *App) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, SettingsProvider.MustValue(r.Context()))
}

func (a *App) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var next Settings
	if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
		http.Error(w, "invalid settings payload", http.StatusBadRequest)
		return
	}

	// One Set fans out everywhere: SSE streams, WebSocket clients, the
	// snapshot store, and other instances via the relay.
	a.settings.Set(next)
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleLocale(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"locale": locale.MustFromContext(r.Context()).String()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
