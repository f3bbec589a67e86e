// Package live pushes observable values to browsers over Server-Sent
// Events and WebSockets.
//
// Both transports follow the same model: a client receives the current
// value when it connects and a fresh render after every change. Renders
// re-read the source, so bursts of updates collapse into the newest state
// instead of replaying history.
//
// # Server-Sent Events
//
// SSEHandler is a plain http.Handler, one goroutine per connected client:
//
//	settings := observable.New(DefaultSettings)
//	mux.Handle("GET /events/settings", live.NewSSE(providers.Settings, settings,
//		live.WithLogger(log),
//	))
//
// Events are named after the provider and carry JSON payloads:
//
//	const es = new EventSource("/events/settings");
//	es.addEventListener("settings", (e) => render(JSON.parse(e.data)));
//
// For hypermedia frontends, WithFragment swaps JSON for server-rendered
// HTML:
//
//	live.NewSSE(providers.Settings, settings,
//		live.WithFragment(ui.SettingsCard),
//	)
//
// # WebSockets
//
// Hub fans updates out to WebSocket clients through a central event loop.
// Run it next to the HTTP server and mount its handler:
//
//	hub := live.NewHub(providers.Settings, settings,
//		live.WithWSLogger(log),
//	)
//	g.Go(func() error { return hub.Run(ctx) })
//	mux.Handle("GET /ws/settings", hub.Handler())
//
// The hub pings idle connections and evicts clients that stop reading, so
// a stalled consumer cannot hold up broadcasts to everyone else.
//
// Choose SSE when clients only consume updates; it survives proxies better
// and reconnects for free. The hub suits setups that already speak
// WebSocket or need one connection for several values.
package live
