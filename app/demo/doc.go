// Package demo wires the full settings pipeline into a runnable
// application: a YAML file feeds an observable, Postgres persists
// snapshots, Redis relays changes between instances, and connected
// browsers receive every update over SSE or WebSocket.
//
// Run it from a main package:
//
//	func main() {
//		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//		defer stop()
//
//		app, err := demo.NewApp(
//			demo.WithLogger(logger.New(logger.WithDevelopment("demo"))),
//		)
//		if err != nil {
//			log.Fatal(err)
//		}
//		if err := app.Run(ctx); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// Configuration comes from the environment; PG_CONN_URL is required, the
// rest has defaults. Edit the settings file, PUT /settings, or publish
// from another instance, and watch /events/settings stream the change.
package demo
