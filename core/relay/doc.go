// Package relay synchronizes observable values across process instances
// using Redis pub/sub.
//
// Each instance runs a relay on the same provider name. Setting the value on
// one instance publishes it; every other instance applies it to its local
// observable, which notifies local subscribers as usual. Messages carry the
// publishing instance's origin ID, so an instance never re-applies or
// re-publishes its own updates.
//
// # Usage
//
//	client, err := redis.Connect(ctx, redisCfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	settings := observable.New(DefaultSettings)
//	rly, err := relay.New(client, providers.Settings, settings,
//		relay.WithLogger(log),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	g.Go(func() error {
//		return rly.Run(ctx)
//	})
//
// Run blocks until the context is canceled, so it slots into an errgroup
// next to HTTP servers and file watchers.
//
// # Delivery Semantics
//
// Redis pub/sub is at-most-once: instances that are down or reconnecting
// miss updates, and no ordering is enforced between publishers. The relay
// suits values where the latest state wins and a missed intermediate state
// is harmless, such as feature flags and runtime settings. Combine it with
// the store package when state must survive restarts.
package relay
