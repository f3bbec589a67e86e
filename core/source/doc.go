// Package source feeds observable values from external inputs.
//
// The file source turns a configuration file into a live broadcast value:
// the file is decoded into T at startup and on every save, and each decode
// Sets the target observable, notifying whatever is bound to it. Combined
// with a provider this gives hot-reloaded configuration without a restart:
//
//	type Settings struct {
//		Theme    string `yaml:"theme"`
//		PageSize int    `yaml:"page_size"`
//	}
//
//	settings := observable.New(Settings{Theme: "light", PageSize: 20})
//	src, err := source.NewFile("config/settings.yaml", settings)
//	if err != nil {
//		return err
//	}
//
//	go func() {
//		if err := src.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
//			log.Error("settings watcher stopped", logger.Error(err))
//		}
//	}()
//
//	ctx = SettingsProvider.ProvideObservable(ctx, settings)
//
// Files are YAML by default; WithJSON switches to JSON and WithDecoder
// accepts anything with an Unmarshal-shaped signature.
//
// A malformed save never tears the value down: decode failures are logged
// and the observable keeps broadcasting the last good state. Strict startup
// validation is the caller's choice via an explicit Load before Run.
package source
