// Package render bridges providers and templ components.
//
// Components read provider values from the rendering context, so the code
// that triggers a render decides what those values are. Provided attaches
// that decision to the component itself:
//
//	card := render.Provided(SettingsCard(),
//		func(ctx context.Context) context.Context {
//			return providers.Settings.Provide(ctx, current)
//		},
//		func(ctx context.Context) context.Context {
//			return locale.Provide(ctx, loc)
//		},
//	)
//
//	html, err := render.HTML(ctx, card)
//	if err != nil {
//		return err
//	}
//
// Inside a .templ file the component resolves values the usual way:
//
//	templ SettingsCard() {
//		<div class="card">
//			<h2>{ providers.Settings.MustValue(ctx).Title }</h2>
//		</div>
//	}
//
// HTTP handlers can skip Provided and put values on the request context via
// middleware instead; both roads lead to the same context lookup.
package render
