package render

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Setup injects values into a rendering context, typically by calling
// Provide on one or more providers.
type Setup func(context.Context) context.Context

// Provided wraps a component so every render runs the given setups on the
// context first. Nil setups are skipped. It allows handing a component to
// code that controls rendering, such as an HTTP handler or a live fragment
// renderer, while still deciding what its providers resolve to.
func Provided(c templ.Component, setups ...Setup) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, setup := range setups {
			if setup == nil {
				continue
			}
			ctx = setup(ctx)
		}
		return c.Render(ctx, w)
	})
}

// HTML renders a component to an HTML string. The context flows into the
// component, so provider values set on it resolve during rendering.
func HTML(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
