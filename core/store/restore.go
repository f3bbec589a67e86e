package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrymomot/providerkit/core/observable"
	"github.com/dmitrymomot/providerkit/core/provider"
)

// Restore hydrates src from the snapshot stored under p's name. A missing
// snapshot is not an error; src keeps its current value. Call it at startup
// before Persist so defaults never overwrite a stored snapshot.
func Restore[T any](ctx context.Context, st Store, p *provider.Provider[T], src *observable.Value[T]) error {
	if src == nil {
		return ErrNilSource
	}

	data, err := st.Load(ctx, p.Name())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("decode snapshot %q: %w", p.Name(), err)
	}

	src.Set(value)
	return nil
}
