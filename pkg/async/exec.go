package async

import (
	"context"
	"time"
)

// ExecFuture is the completion handle for a computation that reports only
// an error.
type ExecFuture struct {
	err  error
	done chan struct{}
}

// Await blocks until the computation finishes and returns its error.
func (f *ExecFuture) Await() error {
	<-f.done
	return f.err
}

// AwaitWithTimeout blocks for at most timeout. ErrTimeout means the
// computation is still running; it is not stopped.
func (f *ExecFuture) AwaitWithTimeout(timeout time.Duration) error {
	select {
	case <-f.done:
		return f.err
	case <-time.After(timeout):
		return ErrTimeout
	}
}

// IsComplete reports whether the computation has finished, without blocking.
func (f *ExecFuture) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Exec runs fn on a new goroutine and returns its completion handle.
// When ctx is already canceled the goroutine resolves the future with
// ctx.Err() without calling fn.
func Exec[T any](ctx context.Context, param T, fn func(context.Context, T) error) *ExecFuture {
	f := &ExecFuture{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.err = fn(ctx, param)
	}()

	return f
}

// ExecAll awaits every future in order and returns the first error.
func ExecAll(futures ...*ExecFuture) error {
	for _, f := range futures {
		if err := f.Await(); err != nil {
			return err
		}
	}
	return nil
}

// ExecAny awaits the first future to complete and returns its index and
// error. One waiter goroutine runs per future; the rest exit when their
// future resolves.
func ExecAny(futures ...*ExecFuture) (int, error) {
	if len(futures) == 0 {
		return -1, ErrNoFutures
	}

	type result struct {
		index int
		err   error
	}
	first := make(chan result, 1)

	for i, f := range futures {
		go func(index int, f *ExecFuture) {
			err := f.Await()
			select {
			case first <- result{index: index, err: err}:
			default:
			}
		}(i, f)
	}

	res := <-first
	return res.index, res.err
}
