package async

import (
	"context"
	"time"
)

// Future is the completion handle for a computation that produces a value
// of type U.
type Future[U any] struct {
	value U
	err   error
	done  chan struct{}
}

// Await blocks until the computation finishes and returns its result.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.value, f.err
}

// AwaitWithTimeout blocks for at most timeout. On ErrTimeout the zero
// value is returned and the computation keeps running.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the computation has finished, without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async runs fn on a new goroutine and returns a Future for its result.
// When ctx is already canceled the goroutine resolves the future with
// ctx.Err() without calling fn.
func Async[T, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.value, f.err = fn(ctx, param)
	}()

	return f
}

// WaitAll awaits every future in order and returns their values. On the
// first error it returns the values collected so far and that error.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, 0, len(futures))
	for _, f := range futures {
		value, err := f.Await()
		if err != nil {
			return results, err
		}
		results = append(results, value)
	}
	return results, nil
}

// WaitAny awaits the first future to complete and returns its index, value,
// and error. One waiter goroutine runs per future; the rest exit when their
// future resolves.
func WaitAny[U any](futures ...*Future[U]) (int, U, error) {
	if len(futures) == 0 {
		var zero U
		return -1, zero, ErrNoFutures
	}

	type result struct {
		index int
		value U
		err   error
	}
	first := make(chan result, 1)

	for i, f := range futures {
		go func(index int, f *Future[U]) {
			value, err := f.Await()
			select {
			case first <- result{index: index, value: value, err: err}:
			default:
			}
		}(i, f)
	}

	res := <-first
	return res.index, res.value, res.err
}
