package async

import "context"

// Future is the pending result of a function started with Go.
type Future[T any] struct {
	result T
	err    error
	done   chan struct{}
}

// Go starts fn in its own goroutine and returns a Future for its
// result. The context is passed through to fn; cancellation handling
// is fn's responsibility.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		f.result, f.err = fn(ctx)
	}()

	return f
}

// Await blocks until the function completes and returns its result.
// Await may be called any number of times.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.result, f.err
}
