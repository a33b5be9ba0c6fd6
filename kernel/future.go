package kernel

// Future is a pollable suspend/resume sequence.
//
// Poll returns done=false when the future is suspended; before doing so it
// must have arranged for cx.Waker() to be invoked when progress is possible.
// Once Poll reports done it is not polled again by Join or the executor.
type Future[T any] interface {
	Poll(cx *Context) (v T, done bool)
}

// Task is a future with no result, the common case for application routines.
type Task = Future[struct{}]

// PollFunc adapts a function to a Future.
type PollFunc[T any] func(cx *Context) (T, bool)

func (f PollFunc[T]) Poll(cx *Context) (T, bool) { return f(cx) }

// Ready is a future that completes immediately with its value.
type Ready[T any] struct {
	V T
}

func (r Ready[T]) Poll(*Context) (T, bool) { return r.V, true }
