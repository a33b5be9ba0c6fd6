package kernel

import "sync/atomic"

// Signal is a single "work pending" flag, set from any context.
type Signal struct {
	v atomic.Bool
}

// Set marks work pending.
func (s *Signal) Set() { s.v.Store(true) }

// Pending reports whether work is pending without clearing it.
func (s *Signal) Pending() bool { return s.v.Load() }

// Take clears the flag and reports whether it was set.
func (s *Signal) Take() bool { return s.v.Swap(false) }

// Waker marks a suspended task runnable again.
//
// It is a plain value: copying it never allocates, and it is safe to invoke
// from interrupt context.
type Waker struct {
	sig *Signal
}

// WakerFor returns a Waker that sets s.
func WakerFor(s *Signal) Waker { return Waker{sig: s} }

// Wake marks the owning task runnable on the next executor pass.
func (w Waker) Wake() {
	if w.sig != nil {
		w.sig.Set()
	}
}

// Equal reports whether w and o wake the same task.
func (w Waker) Equal(o Waker) bool { return w.sig == o.sig }

// Context is handed to every Poll call.
type Context struct {
	waker Waker
}

// NewContext returns a poll context carrying w.
func NewContext(w Waker) *Context { return &Context{waker: w} }

// Waker returns the resume handle for the task being polled.
func (c *Context) Waker() Waker { return c.waker }
