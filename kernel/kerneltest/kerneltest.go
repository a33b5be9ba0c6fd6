// Package kerneltest drives a kernel.Runtime deterministically: one Tick is
// exactly one millisecond and tasks are polled only when woken.
package kerneltest

import (
	"testing"

	"glimmer/kernel"
)

// MillisClock overflows once per millisecond with no fractional carry.
var MillisClock = kernel.ClockConfig{CPUHz: 1_000_000, Prescaler: 1, Top: 1000}

// Harness owns a runtime and an executor without an idler.
type Harness struct {
	RT *kernel.Runtime
	Ex *kernel.Executor
}

// New returns a harness whose clock starts at zero.
func New(tb testing.TB) *Harness {
	tb.Helper()
	rt, err := kernel.New(kernel.Config{Clock: MillisClock, Mask: new(kernel.MutexMask)})
	if err != nil {
		tb.Fatalf("kernel.New() error = %v", err)
	}
	return &Harness{RT: rt, Ex: kernel.NewExecutor(rt, nil)}
}

// Start marks the executor ready and runs the first pass of task.
func (h *Harness) Start(task kernel.Task) bool {
	h.RT.Wake()
	return h.Drain(task)
}

// Drain polls task until it stops marking itself ready. It reports whether
// the task completed.
func (h *Harness) Drain(task kernel.Task) bool {
	for i := 0; i < 1000; i++ {
		_, done, polled := kernel.Step(h.Ex, task)
		if done {
			return true
		}
		if !polled {
			return false
		}
	}
	panic("kerneltest: task keeps itself ready")
}

// Advance runs ms clock ticks, draining task after each.
func (h *Harness) Advance(task kernel.Task, ms int) bool {
	for i := 0; i < ms; i++ {
		h.RT.Tick()
		if h.Drain(task) {
			return true
		}
	}
	return false
}

// Now returns the runtime clock.
func (h *Harness) Now() kernel.Instant { return h.RT.Now() }
