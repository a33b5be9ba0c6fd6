package kernel

import "sync/atomic"

// Idler parks the CPU until an interrupt may have made work available.
//
// WaitForInterrupt is called with no critical section held. It must return
// promptly when an interrupt fired since the previous call, so a wake that
// raced the idle decision is not lost.
type Idler interface {
	WaitForInterrupt()
}

// ExecutorStats counts executor activity.
type ExecutorStats struct {
	Polls uint32
	Idles uint32
}

// Executor drives one top-level future on the current goroutine.
//
// It polls only when the runtime's ready signal is set and idles otherwise,
// so a task with nothing due costs no CPU between interrupts.
type Executor struct {
	rt   *Runtime
	idle Idler
	cx   Context

	halted atomic.Bool
	polls  atomic.Uint32
	idles  atomic.Uint32
}

// NewExecutor returns an executor bound to rt's ready signal.
func NewExecutor(rt *Runtime, idle Idler) *Executor {
	ex := &Executor{rt: rt, idle: idle}
	ex.cx = Context{waker: rt.Waker()}
	return ex
}

// Step runs at most one pass: if the ready signal was set it is cleared and f
// is polled once. polled reports whether a poll happened.
func Step[T any](ex *Executor, f Future[T]) (v T, done, polled bool) {
	if !ex.rt.ready.Take() {
		return v, false, false
	}
	ex.polls.Add(1)
	v, done = f.Poll(&ex.cx)
	return v, done, true
}

// BlockOn polls f until it completes or Halt is called.
func BlockOn[T any](ex *Executor, f Future[T]) (T, bool) {
	ex.rt.ready.Set()
	for !ex.halted.Load() {
		v, done, polled := Step(ex, f)
		if done {
			return v, true
		}
		if polled || ex.rt.ready.Pending() {
			continue
		}
		ex.idles.Add(1)
		if ex.idle != nil {
			ex.idle.WaitForInterrupt()
		}
	}
	var zero T
	return zero, false
}

// RunForever runs task as the program's top-level future. A task that
// finishes or panics is a fault; RunForever returns only after Halt.
func (ex *Executor) RunForever(task Task) {
	Guard("executor", func() {
		if _, ok := BlockOn(ex, task); ok {
			Fault(FaultInfo{Where: "executor", Value: ErrTaskReturned})
		}
	})
}

// Halt stops BlockOn after its current pass. The idler is expected to return
// shortly; on host boards the caller also wakes it.
func (ex *Executor) Halt() {
	ex.halted.Store(true)
	ex.rt.ready.Set()
}

// Halted reports whether Halt was called.
func (ex *Executor) Halted() bool { return ex.halted.Load() }

// Stats returns the poll and idle counts.
func (ex *Executor) Stats() ExecutorStats {
	return ExecutorStats{Polls: ex.polls.Load(), Idles: ex.idles.Load()}
}
