package kernel

import "errors"

// Config configures a Runtime.
type Config struct {
	Clock ClockConfig
	// Mask guards the clock and schedule. Required.
	Mask Mask
	// IDs allocates Delay ids; nil selects a WrappingIDs starting at 0.
	IDs IDAllocator
}

// Stats is a snapshot of runtime counters.
type Stats struct {
	Now       Instant
	Overflows uint32
	Pending   int
	Fired     uint32
	Dropped   uint32
}

// Runtime owns the interrupt-shared state: the clock, the wakeup schedule,
// the Delay id allocator and the executor's ready signal.
type Runtime struct {
	mask  Mask
	ids   IDAllocator
	clock Clock
	sched Schedule
	ready Signal

	fired   uint32
	dropped uint32
}

// New builds a Runtime. Interrupts are assumed off; the caller starts the
// timer that calls Tick once New returns.
func New(cfg Config) (*Runtime, error) {
	if cfg.Mask == nil {
		return nil, errors.New("runtime: nil mask")
	}
	rates, err := cfg.Clock.Rates()
	if err != nil {
		return nil, err
	}
	ids := cfg.IDs
	if ids == nil {
		ids = NewWrappingIDs(0)
	}
	return &Runtime{
		mask:  cfg.Mask,
		ids:   ids,
		clock: newClock(rates),
	}, nil
}

// Rates returns the clock increments in use.
func (rt *Runtime) Rates() ClockRates { return rt.clock.rates }

// Now returns the current millisecond timestamp.
func (rt *Runtime) Now() Instant {
	s := rt.mask.Disable()
	now := rt.clock.millis
	rt.mask.Restore(s)
	return now
}

// Tick is the timer-overflow interrupt body: it advances the clock and wakes
// every suspension whose deadline has passed.
func (rt *Runtime) Tick() {
	s := rt.mask.Disable()
	now := rt.clock.advance()
	rt.fired += uint32(rt.sched.DrainBefore(now))
	rt.mask.Restore(s)
}

// resetClock sets the clock to at and fires whatever became due. Pending
// deadlines are not adjusted.
func (rt *Runtime) resetClock(at Instant) {
	s := rt.mask.Disable()
	rt.clock.reset(at)
	rt.fired += uint32(rt.sched.DrainBefore(at))
	rt.mask.Restore(s)
}

// Wake sets the ready signal. Pin interrupt handlers use it to get their
// watcher polled.
func (rt *Runtime) Wake() { rt.ready.Set() }

// Waker returns the resume handle tied to the ready signal.
func (rt *Runtime) Waker() Waker { return WakerFor(&rt.ready) }

// Stats returns a snapshot of the runtime counters.
func (rt *Runtime) Stats() Stats {
	s := rt.mask.Disable()
	st := Stats{
		Now:       rt.clock.millis,
		Overflows: rt.clock.overflows,
		Pending:   rt.sched.Len(),
		Fired:     rt.fired,
		Dropped:   rt.dropped,
	}
	rt.mask.Restore(s)
	return st
}

// Delay returns a suspension that completes once ms milliseconds have
// elapsed from now.
func (rt *Runtime) Delay(ms Millis) Delay {
	s := rt.mask.Disable()
	deadline := rt.clock.millis.Add(ms)
	id := rt.allocID()
	rt.mask.Restore(s)
	return Delay{rt: rt, deadline: deadline, id: id}
}

// Yield returns a suspension that completes on the next executor pass.
func (rt *Runtime) Yield() Yield { return Yield{} }

// allocID skips ids still present in the schedule, so a wrapped counter never
// lets a new Delay take over a live entry. Caller holds the mask.
func (rt *Runtime) allocID() TaskID {
	id := rt.ids.Next()
	for i := 0; i < ScheduleCapacity && rt.sched.Contains(id); i++ {
		id = rt.ids.Next()
	}
	return id
}

// register is called by Delay.Poll with the mask held.
func (rt *Runtime) register(deadline Instant, id TaskID, w Waker) bool {
	if err := rt.sched.RegisterOrUpdate(deadline, id, w); err != nil {
		rt.dropped++
		return false
	}
	return true
}
