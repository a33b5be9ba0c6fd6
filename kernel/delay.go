package kernel

// Delay suspends the polling task until its deadline has passed.
//
// The deadline and id are fixed at construction. Every not-yet-due poll
// registers (or refreshes) one schedule entry for the id; the clock interrupt
// pops that entry and wakes the task exactly once. A Delay that could not be
// registered because the schedule was full is only re-polled when something
// else wakes the executor.
type Delay struct {
	rt         *Runtime
	deadline   Instant
	id         TaskID
	registered bool
	done       bool
}

// Deadline returns the instant at which the delay completes.
func (d *Delay) Deadline() Instant { return d.deadline }

// ID returns the schedule id of the delay.
func (d *Delay) ID() TaskID { return d.id }

func (d *Delay) Poll(cx *Context) (struct{}, bool) {
	if d.done || d.rt == nil {
		return struct{}{}, true
	}
	rt := d.rt
	s := rt.mask.Disable()
	if Reached(rt.clock.millis, d.deadline) {
		// Any entry for a reached deadline was drained by the same tick.
		rt.mask.Restore(s)
		d.done = true
		return struct{}{}, true
	}
	if rt.register(d.deadline, d.id, cx.Waker()) {
		d.registered = true
	}
	rt.mask.Restore(s)
	return struct{}{}, false
}

// Cancel abandons the wait and removes its schedule entry. It reports whether
// an entry was pending. A cancelled Delay reports done on every later poll.
func (d *Delay) Cancel() bool {
	if d.done || d.rt == nil {
		return false
	}
	d.done = true
	if !d.registered {
		return false
	}
	s := d.rt.mask.Disable()
	removed := d.rt.sched.removeEntry(d.id, d.deadline)
	d.rt.mask.Restore(s)
	return removed
}
