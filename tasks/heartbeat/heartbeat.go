// Package heartbeat periodically logs runtime health.
package heartbeat

import (
	"errors"

	"glimmer/kernel"

	"github.com/joeycumines/logiface"
)

const DefaultInterval = kernel.Millis(5000)

var ErrInterval = errors.New("heartbeat: interval must be non-zero")

// ExecutorStats is implemented by *kernel.Executor.
type ExecutorStats interface {
	Stats() kernel.ExecutorStats
}

// Task logs a line every interval and warns when the schedule dropped
// registrations since the previous beat.
type Task struct {
	rt       *kernel.Runtime
	ex       ExecutorStats
	interval kernel.Millis
	log      *logiface.Logger[logiface.Event]

	beats   uint32
	dropped uint32
	waiting bool
	delay   kernel.Delay
}

func New(rt *kernel.Runtime, ex ExecutorStats, interval kernel.Millis, log *logiface.Logger[logiface.Event]) (*Task, error) {
	if interval == 0 {
		return nil, ErrInterval
	}
	return &Task{rt: rt, ex: ex, interval: interval, log: log}, nil
}

// Beats returns the number of completed intervals.
func (t *Task) Beats() uint32 { return t.beats }

func (t *Task) Poll(cx *kernel.Context) (struct{}, bool) {
	for {
		if !t.waiting {
			t.delay = t.rt.Delay(t.interval)
			t.waiting = true
		}
		if _, ok := t.delay.Poll(cx); !ok {
			return struct{}{}, false
		}
		t.waiting = false
		t.beats++
		t.report()
	}
}

func (t *Task) report() {
	st := t.rt.Stats()
	b := t.log.Info().
		Uint64("now", uint64(st.Now)).
		Int("pending", st.Pending).
		Uint64("fired", uint64(st.Fired)).
		Uint64("dropped", uint64(st.Dropped))
	if t.ex != nil {
		es := t.ex.Stats()
		b = b.Uint64("polls", uint64(es.Polls)).Uint64("idles", uint64(es.Idles))
	}
	b.Log("heartbeat")

	if st.Dropped != t.dropped {
		t.log.Warning().
			Uint64("new", uint64(st.Dropped-t.dropped)).
			Log("heartbeat: wakeups dropped, schedule full")
		t.dropped = st.Dropped
	}
}
