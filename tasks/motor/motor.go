// Package motor cycles an H-bridge motor: ramp up, hold, ramp down, rest,
// reverse.
package motor

import (
	"errors"

	"glimmer/hal"
	"glimmer/kernel"

	"github.com/joeycumines/logiface"
)

// Config shapes the cycle.
type Config struct {
	Max       uint8
	Step      uint8
	StepEvery kernel.Millis
	Hold      kernel.Millis
	Rest      kernel.Millis
}

func DefaultConfig() Config {
	return Config{Max: 255, Step: 15, StepEvery: 100, Hold: 2000, Rest: 1000}
}

var ErrConfig = errors.New("motor: max, step, step interval and rest must be positive")

func (c Config) Validate() error {
	if c.Max == 0 || c.Step == 0 || c.StepEvery == 0 || c.Rest == 0 {
		return ErrConfig
	}
	return nil
}

// Phase is the position in the cycle.
type Phase uint8

const (
	PhaseRampUp Phase = iota
	PhaseHold
	PhaseRampDown
	PhaseRest
)

func (p Phase) String() string {
	switch p {
	case PhaseRampUp:
		return "ramp-up"
	case PhaseHold:
		return "hold"
	case PhaseRampDown:
		return "ramp-down"
	case PhaseRest:
		return "rest"
	default:
		return "unknown"
	}
}

// Controller pauses and resumes a Task. It is used from task context only
// and needs no locking.
type Controller struct {
	paused bool
	waker  kernel.Waker
}

// Paused reports whether the motor is held.
func (c *Controller) Paused() bool { return c.paused }

// Pause stops the motor at its next poll, which it requests.
func (c *Controller) Pause() {
	c.paused = true
	c.waker.Wake()
}

// Resume lets a paused motor continue its cycle.
func (c *Controller) Resume() {
	if !c.paused {
		return
	}
	c.paused = false
	c.waker.Wake()
}

// Toggle flips between paused and running and returns the new paused state.
func (c *Controller) Toggle() bool {
	if c.paused {
		c.Resume()
	} else {
		c.Pause()
	}
	return c.paused
}

// Task runs the motor cycle forever.
type Task struct {
	rt    *kernel.Runtime
	motor hal.Motor
	ctl   *Controller
	cfg   Config
	log   *logiface.Logger[logiface.Event]

	started bool
	stopped bool
	phase   Phase
	dir     hal.Direction
	speed   uint8
	waiting bool
	delay   kernel.Delay
}

func New(rt *kernel.Runtime, m hal.Motor, ctl *Controller, cfg Config, log *logiface.Logger[logiface.Event]) (*Task, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ctl == nil {
		ctl = &Controller{}
	}
	return &Task{rt: rt, motor: m, ctl: ctl, cfg: cfg, log: log}, nil
}

// Controller returns the pause controller.
func (t *Task) Controller() *Controller { return t.ctl }

// Phase returns the current cycle phase.
func (t *Task) Phase() Phase { return t.phase }

// Direction returns the current rotation.
func (t *Task) Direction() hal.Direction { return t.dir }

// Speed returns the current duty.
func (t *Task) Speed() uint8 { return t.speed }

func (t *Task) Poll(cx *kernel.Context) (struct{}, bool) {
	if !t.started {
		t.started = true
		t.motor.SetSpeed(0)
		t.motor.SetDirection(t.dir)
		t.motor.SetEnabled(true)
	}
	t.ctl.waker = cx.Waker()
	for {
		if t.ctl.paused {
			t.hold()
			return struct{}{}, false
		}
		if t.stopped {
			t.stopped = false
			if t.phase != PhaseRest {
				t.motor.SetEnabled(true)
			}
			t.log.Debug().Str("phase", t.phase.String()).Log("motor: resumed")
		}
		if t.waiting {
			if _, ok := t.delay.Poll(cx); !ok {
				return struct{}{}, false
			}
			t.waiting = false
		}
		if wait := t.advance(); wait > 0 {
			t.delay = t.rt.Delay(wait)
			t.waiting = true
		}
	}
}

// hold parks the task until Resume. The pending wait is dropped; the cycle
// continues from the current phase.
func (t *Task) hold() {
	if t.waiting {
		t.delay.Cancel()
		t.waiting = false
	}
	if !t.stopped {
		t.stopped = true
		t.motor.SetEnabled(false)
		t.log.Debug().Str("phase", t.phase.String()).Log("motor: paused")
	}
}

// advance takes one step of the cycle and returns how long to wait before
// the next. Zero means step again immediately.
func (t *Task) advance() kernel.Millis {
	switch t.phase {
	case PhaseRampUp:
		if t.speed >= t.cfg.Max {
			t.phase = PhaseHold
			return t.cfg.Hold
		}
		t.setSpeed(int(t.speed) + int(t.cfg.Step))
		return t.cfg.StepEvery
	case PhaseHold:
		t.phase = PhaseRampDown
		return 0
	case PhaseRampDown:
		if t.speed == 0 {
			t.motor.SetEnabled(false)
			t.phase = PhaseRest
			return t.cfg.Rest
		}
		t.setSpeed(int(t.speed) - int(t.cfg.Step))
		return t.cfg.StepEvery
	default:
		t.dir = t.dir.Opposite()
		t.motor.SetDirection(t.dir)
		t.motor.SetEnabled(true)
		t.phase = PhaseRampUp
		t.log.Debug().Str("dir", t.dir.String()).Log("motor: reversed")
		return 0
	}
}

func (t *Task) setSpeed(v int) {
	t.speed = uint8(hal.Clamp(v, 0, int(t.cfg.Max)))
	t.motor.SetSpeed(t.speed)
}
