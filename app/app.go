// Package app wires the board, the runtime and the firmware tasks together.
package app

import (
	"fmt"

	"glimmer/hal"
	"glimmer/internal/buildinfo"
	"glimmer/kernel"
	"glimmer/tasks/beeper"
	"glimmer/tasks/breathe"
	"glimmer/tasks/button"
	"glimmer/tasks/heartbeat"
	"glimmer/tasks/marquee"
	"glimmer/tasks/morse"
	"glimmer/tasks/motor"

	"github.com/joeycumines/logiface"
)

// Config selects the firmware behaviour. The zero value of each field picks
// its default.
type Config struct {
	LogLevel logiface.Level
	// Morse is the text blinked on the status LED. Empty blinks SOS.
	Morse     string
	Unit      kernel.Millis
	Line1     string
	Line2     string
	ToneHz    uint16
	Step      kernel.Millis
	Motor     motor.Config
	Debounce  kernel.Millis
	Heartbeat kernel.Millis
}

func DefaultConfig() Config {
	return Config{
		LogLevel:  logiface.LevelInformational,
		Unit:      morse.DefaultUnit,
		Line1:     "glimmer",
		Line2:     "hello, world",
		ToneHz:    beeper.DefaultHz,
		Step:      breathe.DefaultStep,
		Motor:     motor.DefaultConfig(),
		Debounce:  button.DefaultDebounce,
		Heartbeat: heartbeat.DefaultInterval,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.LogLevel == 0 {
		c.LogLevel = d.LogLevel
	}
	if c.Unit == 0 {
		c.Unit = d.Unit
	}
	if c.ToneHz == 0 {
		c.ToneHz = d.ToneHz
	}
	if c.Step == 0 {
		c.Step = d.Step
	}
	if c.Motor == (motor.Config{}) {
		c.Motor = d.Motor
	}
	if c.Debounce == 0 {
		c.Debounce = d.Debounce
	}
	if c.Heartbeat == 0 {
		c.Heartbeat = d.Heartbeat
	}
	return c
}

// App is the running firmware. It implements hal.App.
type App struct {
	h    hal.HAL
	log  *logiface.Logger[logiface.Event]
	rt   *kernel.Runtime
	ex   *kernel.Executor
	root kernel.Task

	motor  *motor.Controller
	beeper *beeper.Beeper
	button *button.Watcher
}

var _ hal.App = (*App)(nil)

// New builds the runtime and every task. Nothing runs and the timer stays
// off until Run.
func New(h hal.HAL, cfg Config) (*App, error) {
	cfg = cfg.withDefaults()
	log := NewLogger(h.Logger(), cfg.LogLevel)
	installFaultHandler(h, log)

	tc := h.Timer().Config()
	rt, err := kernel.New(kernel.Config{
		Clock: kernel.ClockConfig{CPUHz: tc.CPUHz, Prescaler: tc.Prescaler, Top: tc.Top},
		Mask:  h.IRQ(),
	})
	if err != nil {
		return nil, err
	}
	a := &App{
		h:     h,
		log:   log,
		rt:    rt,
		ex:    kernel.NewExecutor(rt, h.Idler()),
		motor: &motor.Controller{},
	}

	pattern := morse.SOS
	if cfg.Morse != "" {
		if pattern, err = morse.Encode(cfg.Morse); err != nil {
			return nil, fmt.Errorf("morse %q: %w", cfg.Morse, err)
		}
	}
	blink, err := morse.New(rt, h.StatusLED(), pattern, cfg.Unit, log)
	if err != nil {
		return nil, err
	}
	breath, err := breathe.New(rt, h.PulseLED(), cfg.Step)
	if err != nil {
		return nil, err
	}
	text, err := marquee.New(rt, h.Display(), marquee.DefaultInterval, log, cfg.Line1, cfg.Line2)
	if err != nil {
		return nil, err
	}
	drive, err := motor.New(rt, h.Motor(), a.motor, cfg.Motor, log)
	if err != nil {
		return nil, err
	}
	if a.beeper, err = beeper.New(rt, h.Tone(), cfg.ToneHz, log); err != nil {
		return nil, err
	}
	hb, err := heartbeat.New(rt, a.ex, cfg.Heartbeat, log)
	if err != nil {
		return nil, err
	}
	a.button = button.New(rt, h.Button(), cfg.Debounce, log, a.onPress)

	all := kernel.Join[struct{}](blink, breath, text, drive, a.button, a.beeper, hb)
	a.root = kernel.PollFunc[struct{}](func(cx *kernel.Context) (struct{}, bool) {
		_, done := all.Poll(cx)
		return struct{}{}, done
	})
	return a, nil
}

// onPress toggles the motor and acknowledges with one beep for pause and two
// for resume.
func (a *App) onPress() {
	if a.motor.Toggle() {
		a.beeper.Beep(1)
		return
	}
	a.beeper.Beep(2)
}

// Runtime exposes the runtime for diagnostics.
func (a *App) Runtime() *kernel.Runtime { return a.rt }

// Run starts the overflow timer and runs the tasks until Stop. On hardware
// it never returns.
func (a *App) Run() {
	rates := a.rt.Rates()
	a.log.Info().
		Str("version", buildinfo.Short()).
		Uint64("period_us", uint64(rates.PeriodMicros)).
		Uint64("millis_inc", uint64(rates.MillisInc)).
		Uint64("fract_inc", uint64(rates.FractInc)).
		Log("boot")
	if err := a.h.Timer().Start(a.rt.Tick); err != nil {
		kernel.Fault(kernel.FaultInfo{Where: "timer", Value: err})
		return
	}
	a.ex.RunForever(a.root)
}

// Stop halts the executor after its current pass.
func (a *App) Stop() { a.ex.Halt() }
