package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

// PWM is an output whose duty cycle is set in 1/255 steps.
type PWM interface {
	Set(duty uint8)
}

// Direction selects motor rotation.
type Direction uint8

const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return "unknown"
	}
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == Forward {
		return Reverse
	}
	return Forward
}

// Motor is an H-bridge channel: two direction pins, a PWM speed pin and an
// enable pin.
type Motor interface {
	SetEnabled(on bool)
	SetDirection(d Direction)
	SetSpeed(duty uint8)
}

// Display is a character display addressed by column and row.
type Display interface {
	Size() (cols, rows int)
	SetCursor(col, row int)
	Print(s string)
	// PrintBytes is Print for callers that reuse a frame buffer.
	PrintBytes(b []byte)
}

// Button is a momentary input wired to an external pin interrupt.
type Button interface {
	// Pressed samples the debounced level.
	Pressed() bool
	// OnEdge installs fn as the edge interrupt handler. fn runs in interrupt
	// context.
	OnEdge(fn func())
}

// Tone is a square-wave output produced by a frequency divider.
type Tone interface {
	SetFrequency(hz uint16) error
	On()
	Off()
}

// TimerConfig describes the periodic overflow interrupt that drives the
// millisecond clock: CPUHz/Prescaler counts, Top counts per overflow.
type TimerConfig struct {
	CPUHz     uint32
	Prescaler uint32
	Top       uint32
}

// Timer is the periodic overflow interrupt source.
type Timer interface {
	Config() TimerConfig
	// Start installs isr as the overflow handler and enables the interrupt.
	Start(isr func()) error
}

// IRQ masks and restores interrupts.
type IRQ interface {
	Disable() uintptr
	Restore(state uintptr)
}

// Idler parks the CPU until the next interrupt.
type Idler interface {
	WaitForInterrupt()
}

var (
	ErrNotImplemented = errors.New("not implemented")
	ErrTimerStarted   = errors.New("timer already started")
	ErrTimerConfig    = errors.New("invalid timer configuration")
)

// HAL provides the only contact point between the firmware and the board.
type HAL interface {
	Logger() Logger
	StatusLED() LED
	PulseLED() PWM
	Motor() Motor
	Display() Display
	Button() Button
	Tone() Tone
	Timer() Timer
	IRQ() IRQ
	Idler() Idler
}

// App is the firmware as seen by a board runner.
type App interface {
	// Run blocks running the firmware until Stop, or forever on hardware.
	Run()
	// Stop asks Run to return. It may be called from any goroutine.
	Stop()
}
