//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// HostConfig configures the simulated board.
type HostConfig struct {
	Timer TimerConfig
	// Speed scales simulated time: 2 runs the overflow timer twice as fast.
	Speed float64
	// Ticks stops the timer after this many overflows. Zero runs until stopped.
	Ticks uint64
	// Verbose logs every LED, motor, tone and display change.
	Verbose bool
	// Out receives log lines. Nil selects stdout.
	Out io.Writer
}

// DefaultHostConfig simulates a 16 MHz part with a /64 prescaler on an 8-bit
// overflow counter.
func DefaultHostConfig() HostConfig {
	return HostConfig{
		Timer: TimerConfig{CPUHz: 16_000_000, Prescaler: 64, Top: 256},
		Speed: 1,
	}
}

type hostHAL struct {
	logger *hostLogger
	status *hostLED
	pulse  *hostPWM
	motor  *hostMotor
	lcd    *hostLCD
	button *hostButton
	tone   *hostTone
	timer  *hostTimer
	irq    *hostIRQ
	idle   *hostIdler
}

// New returns a host HAL implementation.
func New(cfg HostConfig) (HAL, error) {
	return newHostHAL(cfg)
}

func newHostHAL(cfg HostConfig) (*hostHAL, error) {
	if !(cfg.Speed > 0) {
		return nil, fmt.Errorf("host: speed %v must be positive", cfg.Speed)
	}
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	logger := &hostLogger{w: out}
	var verbose *hostLogger
	if cfg.Verbose {
		verbose = logger
	}
	idle := newHostIdler()
	timer, err := newHostTimer(cfg.Timer, cfg.Speed, cfg.Ticks, idle)
	if err != nil {
		return nil, err
	}
	return &hostHAL{
		logger: logger,
		status: &hostLED{logger: verbose},
		pulse:  &hostPWM{},
		motor:  &hostMotor{logger: verbose},
		lcd:    newHostLCD(16, 2, verbose),
		button: &hostButton{},
		tone:   &hostTone{logger: verbose},
		timer:  timer,
		irq:    &hostIRQ{},
		idle:   idle,
	}, nil
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) StatusLED() LED   { return h.status }
func (h *hostHAL) PulseLED() PWM    { return h.pulse }
func (h *hostHAL) Motor() Motor     { return h.motor }
func (h *hostHAL) Display() Display { return h.lcd }
func (h *hostHAL) Button() Button   { return h.button }
func (h *hostHAL) Tone() Tone       { return h.tone }
func (h *hostHAL) Timer() Timer     { return h.timer }
func (h *hostHAL) IRQ() IRQ         { return h.irq }
func (h *hostHAL) Idler() Idler     { return h.idle }

func (h *hostHAL) close() {
	h.timer.stop()
	h.idle.close()
}

type hostLogger struct {
	mu     sync.Mutex
	w      io.Writer
	mirror io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
	if l.mirror != nil {
		io.WriteString(l.mirror, s)
		io.WriteString(l.mirror, "\n")
	}
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
	if l.mirror != nil {
		l.mirror.Write(b)
		io.WriteString(l.mirror, "\n")
	}
}

func (l *hostLogger) setMirror(w io.Writer) {
	l.mu.Lock()
	l.mirror = w
	l.mu.Unlock()
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() { l.set(true) }
func (l *hostLED) Low()  { l.set(false) }

func (l *hostLED) set(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = on
	if l.logger == nil {
		return
	}
	if on {
		l.logger.WriteLineString("led: HIGH")
	} else {
		l.logger.WriteLineString("led: LOW")
	}
}

func (l *hostLED) isOn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}

// hostPWM is not logged: it changes every few milliseconds.
type hostPWM struct {
	duty atomic.Uint32
}

func (p *hostPWM) Set(duty uint8) { p.duty.Store(uint32(duty)) }
func (p *hostPWM) level() uint8   { return uint8(p.duty.Load()) }

type motorState struct {
	Enabled bool
	Dir     Direction
	Speed   uint8
}

type hostMotor struct {
	mu     sync.Mutex
	st     motorState
	logger *hostLogger
}

func (m *hostMotor) SetEnabled(on bool) {
	m.update(func(st *motorState) { st.Enabled = on })
}

func (m *hostMotor) SetDirection(d Direction) {
	m.update(func(st *motorState) { st.Dir = d })
}

func (m *hostMotor) SetSpeed(duty uint8) {
	m.update(func(st *motorState) { st.Speed = duty })
}

func (m *hostMotor) update(fn func(*motorState)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev := m.st
	fn(&m.st)
	if m.logger != nil && m.st != prev {
		m.logger.WriteLineString(fmt.Sprintf("motor: enabled=%t dir=%s speed=%d", m.st.Enabled, m.st.Dir, m.st.Speed))
	}
}

func (m *hostMotor) state() motorState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st
}

type hostLCD struct {
	mu     sync.Mutex
	cols   int
	rows   int
	lines  [][]byte
	col    int
	row    int
	logger *hostLogger
}

func newHostLCD(cols, rows int, logger *hostLogger) *hostLCD {
	d := &hostLCD{cols: cols, rows: rows, logger: logger}
	d.lines = make([][]byte, rows)
	for i := range d.lines {
		d.lines[i] = []byte(fmt.Sprintf("%*s", cols, ""))
	}
	return d
}

func (d *hostLCD) Size() (cols, rows int) { return d.cols, d.rows }

func (d *hostLCD) SetCursor(col, row int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.col = Clamp(col, 0, d.cols)
	d.row = Clamp(row, 0, d.rows-1)
}

func (d *hostLCD) Print(s string)      { lcdPut(d, s) }
func (d *hostLCD) PrintBytes(b []byte) { lcdPut(d, b) }

func lcdPut[S ~string | ~[]byte](d *hostLCD, s S) {
	d.mu.Lock()
	defer d.mu.Unlock()
	line := d.lines[d.row]
	changed := false
	for i := 0; i < len(s) && d.col < d.cols; i++ {
		if line[d.col] != s[i] {
			line[d.col] = s[i]
			changed = true
		}
		d.col++
	}
	if changed && d.logger != nil {
		d.logger.WriteLineString(fmt.Sprintf("lcd[%d]: %q", d.row, line))
	}
}

func (d *hostLCD) line(row int) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return string(d.lines[row])
}

// hostButton is active while held. press runs the edge handler on the
// caller's goroutine, which plays the part of interrupt context.
type hostButton struct {
	down    atomic.Bool
	handler atomic.Pointer[func()]
}

func (b *hostButton) Pressed() bool { return b.down.Load() }

func (b *hostButton) OnEdge(fn func()) {
	if fn == nil {
		b.handler.Store(nil)
		return
	}
	b.handler.Store(&fn)
}

func (b *hostButton) press() {
	if b.down.Swap(true) {
		return
	}
	if fn := b.handler.Load(); fn != nil {
		(*fn)()
	}
}

func (b *hostButton) release() { b.down.Store(false) }

// toneSink renders the square wave. Only window builds have one.
type toneSink interface {
	setTone(hz uint16, on bool)
}

type hostTone struct {
	mu     sync.Mutex
	hz     uint16
	on     bool
	sink   toneSink
	logger *hostLogger
}

func (t *hostTone) SetFrequency(hz uint16) error {
	if _, err := ToneDivider(hz); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hz = hz
	t.apply()
	return nil
}

func (t *hostTone) On()  { t.set(true) }
func (t *hostTone) Off() { t.set(false) }

func (t *hostTone) set(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.on == on {
		return
	}
	t.on = on
	if t.logger != nil {
		if on {
			t.logger.WriteLineString(fmt.Sprintf("tone: %d Hz on", t.hz))
		} else {
			t.logger.WriteLineString("tone: off")
		}
	}
	t.apply()
}

func (t *hostTone) apply() {
	if t.sink != nil {
		t.sink.setTone(t.hz, t.on && t.hz != 0)
	}
}

func (t *hostTone) setSink(s toneSink) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sink = s
	t.apply()
}

func (t *hostTone) state() (hz uint16, on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hz, t.on
}

// hostIRQ masks the simulated interrupt goroutines. It is not reentrant.
type hostIRQ struct {
	mu sync.Mutex
}

func (q *hostIRQ) Disable() uintptr {
	q.mu.Lock()
	return 0
}

func (q *hostIRQ) Restore(uintptr) {
	q.mu.Unlock()
}
