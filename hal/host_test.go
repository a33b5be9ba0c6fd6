//go:build !tinygo

package hal

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestHost(t *testing.T, mutate func(*HostConfig)) (*hostHAL, *syncBuffer) {
	t.Helper()
	out := &syncBuffer{}
	cfg := DefaultHostConfig()
	cfg.Out = out
	cfg.Verbose = true
	if mutate != nil {
		mutate(&cfg)
	}
	h, err := newHostHAL(cfg)
	if err != nil {
		t.Fatalf("newHostHAL() error = %v", err)
	}
	t.Cleanup(h.close)
	return h, out
}

func TestHostRejectsBadSpeed(t *testing.T) {
	cfg := DefaultHostConfig()
	cfg.Speed = 0
	if _, err := New(cfg); err == nil {
		t.Fatal("New() with zero speed error = nil")
	}
	cfg = DefaultHostConfig()
	cfg.Timer.Top = 0
	if _, err := New(cfg); !errors.Is(err, ErrTimerConfig) {
		t.Fatalf("New() with zero top error = %v, want %v", err, ErrTimerConfig)
	}
}

func TestHostVerboseLogging(t *testing.T) {
	h, out := newTestHost(t, nil)

	h.StatusLED().High()
	h.StatusLED().Low()
	h.Motor().SetDirection(Reverse)
	h.Display().SetCursor(2, 1)
	h.Display().Print("hi")
	if err := h.Tone().SetFrequency(880); err != nil {
		t.Fatalf("SetFrequency() error = %v", err)
	}
	h.Tone().On()

	got := out.String()
	for _, want := range []string{
		"led: HIGH\n",
		"led: LOW\n",
		"motor: enabled=false dir=reverse speed=0\n",
		`lcd[1]: "  hi            "`,
		"tone: 880 Hz on\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("log = %q, want it to contain %q", got, want)
		}
	}
}

func TestHostLCDClipsAtWidth(t *testing.T) {
	h, _ := newTestHost(t, func(c *HostConfig) { c.Verbose = false })
	h.lcd.SetCursor(12, 0)
	h.lcd.Print("overflow")
	if got := h.lcd.line(0); got != "            over" {
		t.Fatalf("line(0) = %q, want %q", got, "            over")
	}
	h.lcd.SetCursor(0, 1)
	h.lcd.PrintBytes([]byte("0123456789abcdefXYZ"))
	if got := h.lcd.line(1); got != "0123456789abcdef" {
		t.Fatalf("line(1) = %q, want %q", got, "0123456789abcdef")
	}
}

func TestHostToneRejectsRange(t *testing.T) {
	h, _ := newTestHost(t, nil)
	if err := h.Tone().SetFrequency(20); !errors.Is(err, ErrToneRange) {
		t.Fatalf("SetFrequency(20) error = %v, want %v", err, ErrToneRange)
	}
}

func TestHostButtonEdge(t *testing.T) {
	h, _ := newTestHost(t, nil)
	var edges atomic.Int32
	h.Button().OnEdge(func() { edges.Add(1) })

	h.button.press()
	h.button.press() // held: no second edge
	if !h.Button().Pressed() {
		t.Fatal("Pressed() = false while held")
	}
	h.button.release()
	if h.Button().Pressed() {
		t.Fatal("Pressed() = true after release")
	}
	h.button.press()
	if got := edges.Load(); got != 2 {
		t.Fatalf("edges = %d, want 2", got)
	}
}

func TestHostTimerLimitAndIdler(t *testing.T) {
	h, _ := newTestHost(t, func(c *HostConfig) {
		c.Speed = 100
		c.Ticks = 20
	})
	var calls atomic.Int32
	if err := h.Timer().Start(func() { calls.Add(1) }); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := h.Timer().Start(func() {}); !errors.Is(err, ErrTimerStarted) {
		t.Fatalf("second Start() error = %v, want %v", err, ErrTimerStarted)
	}

	// The idler latches the wake even if nobody was waiting.
	h.Idler().WaitForInterrupt()

	select {
	case <-h.timer.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("timer did not reach its tick limit")
	}
	if got := calls.Load(); got != 20 {
		t.Fatalf("isr calls = %d, want 20", got)
	}
}

func TestHostIdlerReturnsAfterClose(t *testing.T) {
	idle := newHostIdler()
	idle.close()
	idle.WaitForInterrupt()
	idle.WaitForInterrupt()
}

func TestPanelRendersState(t *testing.T) {
	h, _ := newTestHost(t, func(c *HostConfig) { c.Verbose = false })
	p := newPanel(h)

	p.render()
	off := toRGB565(colorLEDOff)
	if got := p.fb.pixelAt(20, 20); got != off {
		t.Fatalf("status LED pixel = %#04x, want %#04x", got, off)
	}

	h.StatusLED().High()
	h.PulseLED().Set(255)
	h.Motor().SetEnabled(true)
	h.Motor().SetSpeed(255)
	p.render()

	on := toRGB565(colorLEDOn)
	if got := p.fb.pixelAt(20, 20); got != on {
		t.Fatalf("status LED pixel = %#04x, want %#04x", got, on)
	}
	motor := toRGB565(colorMotorOn)
	if got := p.fb.pixelAt(gaugeX+gaugeWidth-1, 20); got != motor {
		t.Fatalf("gauge end pixel = %#04x, want %#04x", got, motor)
	}
}

func TestConsoleScrollsPastBottom(t *testing.T) {
	c := newHostConsole(panelWidth, panelHeight-consoleTop)
	for i := 0; i < 40; i++ {
		if _, err := c.Write([]byte("heartbeat line\n")); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	lit := 0
	for y := 0; y < panelHeight-consoleTop; y++ {
		for x := 0; x < panelWidth; x++ {
			if c.fb.pixelAt(x, y) != 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("console framebuffer is blank after writing")
	}
}

type fakeApp struct {
	stop    chan struct{}
	once    sync.Once
	started atomic.Bool
}

func (a *fakeApp) Run() {
	a.started.Store(true)
	<-a.stop
}

func (a *fakeApp) Stop() { a.once.Do(func() { close(a.stop) }) }

func TestRunHeadlessStopsAtTickLimit(t *testing.T) {
	cfg := DefaultHostConfig()
	cfg.Out = &syncBuffer{}
	cfg.Speed = 100
	cfg.Ticks = 10

	app := &fakeApp{stop: make(chan struct{})}
	err := RunHeadless(context.Background(), func(h HAL) (App, error) {
		if err := h.Timer().Start(func() {}); err != nil {
			return nil, err
		}
		return app, nil
	}, cfg)
	if err != nil {
		t.Fatalf("RunHeadless() error = %v", err)
	}
	if !app.started.Load() {
		t.Fatal("app never ran")
	}
}

func TestRunHeadlessContextCancel(t *testing.T) {
	cfg := DefaultHostConfig()
	cfg.Out = &syncBuffer{}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	app := &fakeApp{stop: make(chan struct{})}
	err := RunHeadless(ctx, func(HAL) (App, error) { return app, nil }, cfg)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("RunHeadless() error = %v, want %v", err, context.DeadlineExceeded)
	}
}

func TestRGB565Extremes(t *testing.T) {
	for _, c := range []struct{ R, G, B uint8 }{{0, 0, 0}, {255, 255, 255}, {255, 0, 0}, {0, 255, 0}} {
		in := color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
		if got := fromRGB565(toRGB565(in)); got != in {
			t.Fatalf("fromRGB565(toRGB565(%v)) = %v", in, got)
		}
	}
}
