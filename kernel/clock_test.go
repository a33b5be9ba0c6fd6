package kernel

import (
	"errors"
	"testing"
)

func TestDefaultClockRates(t *testing.T) {
	r, err := DefaultClockConfig().Rates()
	if err != nil {
		t.Fatalf("Rates() error = %v", err)
	}
	want := ClockRates{PeriodMicros: 1024, MillisInc: 1, FractInc: 3, FractMax: 125}
	if r != want {
		t.Fatalf("Rates() = %+v, want %+v", r, want)
	}
}

func TestClockRatesRP2040Slice(t *testing.T) {
	r, err := ClockConfig{CPUHz: 125_000_000, Prescaler: 125, Top: 1024}.Rates()
	if err != nil {
		t.Fatalf("Rates() error = %v", err)
	}
	if r.PeriodMicros != 1024 || r.MillisInc != 1 || r.FractInc != 3 {
		t.Fatalf("Rates() = %+v, want period 1024 inc 1 fract 3", r)
	}
}

func TestClockConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  ClockConfig
		want error
	}{
		{"zero cpu", ClockConfig{CPUHz: 0, Prescaler: 64, Top: 256}, ErrClockCPU},
		{"fractional mhz", ClockConfig{CPUHz: 1_500_000, Prescaler: 64, Top: 256}, ErrClockCPU},
		{"zero prescaler", ClockConfig{CPUHz: 16_000_000, Prescaler: 0, Top: 256}, ErrClockDivider},
		{"zero top", ClockConfig{CPUHz: 16_000_000, Prescaler: 64, Top: 0}, ErrClockDivider},
		{"sub-microsecond", ClockConfig{CPUHz: 16_000_000, Prescaler: 1, Top: 8}, ErrClockPeriod},
		{"ok", DefaultClockConfig(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestClockFractionCarry(t *testing.T) {
	rt := newTestRuntime(t)
	for i := 0; i < 125; i++ {
		rt.Tick()
	}
	if got := rt.Now(); got != 128 {
		t.Fatalf("Now() after 125 ticks = %d, want 128", got)
	}
	for i := 0; i < 875; i++ {
		rt.Tick()
	}
	if got := rt.Now(); got != 1024 {
		t.Fatalf("Now() after 1000 ticks = %d, want 1024", got)
	}
	if got := rt.Stats().Overflows; got != 1000 {
		t.Fatalf("Stats().Overflows = %d, want 1000", got)
	}
}

func TestClockMonotonicAcrossWrap(t *testing.T) {
	rt := newTestRuntime(t)
	rt.resetClock(0xFFFF_FFF0)
	prev := rt.Now()
	for i := 0; i < 200; i++ {
		rt.Tick()
		now := rt.Now()
		if d := now.Since(prev); d < 1 || d > 2 {
			t.Fatalf("tick %d: Now() moved %d ms (%d -> %d)", i, d, prev, now)
		}
		if !Reached(now, prev) {
			t.Fatalf("tick %d: Reached(%d, %d) = false", i, now, prev)
		}
		prev = now
	}
}

func TestReachedWraps(t *testing.T) {
	if !Reached(5, 0xFFFF_FFFB) {
		t.Fatal("Reached(5, 0xFFFFFFFB) = false, want true")
	}
	if Reached(0xFFFF_FFFB, 5) {
		t.Fatal("Reached(0xFFFFFFFB, 5) = true, want false")
	}
	if !Reached(7, 7) {
		t.Fatal("Reached(7, 7) = false, want true")
	}
}
