package kernel

import (
	"errors"
	"fmt"
)

// fractShift keeps the sub-millisecond accumulator in a byte. For whole-MHz
// clocks the remainder is a multiple of 8 for the common dividers, so nothing
// is lost.
const fractShift = 3

const fractMax = uint8(1000 >> fractShift)

var (
	ErrClockCPU     = errors.New("cpu frequency must be a whole number of MHz, at least 1 MHz")
	ErrClockDivider = errors.New("prescaler and top must be non-zero")
	ErrClockPeriod  = errors.New("overflow period out of range")
)

// ClockConfig describes the hardware timer that drives the millisecond
// clock: the timer counts CPUHz/Prescaler and overflows every Top counts.
type ClockConfig struct {
	CPUHz     uint32
	Prescaler uint32
	Top       uint32
}

// DefaultClockConfig is a 16 MHz part with a /64 prescaler on an 8-bit
// counter: one overflow every 1024 µs.
func DefaultClockConfig() ClockConfig {
	return ClockConfig{CPUHz: 16_000_000, Prescaler: 64, Top: 256}
}

// ClockRates are the per-overflow increments derived from a ClockConfig.
type ClockRates struct {
	PeriodMicros uint32
	MillisInc    uint32
	FractInc     uint8
	FractMax     uint8
}

// Validate reports whether the configuration yields a usable tick.
func (c ClockConfig) Validate() error {
	_, err := c.Rates()
	return err
}

// Rates computes the clock increments for c.
func (c ClockConfig) Rates() (ClockRates, error) {
	if c.CPUHz < 1_000_000 || c.CPUHz%1_000_000 != 0 {
		return ClockRates{}, fmt.Errorf("clock config: cpu %d Hz: %w", c.CPUHz, ErrClockCPU)
	}
	if c.Prescaler == 0 || c.Top == 0 {
		return ClockRates{}, fmt.Errorf("clock config: prescaler=%d top=%d: %w", c.Prescaler, c.Top, ErrClockDivider)
	}
	cyclesPerMicro := uint64(c.CPUHz / 1_000_000)
	period := uint64(c.Prescaler) * uint64(c.Top) / cyclesPerMicro
	if period == 0 || period > 0xFFFFFFFF {
		return ClockRates{}, fmt.Errorf("clock config: period %d µs: %w", period, ErrClockPeriod)
	}
	return ClockRates{
		PeriodMicros: uint32(period),
		MillisInc:    uint32(period / 1000),
		FractInc:     uint8((period % 1000) >> fractShift),
		FractMax:     fractMax,
	}, nil
}

// Clock is the interrupt-owned millisecond counter.
//
// It is plain data: Runtime advances it only from Tick and reads it only
// inside its critical section.
type Clock struct {
	rates     ClockRates
	millis    Instant
	fract     uint8
	overflows uint32
}

func newClock(rates ClockRates) Clock {
	return Clock{rates: rates}
}

// advance applies one timer overflow and returns the new time.
func (c *Clock) advance() Instant {
	c.millis += Instant(c.rates.MillisInc)
	c.fract += c.rates.FractInc
	if c.fract >= c.rates.FractMax {
		c.fract -= c.rates.FractMax
		c.millis++
	}
	c.overflows++
	return c.millis
}

func (c *Clock) reset(at Instant) {
	c.millis = at
	c.fract = 0
}
