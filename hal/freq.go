package hal

import (
	"errors"
	"fmt"
)

// ErrToneRange reports a frequency outside what the divider table covers.
var ErrToneRange = errors.New("tone frequency out of range")

const (
	MinToneHz = 40
	MaxToneHz = 35000
)

// Divider is a timer setting producing a square wave: the counter runs at
// the base clock divided by Prescaler and toggles the output every
// Compare+1 counts.
type Divider struct {
	Prescaler uint16
	Compare   uint32
}

type toneBand struct {
	maxHz     uint16
	prescaler uint16
	numerator uint32
}

// Bands for a 16 MHz timer. numerator is the prescaled counter rate.
var toneBands = [...]toneBand{
	{maxHz: 199, prescaler: 1024, numerator: 15625},
	{maxHz: 999, prescaler: 256, numerator: 62500},
	{maxHz: 4799, prescaler: 64, numerator: 250000},
	{maxHz: MaxToneHz, prescaler: 8, numerator: 2000000},
}

// ToneDivider picks the prescaler and compare value for hz.
func ToneDivider(hz uint16) (Divider, error) {
	if hz < MinToneHz || hz > MaxToneHz {
		return Divider{}, fmt.Errorf("tone %d Hz (want %d..%d): %w", hz, MinToneHz, MaxToneHz, ErrToneRange)
	}
	for _, b := range toneBands {
		if hz <= b.maxHz {
			return Divider{Prescaler: b.prescaler, Compare: b.numerator / (2 * uint32(hz))}, nil
		}
	}
	return Divider{}, ErrToneRange
}

// Hz returns the output frequency the divider actually produces.
func (d Divider) Hz() uint32 {
	for _, b := range toneBands {
		if b.prescaler == d.Prescaler && d.Compare > 0 {
			return b.numerator / (2 * d.Compare)
		}
	}
	return 0
}
