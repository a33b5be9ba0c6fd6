// Package breathe ramps a PWM output up and down in a triangle wave.
package breathe

import (
	"errors"

	"glimmer/hal"
	"glimmer/kernel"
)

// Period is the number of steps in one breath: 0..255 then 254..1.
const Period = 510

// DefaultStep is the time each duty level is held.
const DefaultStep kernel.Millis = 10

var ErrStep = errors.New("breathe: step must be positive")

// Level returns the duty for step i of the wave.
func Level(i int) uint8 {
	s := i % Period
	if s <= 255 {
		return uint8(s)
	}
	return uint8(Period - s)
}

// Breather drives a PWM output forever.
type Breather struct {
	rt      *kernel.Runtime
	out     hal.PWM
	step    kernel.Millis
	i       int
	waiting bool
	delay   kernel.Delay
}

func New(rt *kernel.Runtime, out hal.PWM, step kernel.Millis) (*Breather, error) {
	if step == 0 {
		return nil, ErrStep
	}
	return &Breather{rt: rt, out: out, step: step}, nil
}

func (b *Breather) Poll(cx *kernel.Context) (struct{}, bool) {
	for {
		if b.waiting {
			if _, ok := b.delay.Poll(cx); !ok {
				return struct{}{}, false
			}
			b.waiting = false
		}
		b.out.Set(Level(b.i))
		b.i = (b.i + 1) % Period
		b.delay = b.rt.Delay(b.step)
		b.waiting = true
	}
}
