// Package morse blinks a digital LED through a repeating on/off pattern
// measured in Morse units.
package morse

import (
	"errors"
	"fmt"
	"strings"

	"glimmer/hal"
	"glimmer/kernel"

	"github.com/joeycumines/logiface"
)

// MaxElements bounds a Pattern.
const MaxElements = 64

// DefaultUnit is the length of one dot.
const DefaultUnit kernel.Millis = 250

var (
	ErrEmpty         = errors.New("morse: empty pattern")
	ErrTooLong       = errors.New("morse: pattern too long")
	ErrElement       = errors.New("morse: element on and off must be at least one unit")
	ErrUnit          = errors.New("morse: unit must be positive")
	ErrUnknownSymbol = errors.New("morse: no code for symbol")
)

// Element is one mark followed by one space, both in units.
type Element struct {
	On  uint8
	Off uint8
}

// Pattern is played in order and then repeated.
type Pattern []Element

// SOS is three short, three long, three short marks, each followed by one
// unit of darkness, then a six-unit pause before the next repetition.
var SOS = Pattern{
	{1, 1}, {1, 1}, {1, 1},
	{3, 1}, {3, 1}, {3, 1},
	{1, 1}, {1, 1}, {1, 1 + 6},
}

// Validate reports whether p can be played.
func (p Pattern) Validate() error {
	if len(p) == 0 {
		return ErrEmpty
	}
	if len(p) > MaxElements {
		return fmt.Errorf("%w: %d elements, max %d", ErrTooLong, len(p), MaxElements)
	}
	for i, e := range p {
		if e.On == 0 || e.Off == 0 {
			return fmt.Errorf("%w: element %d is %+v", ErrElement, i, e)
		}
	}
	return nil
}

// Units returns the length of one repetition.
func (p Pattern) Units() int {
	n := 0
	for _, e := range p {
		n += int(e.On) + int(e.Off)
	}
	return n
}

var codes = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".", 'F': "..-.",
	'G': "--.", 'H': "....", 'I': "..", 'J': ".---", 'K': "-.-", 'L': ".-..",
	'M': "--", 'N': "-.", 'O': "---", 'P': ".--.", 'Q': "--.-", 'R': ".-.",
	'S': "...", 'T': "-", 'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-",
	'Y': "-.--", 'Z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
}

// Encode converts text to a pattern with standard spacing: one unit between
// marks, three between letters and seven between words and before the
// pattern repeats.
func Encode(text string) (Pattern, error) {
	var p Pattern
	for _, r := range strings.ToUpper(text) {
		if r == ' ' {
			if len(p) > 0 {
				p[len(p)-1].Off = 7
			}
			continue
		}
		code, ok := codes[r]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSymbol, r)
		}
		if len(p) > 0 && p[len(p)-1].Off < 3 {
			p[len(p)-1].Off = 3
		}
		for _, c := range code {
			on := uint8(1)
			if c == '-' {
				on = 3
			}
			p = append(p, Element{On: on, Off: 1})
		}
	}
	if len(p) > 0 {
		p[len(p)-1].Off = 7
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Phase is the blinker's position within an element.
type Phase uint8

const (
	PhaseMark Phase = iota
	PhaseSpace
)

func (p Phase) String() string {
	switch p {
	case PhaseMark:
		return "mark"
	case PhaseSpace:
		return "space"
	default:
		return "unknown"
	}
}

// Blinker plays a pattern on an LED forever.
type Blinker struct {
	rt      *kernel.Runtime
	led     hal.LED
	pattern Pattern
	unit    kernel.Millis
	log     *logiface.Logger[logiface.Event]

	i       int
	phase   Phase
	waiting bool
	delay   kernel.Delay
	reps    uint64
}

// New returns a blinker for pattern with the given unit length.
func New(rt *kernel.Runtime, led hal.LED, pattern Pattern, unit kernel.Millis, log *logiface.Logger[logiface.Event]) (*Blinker, error) {
	if unit == 0 {
		return nil, ErrUnit
	}
	if err := pattern.Validate(); err != nil {
		return nil, err
	}
	return &Blinker{rt: rt, led: led, pattern: pattern, unit: unit, log: log}, nil
}

// Phase returns the current phase.
func (b *Blinker) Phase() Phase { return b.phase }

// Repetitions returns how many times the whole pattern has played.
func (b *Blinker) Repetitions() uint64 { return b.reps }

func (b *Blinker) Poll(cx *kernel.Context) (struct{}, bool) {
	for {
		if b.waiting {
			if _, ok := b.delay.Poll(cx); !ok {
				return struct{}{}, false
			}
			b.waiting = false
			b.next()
		}
		e := b.pattern[b.i]
		if b.phase == PhaseMark {
			b.led.High()
			b.wait(e.On)
		} else {
			b.led.Low()
			b.wait(e.Off)
		}
	}
}

func (b *Blinker) wait(units uint8) {
	b.delay = b.rt.Delay(kernel.Millis(units) * b.unit)
	b.waiting = true
}

func (b *Blinker) next() {
	if b.phase == PhaseMark {
		b.phase = PhaseSpace
		return
	}
	b.phase = PhaseMark
	b.i++
	if b.i == len(b.pattern) {
		b.i = 0
		b.reps++
		b.log.Debug().Uint64("reps", b.reps).Log("morse: pattern done")
	}
}
