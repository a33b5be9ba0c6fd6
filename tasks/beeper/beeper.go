// Package beeper plays queued bursts of beeps on a tone output.
package beeper

import (
	"glimmer/hal"
	"glimmer/kernel"

	"github.com/joeycumines/logiface"
)

const (
	DefaultHz        = 880
	DefaultOn        = kernel.Millis(80)
	DefaultOff       = kernel.Millis(40)
	MaxBeepsPerBurst = 16
)

type phase uint8

const (
	phaseIdle phase = iota
	phaseOn
	phaseOff
)

// Beeper is the tone task. Beep queues a burst without blocking.
type Beeper struct {
	rt   *kernel.Runtime
	tone hal.Tone
	on   kernel.Millis
	off  kernel.Millis
	log  *logiface.Logger[logiface.Event]

	queue   kernel.Mailbox[uint8]
	recv    kernel.MailboxRecv[uint8]
	phase   phase
	left    uint8
	delay   kernel.Delay
	dropped uint32
	played  uint32
}

// New validates hz against the tone divider table and programs the output.
func New(rt *kernel.Runtime, tone hal.Tone, hz uint16, log *logiface.Logger[logiface.Event]) (*Beeper, error) {
	if _, err := hal.ToneDivider(hz); err != nil {
		return nil, err
	}
	if err := tone.SetFrequency(hz); err != nil {
		return nil, err
	}
	tone.Off()
	b := &Beeper{rt: rt, tone: tone, on: DefaultOn, off: DefaultOff, log: log}
	b.recv = b.queue.Recv()
	return b, nil
}

// Beep queues n beeps. It reports false when the queue is full.
func (b *Beeper) Beep(n uint8) bool {
	n = hal.Clamp(n, 1, MaxBeepsPerBurst)
	if !b.queue.TrySend(n) {
		b.dropped++
		b.log.Warning().Uint64("dropped", uint64(b.dropped)).Log("beeper: queue full")
		return false
	}
	return true
}

// Played returns how many beeps have finished.
func (b *Beeper) Played() uint32 { return b.played }

func (b *Beeper) Poll(cx *kernel.Context) (struct{}, bool) {
	for {
		switch b.phase {
		case phaseIdle:
			n, ok := b.recv.Poll(cx)
			if !ok {
				return struct{}{}, false
			}
			b.left = n
			b.start()
		case phaseOn:
			if _, ok := b.delay.Poll(cx); !ok {
				return struct{}{}, false
			}
			b.tone.Off()
			b.delay = b.rt.Delay(b.off)
			b.phase = phaseOff
		case phaseOff:
			if _, ok := b.delay.Poll(cx); !ok {
				return struct{}{}, false
			}
			b.played++
			b.left--
			if b.left > 0 {
				b.start()
			} else {
				b.phase = phaseIdle
			}
		}
	}
}

func (b *Beeper) start() {
	b.tone.On()
	b.delay = b.rt.Delay(b.on)
	b.phase = phaseOn
}
