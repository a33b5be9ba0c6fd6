// Package marquee scrolls text back and forth across a character display.
package marquee

import (
	"errors"

	"glimmer/hal"
	"glimmer/kernel"

	"github.com/joeycumines/logiface"
)

// DefaultInterval is the time between frames.
const DefaultInterval kernel.Millis = 500

var ErrInterval = errors.New("marquee: interval must be positive")

// Period returns how many frames text takes to bounce across width columns
// and back. Text that does not leave room to move has a period of one.
func Period(text string, width int) int {
	space := width - len(text)
	if space <= 0 {
		return 1
	}
	return 2 * space
}

// Offset is the leading blank count for frame step.
func Offset(text string, width, step int) int {
	space := width - len(text)
	if space <= 0 {
		return 0
	}
	s := step % (2 * space)
	if s < space {
		return s
	}
	return 2*space - s
}

// Frame renders step of the bounce into dst, whose length is the display
// width. Text at least as wide as dst is shown truncated and does not move.
func Frame(dst []byte, text string, step int) {
	for i := range dst {
		dst[i] = ' '
	}
	off := Offset(text, len(dst), step)
	copy(dst[off:], text)
}

// Task renders one bouncing line per display row.
type Task struct {
	rt       *kernel.Runtime
	disp     hal.Display
	lines    []string
	frames   [][]byte
	steps    []int
	interval kernel.Millis
	log      *logiface.Logger[logiface.Event]

	waiting bool
	delay   kernel.Delay
}

// New returns a task that scrolls lines[i] on display row i. Extra lines are
// ignored.
func New(rt *kernel.Runtime, disp hal.Display, interval kernel.Millis, log *logiface.Logger[logiface.Event], lines ...string) (*Task, error) {
	if interval == 0 {
		return nil, ErrInterval
	}
	cols, rows := disp.Size()
	if len(lines) > rows {
		lines = lines[:rows]
	}
	t := &Task{
		rt:       rt,
		disp:     disp,
		lines:    lines,
		frames:   make([][]byte, len(lines)),
		steps:    make([]int, len(lines)),
		interval: interval,
		log:      log,
	}
	for i, l := range lines {
		t.frames[i] = make([]byte, cols)
		if len(l) >= cols {
			log.Debug().Int("row", i).Str("text", l).Log("marquee: line is static")
		}
	}
	return t, nil
}

func (t *Task) Poll(cx *kernel.Context) (struct{}, bool) {
	for {
		if t.waiting {
			if _, ok := t.delay.Poll(cx); !ok {
				return struct{}{}, false
			}
			t.waiting = false
		}
		t.render()
		t.delay = t.rt.Delay(t.interval)
		t.waiting = true
	}
}

func (t *Task) render() {
	for row, text := range t.lines {
		Frame(t.frames[row], text, t.steps[row])
		t.steps[row] = (t.steps[row] + 1) % Period(text, len(t.frames[row]))
		t.disp.SetCursor(0, row)
		t.disp.PrintBytes(t.frames[row])
	}
}
