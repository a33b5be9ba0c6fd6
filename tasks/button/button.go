// Package button turns edge interrupts from a push button into debounced
// press events.
package button

import (
	"sync/atomic"

	"glimmer/hal"
	"glimmer/kernel"

	"github.com/joeycumines/logiface"
)

// DefaultDebounce is how long the level must settle after an edge.
const DefaultDebounce kernel.Millis = 50

// Watcher is the task side of the button. With no edges pending it
// suspends without a timer and is woken only by the edge interrupt.
type Watcher struct {
	rt       *kernel.Runtime
	btn      hal.Button
	debounce kernel.Millis
	handlers []func()
	log      *logiface.Logger[logiface.Event]

	edges   atomic.Uint32
	seen    uint32
	presses uint32
	waiting bool
	delay   kernel.Delay
}

// New installs the edge handler on btn. handlers run in task context, in
// order, on every debounced press.
func New(rt *kernel.Runtime, btn hal.Button, debounce kernel.Millis, log *logiface.Logger[logiface.Event], handlers ...func()) *Watcher {
	w := &Watcher{rt: rt, btn: btn, debounce: debounce, handlers: handlers, log: log}
	btn.OnEdge(w.edge)
	return w
}

// edge runs in interrupt context.
func (w *Watcher) edge() {
	w.edges.Add(1)
	w.rt.Wake()
}

// Presses returns the number of debounced presses seen.
func (w *Watcher) Presses() uint32 { return w.presses }

func (w *Watcher) Poll(cx *kernel.Context) (struct{}, bool) {
	for {
		if w.waiting {
			if _, ok := w.delay.Poll(cx); !ok {
				return struct{}{}, false
			}
			w.waiting = false
			// Edges that arrived while settling are bounce.
			w.seen = w.edges.Load()
			if w.btn.Pressed() {
				w.presses++
				w.log.Debug().Uint64("presses", uint64(w.presses)).Log("button: pressed")
				for _, h := range w.handlers {
					h()
				}
			}
		}
		e := w.edges.Load()
		if e == w.seen {
			return struct{}{}, false
		}
		w.seen = e
		w.delay = w.rt.Delay(w.debounce)
		w.waiting = true
	}
}
