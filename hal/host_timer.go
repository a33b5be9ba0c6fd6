//go:build !tinygo

package hal

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// hostTimer plays the overflow interrupt from a ticker goroutine. After each
// handler call it pokes the idler, as exception entry would wake a WFE.
type hostTimer struct {
	cfg    TimerConfig
	period time.Duration
	limit  uint64
	idle   *hostIdler

	started  atomic.Bool
	count    atomic.Uint64
	quit     chan struct{}
	quitOnce sync.Once
	done     chan struct{}
}

func newHostTimer(cfg TimerConfig, speed float64, limit uint64, idle *hostIdler) (*hostTimer, error) {
	if cfg.CPUHz == 0 || cfg.Prescaler == 0 || cfg.Top == 0 {
		return nil, fmt.Errorf("host timer: cpu=%d prescaler=%d top=%d: %w", cfg.CPUHz, cfg.Prescaler, cfg.Top, ErrTimerConfig)
	}
	ns := float64(cfg.Prescaler) * float64(cfg.Top) * 1e9 / float64(cfg.CPUHz) / speed
	period := time.Duration(ns)
	if period <= 0 {
		period = time.Nanosecond
	}
	return &hostTimer{
		cfg:    cfg,
		period: period,
		limit:  limit,
		idle:   idle,
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

func (t *hostTimer) Config() TimerConfig { return t.cfg }

func (t *hostTimer) Start(isr func()) error {
	if !t.started.CompareAndSwap(false, true) {
		return ErrTimerStarted
	}
	go t.run(isr)
	return nil
}

func (t *hostTimer) run(isr func()) {
	defer close(t.done)
	tk := time.NewTicker(t.period)
	defer tk.Stop()

	// Tickers drop ticks under load; catch up so simulated time keeps pace.
	start := time.Now()
	for {
		select {
		case <-t.quit:
			return
		case now := <-tk.C:
			due := uint64(now.Sub(start) / t.period)
			for t.count.Load() < due {
				isr()
				n := t.count.Add(1)
				t.idle.notify()
				if t.limit > 0 && n >= t.limit {
					return
				}
			}
		}
	}
}

// Done is closed once the tick limit is reached or the timer is stopped.
func (t *hostTimer) Done() <-chan struct{} { return t.done }

// Count returns the number of overflows delivered.
func (t *hostTimer) Count() uint64 { return t.count.Load() }

func (t *hostTimer) stop() {
	t.quitOnce.Do(func() { close(t.quit) })
}

// hostIdler is the host stand-in for WFE: a one-slot event latch.
type hostIdler struct {
	ev        chan struct{}
	closed    chan struct{}
	closeOnce sync.Once
}

func newHostIdler() *hostIdler {
	return &hostIdler{ev: make(chan struct{}, 1), closed: make(chan struct{})}
}

func (i *hostIdler) WaitForInterrupt() {
	select {
	case <-i.ev:
	case <-i.closed:
	}
}

func (i *hostIdler) notify() {
	select {
	case i.ev <- struct{}{}:
	default:
	}
}

func (i *hostIdler) close() {
	i.closeOnce.Do(func() { close(i.closed) })
}
