//go:build tinygo && rp2040

package hal

import (
	"device/rp"
	"machine"
	"runtime/interrupt"
)

// The overflow interrupt is the wrap of PWM slice 6, whose pins are not
// routed to the PWM block. 125 MHz / 125 / 1024 gives one wrap per 1024 µs.
const timerSlice = 6

var timerConfig = TimerConfig{CPUHz: 125_000_000, Prescaler: 125, Top: 1024}

var timerISR func()

type pwmTimer struct {
	started bool
}

func newPWMTimer() *pwmTimer { return &pwmTimer{} }

func (t *pwmTimer) Config() TimerConfig { return timerConfig }

func (t *pwmTimer) Start(isr func()) error {
	if t.started {
		return ErrTimerStarted
	}
	period := uint64(timerConfig.Prescaler) * uint64(timerConfig.Top) * 1e9 / uint64(timerConfig.CPUHz)
	if err := machine.PWM6.Configure(machine.PWMConfig{Period: period}); err != nil {
		return err
	}
	timerISR = isr
	t.started = true

	rp.PWM.INTR.Set(1 << timerSlice)
	rp.PWM.INTE.SetBits(1 << timerSlice)
	irq := interrupt.New(rp.IRQ_PWM_IRQ_WRAP, handleTimerWrap)
	irq.Enable()
	machine.PWM6.Enable(true)
	return nil
}

func handleTimerWrap(interrupt.Interrupt) {
	rp.PWM.INTR.Set(1 << timerSlice)
	if timerISR != nil {
		timerISR()
	}
}
