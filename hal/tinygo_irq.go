//go:build tinygo && rp2040

package hal

import (
	"device/arm"
	"runtime/interrupt"
)

type tinyGoIRQ struct{}

func (tinyGoIRQ) Disable() uintptr {
	return uintptr(interrupt.Disable())
}

func (tinyGoIRQ) Restore(state uintptr) {
	interrupt.Restore(interrupt.State(state))
}

// wfeIdler sleeps until an event. Exception entry sets the event register,
// so an interrupt taken after the executor's last check still ends the wait.
type wfeIdler struct{}

func (wfeIdler) WaitForInterrupt() {
	arm.Asm("wfe")
}
