package app

import (
	"fmt"
	"strings"

	"glimmer/hal"
	"glimmer/kernel"

	"github.com/joeycumines/logiface"
)

func installFaultHandler(h hal.HAL, log *logiface.Logger[logiface.Event]) {
	kernel.SetFaultHandler(faultHandler(h, log))
}

// faultHandler reports the fault on the log and the display. The LEDs, motor
// and tone are not touched: with the executor halted they stay frozen in
// their last state.
func faultHandler(h hal.HAL, log *logiface.Logger[logiface.Event]) func(kernel.FaultInfo) {
	return func(info kernel.FaultInfo) {
		log.Err().Str("where", info.Where).Str("value", fmt.Sprint(info.Value)).Log("fault")
		if l := h.Logger(); l != nil {
			l.WriteLineString(fmt.Sprintf("fault: where=%s value=%v", info.Where, info.Value))
			for _, line := range strings.Split(string(info.Stack), "\n") {
				if line != "" {
					l.WriteLineString(line)
				}
			}
		}

		if d := h.Display(); d != nil {
			cols, rows := d.Size()
			d.SetCursor(0, 0)
			d.Print(pad("FAULT", cols))
			if rows > 1 {
				d.SetCursor(0, 1)
				d.Print(pad(info.Where, cols))
			}
		}
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
