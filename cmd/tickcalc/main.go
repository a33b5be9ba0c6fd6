//go:build !tinygo

// Command tickcalc prints the millisecond clock constants for a timer
// configuration.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"glimmer/kernel"
)

func main() {
	def := kernel.DefaultClockConfig()
	var cpuHz, prescaler, top uint
	flag.UintVar(&cpuHz, "cpu-hz", uint(def.CPUHz), "CPU clock (Hz), a whole number of MHz.")
	flag.UintVar(&prescaler, "prescaler", uint(def.Prescaler), "Timer prescaler.")
	flag.UintVar(&top, "top", uint(def.Top), "Timer counts per overflow.")
	flag.Parse()

	cfg := kernel.ClockConfig{CPUHz: uint32(cpuHz), Prescaler: uint32(prescaler), Top: uint32(top)}
	if err := run(os.Stdout, cfg); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(w io.Writer, cfg kernel.ClockConfig) error {
	r, err := cfg.Rates()
	if err != nil {
		return err
	}
	drift := float64(r.PeriodMicros) - 1000*float64(r.MillisInc) - float64(uint32(r.FractInc)<<3)
	_, err = fmt.Fprintf(w,
		"period_us=%d\nmillis_inc=%d\nfract_inc=%d\nfract_max=%d\nlost_us_per_overflow=%.0f\n",
		r.PeriodMicros, r.MillisInc, r.FractInc, r.FractMax, drift)
	return err
}
