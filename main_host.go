//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"glimmer/app"
	"glimmer/hal"
	"glimmer/internal/buildinfo"
	"glimmer/kernel"
)

func main() {
	cfg := hal.DefaultHostConfig()
	acfg := app.DefaultConfig()
	var headless, version bool
	var level string
	var tone uint
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N timer overflows (0 = run forever).")
	flag.Float64Var(&cfg.Speed, "speed", cfg.Speed, "Simulated time multiplier.")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Log every output pin and display change.")
	flag.StringVar(&level, "log-level", "info", "Log level: trace, debug, info, warning, error, off.")
	flag.StringVar(&acfg.Morse, "morse", "", "Text to blink in Morse (default SOS).")
	flag.StringVar(&acfg.Line1, "line1", acfg.Line1, "Display line 1.")
	flag.StringVar(&acfg.Line2, "line2", acfg.Line2, "Display line 2.")
	flag.UintVar(&tone, "tone", uint(acfg.ToneHz), "Beeper frequency in Hz.")
	flag.BoolVar(&version, "version", false, "Print the build identifier and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	l, err := app.ParseLevel(level)
	if err != nil {
		fail(err)
	}
	acfg.LogLevel = l
	if tone > 0xFFFF {
		fail(fmt.Errorf("tone %d Hz: %w", tone, hal.ErrToneRange))
	}
	acfg.ToneHz = uint16(tone)

	// A fault ends the goroutine running the firmware; the runner then
	// returns and the exit status reports it.
	kernel.SetFaultHalt(runtime.Goexit)

	newApp := func(h hal.HAL) (hal.App, error) {
		a, err := app.New(h, acfg)
		if err != nil {
			return nil, err
		}
		return a, nil
	}

	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = hal.RunHeadless(ctx, newApp, cfg)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	} else {
		err = hal.RunWindow(newApp, cfg)
	}
	if err != nil {
		fail(err)
	}
	if kernel.InFaultMode() {
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
