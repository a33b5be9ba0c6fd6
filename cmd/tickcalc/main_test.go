//go:build !tinygo

package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"glimmer/kernel"
)

func TestRunDefault(t *testing.T) {
	var buf bytes.Buffer
	if err := run(&buf, kernel.DefaultClockConfig()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	want := "period_us=1024\nmillis_inc=1\nfract_inc=3\nfract_max=125\nlost_us_per_overflow=0\n"
	if got := buf.String(); got != want {
		t.Fatalf("run() output =\n%s\nwant\n%s", got, want)
	}
}

func TestRunRejects(t *testing.T) {
	var buf bytes.Buffer
	err := run(&buf, kernel.ClockConfig{CPUHz: 16_500_000, Prescaler: 64, Top: 256})
	if !errors.Is(err, kernel.ErrClockCPU) {
		t.Fatalf("run() error = %v, want %v", err, kernel.ErrClockCPU)
	}
	if strings.TrimSpace(buf.String()) != "" {
		t.Fatalf("run() wrote %q on error", buf.String())
	}
}
