//go:build tinygo && rp2040

package main

import (
	"glimmer/app"
	"glimmer/hal"
	"glimmer/kernel"
)

func main() {
	h, err := hal.New()
	if err != nil {
		kernel.Fault(kernel.FaultInfo{Where: "hal", Value: err})
	}
	a, err := app.New(h, app.DefaultConfig())
	if err != nil {
		kernel.Fault(kernel.FaultInfo{Where: "app", Value: err})
	}
	a.Run()
}
