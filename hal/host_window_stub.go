//go:build !tinygo && !cgo

package hal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

// RunWindow needs cgo for the ebiten window. Without it the board runs
// headless until the tick limit or an interrupt.
func RunWindow(newApp func(HAL) (App, error), cfg HostConfig) error {
	fmt.Fprintln(os.Stderr, "window: built without cgo, running headless")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := RunHeadless(ctx, newApp, cfg)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
