//go:build !tinygo

package hal

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunHeadless runs the firmware against the simulated board without opening
// a window. It returns after cfg.Ticks overflows, when ctx is done, or when
// the firmware stops on its own.
func RunHeadless(ctx context.Context, newApp func(HAL) (App, error), cfg HostConfig) error {
	h, err := newHostHAL(cfg)
	if err != nil {
		return err
	}
	defer h.close()

	app, err := newApp(h)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		defer cancel()
		app.Run()
		return nil
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-h.timer.Done():
		}
		app.Stop()
		h.close()
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
