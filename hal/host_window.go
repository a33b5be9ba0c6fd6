//go:build !tinygo && cgo

package hal

import (
	"errors"
	"image"

	"glimmer/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/sync/errgroup"
)

// RunWindow runs the firmware against the simulated board and shows it in a
// desktop window. Space is the button. It blocks until the window closes or
// the tick limit is reached.
func RunWindow(newApp func(HAL) (App, error), cfg HostConfig) error {
	h, err := newHostHAL(cfg)
	if err != nil {
		return err
	}
	defer h.close()

	p := newPanel(h)
	if sink, err := newEbitenTone(); err == nil {
		h.tone.setSink(sink)
		defer sink.close()
	} else {
		h.logger.WriteLineString("tone: audio unavailable: " + err.Error())
	}

	app, err := newApp(h)
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.Go(func() error {
		app.Run()
		return nil
	})

	game := &hostGame{h: h, panel: p}
	ebiten.SetWindowTitle("glimmer (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(panelWidth*2, panelHeight*2)
	ebiten.SetTPS(60)
	runErr := ebiten.RunGame(game)
	if errors.Is(runErr, ebiten.Termination) {
		runErr = nil
	}

	app.Stop()
	h.close()
	if err := g.Wait(); err != nil {
		return err
	}
	return runErr
}

type hostGame struct {
	h       *hostHAL
	panel   *panel
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
}

func (g *hostGame) Update() error {
	select {
	case <-g.h.timer.Done():
		return ebiten.Termination
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.h.button.press()
	}
	if inpututil.IsKeyJustReleased(ebiten.KeySpace) {
		g.h.button.release()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	g.panel.render()
	fb := g.panel.fb
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGB565(g.scratch)

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		c := fromRGB565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = c.R
		dst[j+1] = c.G
		dst[j+2] = c.B
		dst[j+3] = c.A
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return panelWidth, panelHeight
}
