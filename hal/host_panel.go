//go:build !tinygo

package hal

import (
	"fmt"
	"image/color"
	"sync"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

const (
	panelWidth    = 320
	panelHeight   = 240
	consoleTop    = 120
	lcdX, lcdY    = 16, 56
	lcdCharWidth  = 8
	lcdLineHeight = 12
	gaugeX        = 96
	gaugeWidth    = 200
)

var (
	colorBackground = color.RGBA{R: 16, G: 16, B: 24, A: 255}
	colorLEDOff     = color.RGBA{R: 48, G: 8, B: 8, A: 255}
	colorLEDOn      = color.RGBA{R: 255, G: 32, B: 32, A: 255}
	colorLCD        = color.RGBA{R: 72, G: 136, B: 72, A: 255}
	colorLCDText    = color.RGBA{R: 8, G: 24, B: 8, A: 255}
	colorGauge      = color.RGBA{R: 40, G: 40, B: 48, A: 255}
	colorMotorOn    = color.RGBA{R: 64, G: 128, B: 255, A: 255}
	colorMotorOff   = color.RGBA{R: 96, G: 96, B: 96, A: 255}
	colorLabel      = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

var panelFont = &proggy.TinySZ8pt7b

// hostConsole mirrors log lines onto a tinyterm terminal.
type hostConsole struct {
	mu   sync.Mutex
	fb   *hostFramebuffer
	term *tinyterm.Terminal
}

func newHostConsole(width, height int) *hostConsole {
	fb := newHostFramebuffer(width, height)
	term := tinyterm.NewTerminal(fb)
	term.Configure(&tinyterm.Config{
		Font:              panelFont,
		FontHeight:        10,
		FontOffset:        6,
		UseSoftwareScroll: true,
	})
	return &hostConsole{fb: fb, term: term}
}

func (c *hostConsole) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.term.Write(p)
}

// panel draws the simulated board state into a framebuffer.
type panel struct {
	h       *hostHAL
	fb      *hostFramebuffer
	console *hostConsole
}

func newPanel(h *hostHAL) *panel {
	p := &panel{
		h:       h,
		fb:      newHostFramebuffer(panelWidth, panelHeight),
		console: newHostConsole(panelWidth, panelHeight-consoleTop),
	}
	h.logger.setMirror(p.console)
	return p
}

func (p *panel) render() {
	fb := p.fb
	fb.ClearRGB(colorBackground.R, colorBackground.G, colorBackground.B)

	led := colorLEDOff
	if p.h.status.isOn() {
		led = colorLEDOn
	}
	_ = fb.FillRectangle(16, 16, 24, 24, led)

	lvl := p.h.pulse.level()
	_ = fb.FillRectangle(56, 16, 24, 24, color.RGBA{G: lvl, B: lvl / 4, A: 255})

	m := p.h.motor.state()
	_ = fb.FillRectangle(gaugeX, 16, gaugeWidth, 10, colorGauge)
	bar := colorMotorOff
	if m.Enabled {
		bar = colorMotorOn
	}
	_ = fb.FillRectangle(gaugeX, 16, int16(Scale(m.Speed, uint8(255), uint16(gaugeWidth))), 10, bar)
	label := m.Dir.String()
	if hz, on := p.h.tone.state(); on {
		label += fmt.Sprintf("  tone %d Hz", hz)
	}
	tinyfont.WriteLine(fb, panelFont, gaugeX, 40, label, colorLabel)

	cols, rows := p.h.lcd.Size()
	_ = fb.FillRectangle(lcdX-4, lcdY-4, int16(cols*lcdCharWidth+8), int16(rows*lcdLineHeight+8), colorLCD)
	for row := 0; row < rows; row++ {
		line := p.h.lcd.line(row)
		for col := 0; col < len(line); col++ {
			x := int16(lcdX + col*lcdCharWidth)
			y := int16(lcdY + (row+1)*lcdLineHeight - 3)
			tinyfont.DrawChar(fb, panelFont, x, y, rune(line[col]), colorLCDText)
		}
	}

	p.console.mu.Lock()
	fb.blit(p.console.fb, 0, consoleTop)
	p.console.mu.Unlock()
}
