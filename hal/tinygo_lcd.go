//go:build tinygo && rp2040

package hal

import (
	"machine"

	"tinygo.org/x/drivers/hd44780"
)

const (
	lcdCols = 16
	lcdRows = 2
)

// lcdDisplay is an HD44780 16x2 character LCD in 4-bit mode.
type lcdDisplay struct {
	dev hd44780.Device
	buf [lcdCols]byte
}

func newLCDDisplay(data [4]machine.Pin, en, rs, rw machine.Pin) (*lcdDisplay, error) {
	dev, err := hd44780.NewGPIO4Bit(data[:], en, rs, rw)
	if err != nil {
		return nil, err
	}
	if err := dev.Configure(hd44780.Config{Width: lcdCols, Height: lcdRows}); err != nil {
		return nil, err
	}
	dev.ClearDisplay()
	return &lcdDisplay{dev: dev}, nil
}

func (d *lcdDisplay) Size() (cols, rows int) { return lcdCols, lcdRows }

func (d *lcdDisplay) SetCursor(col, row int) {
	d.dev.SetCursor(uint8(Clamp(col, 0, lcdCols-1)), uint8(Clamp(row, 0, lcdRows-1)))
}

func (d *lcdDisplay) Print(s string) {
	n := copy(d.buf[:], s)
	d.PrintBytes(d.buf[:n])
}

func (d *lcdDisplay) PrintBytes(b []byte) {
	_, _ = d.dev.Write(b)
	_ = d.dev.Display()
}
