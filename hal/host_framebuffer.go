//go:build !tinygo

package hal

import (
	"image/color"
	"sync"

	"tinygo.org/x/drivers"
)

// hostFramebuffer is an RGB565 canvas usable as a tinyterm display.
type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
	rot    drivers.Rotation
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) Size() (x, y int16) { return int16(f.width), int16(f.height) }
func (f *hostFramebuffer) Display() error     { return nil }
func (f *hostFramebuffer) SetScroll(int16)    {}

func (f *hostFramebuffer) SetRotation(r drivers.Rotation) error {
	f.rot = r
	return nil
}

func (f *hostFramebuffer) Rotation() drivers.Rotation { return f.rot }

func (f *hostFramebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || int(x) >= f.width || y < 0 || int(y) >= f.height {
		return
	}
	pixel := toRGB565(c)
	off := int(y)*f.stride + int(x)*2
	f.mu.Lock()
	f.buf[off] = byte(pixel)
	f.buf[off+1] = byte(pixel >> 8)
	f.mu.Unlock()
}

func (f *hostFramebuffer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0 := Clamp(int(x), 0, f.width)
	y0 := Clamp(int(y), 0, f.height)
	x1 := Clamp(int(x)+int(width), 0, f.width)
	y1 := Clamp(int(y)+int(height), 0, f.height)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := toRGB565(c)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	f.mu.Lock()
	defer f.mu.Unlock()
	for py := y0; py < y1; py++ {
		row := py * f.stride
		for px := x0; px < x1; px++ {
			f.buf[row+px*2] = lo
			f.buf[row+px*2+1] = hi
		}
	}
	return nil
}

// ScrollUp shifts the canvas up by lines and clears the exposed rows. tinyterm
// uses it in software scroll mode.
func (f *hostFramebuffer) ScrollUp(lines int16, bg color.RGBA) error {
	n := int(lines)
	if n <= 0 {
		return nil
	}
	if n >= f.height {
		return f.FillRectangle(0, 0, int16(f.width), int16(f.height), bg)
	}
	f.mu.Lock()
	copy(f.buf, f.buf[n*f.stride:])
	f.mu.Unlock()
	return f.FillRectangle(0, int16(f.height-n), int16(f.width), int16(n), bg)
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := toRGB565(color.RGBA{R: r, G: g, B: b})
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

// blit copies src into f with its top-left corner at (x, y).
func (f *hostFramebuffer) blit(src *hostFramebuffer, x, y int) {
	src.mu.Lock()
	defer src.mu.Unlock()
	f.mu.Lock()
	defer f.mu.Unlock()
	for sy := 0; sy < src.height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= f.height {
			continue
		}
		x0 := Clamp(x, 0, f.width)
		x1 := Clamp(x+src.width, 0, f.width)
		if x0 >= x1 {
			return
		}
		srow := sy*src.stride + (x0-x)*2
		copy(f.buf[dy*f.stride+x0*2:dy*f.stride+x1*2], src.buf[srow:srow+(x1-x0)*2])
	}
}

func (f *hostFramebuffer) snapshotRGB565(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}

// pixelAt returns the RGB565 value at (x, y).
func (f *hostFramebuffer) pixelAt(x, y int) uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	off := y*f.stride + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

// toRGB565 packs c into the framebuffer's pixel format.
func toRGB565(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

// fromRGB565 expands p back to full range for the window.
func fromRGB565(p uint16) color.RGBA {
	return color.RGBA{
		R: Scale(uint8(p>>11&0x1F), 31, uint8(255)),
		G: Scale(uint8(p>>5&0x3F), 63, uint8(255)),
		B: Scale(uint8(p&0x1F), 31, uint8(255)),
		A: 0xFF,
	}
}
