//go:build !tinygo && cgo

package hal

import (
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const toneSampleRate = 44100

// ebitenTone plays the tone output as a square wave through Ebiten's audio
// package.
type ebitenTone struct {
	ctx    *audio.Context
	player *audio.Player
	hz     atomic.Uint32 // zero is silence
}

func newEbitenTone() (*ebitenTone, error) {
	t := &ebitenTone{}
	t.ctx = audio.NewContext(toneSampleRate)
	p, err := t.ctx.NewPlayer(&squareReader{t: t})
	if err != nil {
		return nil, err
	}
	p.SetBufferSize(50 * time.Millisecond)
	p.SetVolume(0.2)
	p.Play()
	t.player = p
	return t, nil
}

func (t *ebitenTone) setTone(hz uint16, on bool) {
	if !on {
		hz = 0
	}
	t.hz.Store(uint32(hz))
}

func (t *ebitenTone) close() {
	if t.player != nil {
		_ = t.player.Close()
	}
}

type squareReader struct {
	t     *ebitenTone
	phase uint32
}

func (r *squareReader) Read(p []byte) (int, error) {
	hz := r.t.hz.Load()
	// Ebiten audio expects 16-bit little-endian stereo.
	for i := 0; i+3 < len(p); i += 4 {
		var s int16
		if hz != 0 {
			r.phase += hz
			if r.phase >= toneSampleRate {
				r.phase -= toneSampleRate
			}
			if r.phase < toneSampleRate/2 {
				s = 8000
			} else {
				s = -8000
			}
		}
		p[i+0] = byte(s)
		p[i+1] = byte(s >> 8)
		p[i+2] = byte(s)
		p[i+3] = byte(s >> 8)
	}
	return len(p) - len(p)%4, nil
}
