//go:build tinygo && rp2040

package hal

import (
	"machine"
)

// Raspberry Pi Pico pin map.
const (
	pinPulseLED  = machine.GP16
	pinMotorIn1  = machine.GP18
	pinMotorIn2  = machine.GP19
	pinMotorPWM  = machine.GP20
	pinMotorEn   = machine.GP21
	pinTone      = machine.GP15
	pinButton    = machine.GP14
	pinLCDEnable = machine.GP10
	pinLCDRS     = machine.GP11
	pinLCDRW     = machine.GP12
)

var pinsLCDData = [4]machine.Pin{machine.GP6, machine.GP7, machine.GP8, machine.GP9}

type tinyGoHAL struct {
	logger *uartLogger
	status *pinLED
	pulse  *pwmOut
	motor  *pinMotor
	lcd    *lcdDisplay
	button *pinButton
	tone   *pwmTone
	timer  *pwmTimer
	irq    tinyGoIRQ
	idle   wfeIdler
}

// New returns a Raspberry Pi Pico (RP2040) HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() (HAL, error) {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	pulse, err := newPWMOut(pinPulseLED)
	if err != nil {
		return nil, err
	}
	motor, err := newPinMotor(pinMotorIn1, pinMotorIn2, pinMotorPWM, pinMotorEn)
	if err != nil {
		return nil, err
	}
	lcd, err := newLCDDisplay(pinsLCDData, pinLCDEnable, pinLCDRS, pinLCDRW)
	if err != nil {
		return nil, err
	}
	tone, err := newPWMTone(pinTone)
	if err != nil {
		return nil, err
	}

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		status: &pinLED{pin: ledPin},
		pulse:  pulse,
		motor:  motor,
		lcd:    lcd,
		button: newPinButton(pinButton),
		tone:   tone,
		timer:  newPWMTimer(),
	}, nil
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) StatusLED() LED   { return h.status }
func (h *tinyGoHAL) PulseLED() PWM    { return h.pulse }
func (h *tinyGoHAL) Motor() Motor     { return h.motor }
func (h *tinyGoHAL) Display() Display { return h.lcd }
func (h *tinyGoHAL) Button() Button   { return h.button }
func (h *tinyGoHAL) Tone() Tone       { return h.tone }
func (h *tinyGoHAL) Timer() Timer     { return h.timer }
func (h *tinyGoHAL) IRQ() IRQ         { return h.irq }
func (h *tinyGoHAL) Idler() Idler     { return h.idle }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

type pinMotor struct {
	in1, in2 machine.Pin
	en       machine.Pin
	speed    *pwmOut
}

func newPinMotor(in1, in2, speed, en machine.Pin) (*pinMotor, error) {
	for _, p := range []machine.Pin{in1, in2, en} {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Low()
	}
	out, err := newPWMOut(speed)
	if err != nil {
		return nil, err
	}
	return &pinMotor{in1: in1, in2: in2, en: en, speed: out}, nil
}

func (m *pinMotor) SetEnabled(on bool) { m.en.Set(on) }

func (m *pinMotor) SetDirection(d Direction) {
	m.in1.Set(d == Forward)
	m.in2.Set(d == Reverse)
}

func (m *pinMotor) SetSpeed(duty uint8) { m.speed.Set(duty) }

// pinButton is active low with the internal pull-up.
type pinButton struct {
	pin machine.Pin
}

func newPinButton(pin machine.Pin) *pinButton {
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &pinButton{pin: pin}
}

func (b *pinButton) Pressed() bool { return !b.pin.Get() }

func (b *pinButton) OnEdge(fn func()) {
	if fn == nil {
		_ = b.pin.SetInterrupt(0, nil)
		return
	}
	_ = b.pin.SetInterrupt(machine.PinFalling, func(machine.Pin) { fn() })
}
