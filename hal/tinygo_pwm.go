//go:build tinygo && rp2040

package hal

import (
	"machine"
)

type pwmDevice interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	SetTop(top uint32)
	Top() uint32
	Set(channel uint8, value uint32)
	SetPeriod(period uint64) error
	Enable(enable bool)
}

func pwmForPin(pin machine.Pin) pwmDevice {
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil
	}
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		return nil
	}
}

// pwmOut is an 8-bit duty output on a fixed ~1 kHz carrier.
type pwmOut struct {
	pwm pwmDevice
	ch  uint8
	top uint32
}

func newPWMOut(pin machine.Pin) (*pwmOut, error) {
	pwm := pwmForPin(pin)
	if pwm == nil {
		return nil, ErrNotImplemented
	}
	const carrierHz = 1000
	if err := pwm.Configure(machine.PWMConfig{Period: 1e9 / carrierHz}); err != nil {
		return nil, err
	}
	ch, err := pwm.Channel(pin)
	if err != nil {
		return nil, err
	}
	o := &pwmOut{pwm: pwm, ch: ch, top: pwm.Top()}
	o.Set(0)
	pwm.Enable(true)
	return o, nil
}

func (o *pwmOut) Set(duty uint8) {
	o.pwm.Set(o.ch, DutyToTop(duty, o.top))
}

// pwmTone produces a 50% square wave at the requested frequency.
type pwmTone struct {
	pwm pwmDevice
	ch  uint8
	hz  uint16
	on  bool
}

func newPWMTone(pin machine.Pin) (*pwmTone, error) {
	pwm := pwmForPin(pin)
	if pwm == nil {
		return nil, ErrNotImplemented
	}
	if err := pwm.Configure(machine.PWMConfig{Period: 1e9 / 440}); err != nil {
		return nil, err
	}
	ch, err := pwm.Channel(pin)
	if err != nil {
		return nil, err
	}
	pwm.Set(ch, 0)
	return &pwmTone{pwm: pwm, ch: ch, hz: 440}, nil
}

func (t *pwmTone) SetFrequency(hz uint16) error {
	if _, err := ToneDivider(hz); err != nil {
		return err
	}
	if err := t.pwm.SetPeriod(1e9 / uint64(hz)); err != nil {
		return err
	}
	t.hz = hz
	if t.on {
		t.pwm.Set(t.ch, t.pwm.Top()/2)
	}
	return nil
}

func (t *pwmTone) On() {
	t.on = true
	t.pwm.Set(t.ch, t.pwm.Top()/2)
	t.pwm.Enable(true)
}

func (t *pwmTone) Off() {
	t.on = false
	t.pwm.Set(t.ch, 0)
}
