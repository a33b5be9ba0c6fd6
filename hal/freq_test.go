package hal

import (
	"errors"
	"testing"
)

func TestToneDivider(t *testing.T) {
	tests := []struct {
		hz   uint16
		want Divider
	}{
		{40, Divider{Prescaler: 1024, Compare: 195}},
		{199, Divider{Prescaler: 1024, Compare: 39}},
		{200, Divider{Prescaler: 256, Compare: 156}},
		{440, Divider{Prescaler: 256, Compare: 71}},
		{1000, Divider{Prescaler: 64, Compare: 125}},
		{4799, Divider{Prescaler: 64, Compare: 26}},
		{4800, Divider{Prescaler: 8, Compare: 208}},
		{35000, Divider{Prescaler: 8, Compare: 28}},
	}
	for _, tt := range tests {
		got, err := ToneDivider(tt.hz)
		if err != nil {
			t.Fatalf("ToneDivider(%d) error = %v", tt.hz, err)
		}
		if got != tt.want {
			t.Fatalf("ToneDivider(%d) = %+v, want %+v", tt.hz, got, tt.want)
		}
	}
}

func TestToneDividerRange(t *testing.T) {
	for _, hz := range []uint16{0, 39, 35001, 65535} {
		if _, err := ToneDivider(hz); !errors.Is(err, ErrToneRange) {
			t.Fatalf("ToneDivider(%d) error = %v, want %v", hz, err, ErrToneRange)
		}
	}
}

func TestDividerHz(t *testing.T) {
	d, _ := ToneDivider(1000)
	if got := d.Hz(); got != 1000 {
		t.Fatalf("Hz() = %d, want 1000", got)
	}
	if got := (Divider{}).Hz(); got != 0 {
		t.Fatalf("zero Divider Hz() = %d, want 0", got)
	}
}
