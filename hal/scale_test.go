package hal

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Fatalf("Clamp(-3, 0, 10) = %d, want 0", got)
	}
	if got := Clamp(12.5, 0, 10); got != 10 {
		t.Fatalf("Clamp(12.5, 0, 10) = %v, want 10", got)
	}
	if got := Clamp(uint8(7), 0, 10); got != 7 {
		t.Fatalf("Clamp(7, 0, 10) = %d, want 7", got)
	}
}

func TestScale(t *testing.T) {
	if got := Scale(uint8(255), uint8(255), uint32(1024)); got != 1024 {
		t.Fatalf("Scale(255) = %d, want 1024", got)
	}
	if got := Scale(uint8(128), uint8(255), uint32(1024)); got != 514 {
		t.Fatalf("Scale(128) = %d, want 514", got)
	}
	if got := Scale(uint16(50), uint16(0), uint8(9)); got != 0 {
		t.Fatalf("Scale with zero inMax = %d, want 0", got)
	}
	if got := Scale(uint16(300), uint16(255), uint16(100)); got != 100 {
		t.Fatalf("Scale saturating = %d, want 100", got)
	}
}

func TestDutyToTop(t *testing.T) {
	if got := DutyToTop(0, 0xFFFF); got != 0 {
		t.Fatalf("DutyToTop(0) = %d, want 0", got)
	}
	if got := DutyToTop(255, 0xFFFF); got != 0xFFFF {
		t.Fatalf("DutyToTop(255) = %d, want 65535", got)
	}
}
