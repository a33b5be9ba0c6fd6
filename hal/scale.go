package hal

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Scale maps v from [0, inMax] onto [0, outMax], rounding down. Values above
// inMax saturate.
func Scale[In, Out constraints.Unsigned](v, inMax In, outMax Out) Out {
	if inMax == 0 {
		return 0
	}
	v = Clamp(v, 0, inMax)
	return Out(uint64(v) * uint64(outMax) / uint64(inMax))
}

// DutyToTop maps an 8-bit duty onto a PWM counter top.
func DutyToTop(duty uint8, top uint32) uint32 {
	return Scale(duty, uint8(255), top)
}
