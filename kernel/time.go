package kernel

// Instant is a wrapping millisecond timestamp.
type Instant uint32

// Millis is a duration in milliseconds.
type Millis uint32

// Add returns i advanced by d, wrapping at 2^32.
func (i Instant) Add(d Millis) Instant {
	return i + Instant(d)
}

// Since returns the elapsed milliseconds from earlier to i, wrapping.
func (i Instant) Since(earlier Instant) Millis {
	return Millis(i - earlier)
}

// Reached reports whether now is at or past deadline.
//
// The comparison uses wrapping subtraction, so it stays correct across the
// counter overflow as long as the two values are within 2^31 ms (~24.8 days).
func Reached(now, deadline Instant) bool {
	return int32(now-deadline) >= 0
}

// before orders deadlines for the schedule heap.
func before(a, b Instant) bool {
	return int32(a-b) < 0
}
