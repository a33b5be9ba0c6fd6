package kernel

// Yield inserts exactly one scheduling-pass boundary: the first poll wakes
// its own task and suspends, the second completes.
type Yield struct {
	yielded bool
}

func (y *Yield) Poll(cx *Context) (struct{}, bool) {
	if y.yielded {
		return struct{}{}, true
	}
	y.yielded = true
	cx.Waker().Wake()
	return struct{}{}, false
}
