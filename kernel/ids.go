package kernel

// TaskID names one Delay instance in the wakeup schedule.
type TaskID uint16

// IDAllocator hands out TaskIDs. Runtime calls it inside its critical section.
type IDAllocator interface {
	Next() TaskID
}

// WrappingIDs counts up from its current value and wraps at 2^16.
type WrappingIDs struct {
	next TaskID
}

// NewWrappingIDs returns an allocator whose first id is first.
func NewWrappingIDs(first TaskID) *WrappingIDs {
	return &WrappingIDs{next: first}
}

func (a *WrappingIDs) Next() TaskID {
	id := a.next
	a.next++
	return id
}
