package kernel

import "sync"

// Mask brackets a critical section shared with interrupt context.
//
// On hardware Disable masks interrupts and returns the previous state, which
// Restore reinstates. Sections must stay short: O(ScheduleCapacity) at most,
// no allocation, no suspension.
type Mask interface {
	Disable() uintptr
	Restore(state uintptr)
}

// MutexMask is a Mask for hosts and tests, where "interrupts" are goroutines.
//
// It is not reentrant. The runtime never nests sections.
type MutexMask struct {
	mu sync.Mutex
}

func (m *MutexMask) Disable() uintptr {
	m.mu.Lock()
	return 0
}

func (m *MutexMask) Restore(uintptr) {
	m.mu.Unlock()
}
