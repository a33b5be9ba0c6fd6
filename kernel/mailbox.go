package kernel

import "sync/atomic"

// MailboxSlots is the capacity of a Mailbox.
const MailboxSlots = 8

// Mailbox is a fixed-size single-producer, single-consumer queue.
//
// The producer may be an interrupt handler or a task; the consumer is a task
// suspended in Recv. No allocations. It must not be copied after first use;
// go vet reports copies through the atomic fields.
type Mailbox[T any] struct {
	_     [0]func() // not comparable.
	head  atomic.Uint32
	tail  atomic.Uint32
	slots [MailboxSlots]T

	waiter atomic.Pointer[Signal]
}

// TrySend enqueues v, returning false if the mailbox is full. A consumer
// suspended in Recv is woken.
func (mb *Mailbox[T]) TrySend(v T) bool {
	head := mb.head.Load()
	tail := mb.tail.Load()
	if head-tail >= MailboxSlots {
		return false
	}
	mb.slots[head%MailboxSlots] = v
	mb.head.Store(head + 1)
	if sig := mb.waiter.Load(); sig != nil {
		sig.Set()
	}
	return true
}

// TryRecv dequeues one value, returning false if empty.
func (mb *Mailbox[T]) TryRecv() (T, bool) {
	tail := mb.tail.Load()
	head := mb.head.Load()
	if tail == head {
		var zero T
		return zero, false
	}
	v := mb.slots[tail%MailboxSlots]
	mb.tail.Store(tail + 1)
	return v, true
}

// Len returns the number of queued values.
func (mb *Mailbox[T]) Len() int {
	return int(mb.head.Load() - mb.tail.Load())
}

// Recv returns a future that completes with the next value.
func (mb *Mailbox[T]) Recv() MailboxRecv[T] {
	return MailboxRecv[T]{mb: mb}
}

// MailboxRecv suspends until its mailbox holds a value.
type MailboxRecv[T any] struct {
	mb *Mailbox[T]
}

func (r MailboxRecv[T]) Poll(cx *Context) (T, bool) {
	if v, ok := r.mb.TryRecv(); ok {
		return v, true
	}
	r.mb.waiter.Store(cx.Waker().sig)
	// Re-check so a send between the first TryRecv and the store is not lost.
	return r.mb.TryRecv()
}
