package kernel

import "errors"

// ScheduleCapacity is the number of suspensions that can be pending at once.
const ScheduleCapacity = 10

// ErrScheduleFull is returned when a new registration does not fit.
var ErrScheduleFull = errors.New("wakeup schedule full")

type wakeEntry struct {
	deadline Instant
	id       TaskID
	waker    Waker
}

// Schedule is a fixed-capacity min-heap of pending wakeups keyed by deadline.
//
// It performs no locking; Runtime calls it only inside its critical section.
// Ties between equal deadlines are broken arbitrarily.
type Schedule struct {
	entries [ScheduleCapacity]wakeEntry
	n       int
}

// Len returns the number of pending entries.
func (s *Schedule) Len() int { return s.n }

// HasCapacity reports whether another entry fits.
func (s *Schedule) HasCapacity() bool { return s.n < len(s.entries) }

// Contains reports whether an entry for id is pending.
func (s *Schedule) Contains(id TaskID) bool { return s.find(id) >= 0 }

// Next returns the earliest pending deadline.
func (s *Schedule) Next() (Instant, bool) {
	if s.n == 0 {
		return 0, false
	}
	return s.entries[0].deadline, true
}

// RegisterOrUpdate records that w must be woken at deadline on behalf of id.
//
// An existing entry for id is updated in place (waker and deadline) and the
// heap order is restored. A new entry fails with ErrScheduleFull when the
// schedule is at capacity; existing entries are left untouched.
func (s *Schedule) RegisterOrUpdate(deadline Instant, id TaskID, w Waker) error {
	if i := s.find(id); i >= 0 {
		old := s.entries[i].deadline
		if old == deadline && s.entries[i].waker.Equal(w) {
			return nil
		}
		s.entries[i].deadline = deadline
		s.entries[i].waker = w
		if before(deadline, old) {
			s.up(i)
		} else if before(old, deadline) {
			s.down(i)
		}
		return nil
	}
	if !s.HasCapacity() {
		return ErrScheduleFull
	}
	s.entries[s.n] = wakeEntry{deadline: deadline, id: id, waker: w}
	s.n++
	s.up(s.n - 1)
	return nil
}

// DrainBefore wakes and removes every entry whose deadline has been reached
// at now, earliest first, and returns how many fired.
func (s *Schedule) DrainBefore(now Instant) int {
	fired := 0
	for s.n > 0 && Reached(now, s.entries[0].deadline) {
		w := s.entries[0].waker
		s.removeAt(0)
		w.Wake()
		fired++
	}
	return fired
}

// removeEntry drops the entry for id only while it still carries deadline,
// so a stale handle cannot evict a newer owner of a wrapped id.
func (s *Schedule) removeEntry(id TaskID, deadline Instant) bool {
	i := s.find(id)
	if i < 0 || s.entries[i].deadline != deadline {
		return false
	}
	s.removeAt(i)
	return true
}

func (s *Schedule) find(id TaskID) int {
	for i := 0; i < s.n; i++ {
		if s.entries[i].id == id {
			return i
		}
	}
	return -1
}

func (s *Schedule) removeAt(i int) {
	last := s.n - 1
	if i != last {
		s.entries[i] = s.entries[last]
	}
	s.entries[last] = wakeEntry{}
	s.n--
	if i < s.n {
		s.down(i)
		s.up(i)
	}
}

func (s *Schedule) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !before(s.entries[i].deadline, s.entries[parent].deadline) {
			return
		}
		s.entries[i], s.entries[parent] = s.entries[parent], s.entries[i]
		i = parent
	}
}

func (s *Schedule) down(i int) {
	for {
		m := i
		l, r := 2*i+1, 2*i+2
		if l < s.n && before(s.entries[l].deadline, s.entries[m].deadline) {
			m = l
		}
		if r < s.n && before(s.entries[r].deadline, s.entries[m].deadline) {
			m = r
		}
		if m == i {
			return
		}
		s.entries[i], s.entries[m] = s.entries[m], s.entries[i]
		i = m
	}
}
