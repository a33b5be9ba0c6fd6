package kernel

import (
	"errors"
	"testing"
)

func TestScheduleNoDuplicateRegistration(t *testing.T) {
	var s Schedule
	var sig Signal
	w := WakerFor(&sig)

	if err := s.RegisterOrUpdate(100, 1, w); err != nil {
		t.Fatalf("RegisterOrUpdate() error = %v", err)
	}
	if err := s.RegisterOrUpdate(50, 1, w); err != nil {
		t.Fatalf("RegisterOrUpdate() error = %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if next, _ := s.Next(); next != 50 {
		t.Fatalf("Next() = %d, want 50", next)
	}
}

func TestScheduleCapacityBoundary(t *testing.T) {
	var s Schedule
	var sig Signal
	w := WakerFor(&sig)

	for i := 0; i < ScheduleCapacity; i++ {
		if err := s.RegisterOrUpdate(Instant(10+i), TaskID(i), w); err != nil {
			t.Fatalf("RegisterOrUpdate(%d) error = %v", i, err)
		}
	}
	if s.HasCapacity() {
		t.Fatal("HasCapacity() = true at capacity")
	}
	err := s.RegisterOrUpdate(5, ScheduleCapacity, w)
	if !errors.Is(err, ErrScheduleFull) {
		t.Fatalf("RegisterOrUpdate() past capacity = %v, want %v", err, ErrScheduleFull)
	}
	if s.Len() != ScheduleCapacity {
		t.Fatalf("Len() = %d, want %d", s.Len(), ScheduleCapacity)
	}
	if next, _ := s.Next(); next != 10 {
		t.Fatalf("Next() = %d, want 10 (existing entries untouched)", next)
	}
	// Updating an existing id still works when full.
	if err := s.RegisterOrUpdate(1, 3, w); err != nil {
		t.Fatalf("update at capacity error = %v", err)
	}
	if next, _ := s.Next(); next != 1 {
		t.Fatalf("Next() = %d, want 1", next)
	}
}

func TestScheduleDrainOrder(t *testing.T) {
	var s Schedule
	var sigs [6]Signal
	deadlines := []Instant{40, 10, 30, 60, 20, 50}
	for i, d := range deadlines {
		if err := s.RegisterOrUpdate(d, TaskID(i), WakerFor(&sigs[i])); err != nil {
			t.Fatalf("RegisterOrUpdate() error = %v", err)
		}
	}

	if n := s.DrainBefore(9); n != 0 {
		t.Fatalf("DrainBefore(9) = %d, want 0", n)
	}
	if n := s.DrainBefore(30); n != 3 {
		t.Fatalf("DrainBefore(30) = %d, want 3", n)
	}
	for i, d := range deadlines {
		if got, want := sigs[i].Take(), d <= 30; got != want {
			t.Fatalf("entry %d (deadline %d) woken = %v, want %v", i, d, got, want)
		}
	}
	if next, _ := s.Next(); next != 40 {
		t.Fatalf("Next() = %d, want 40", next)
	}

	prev := Instant(0)
	for s.Len() > 0 {
		next, _ := s.Next()
		if before(next, prev) {
			t.Fatalf("Next() = %d after %d", next, prev)
		}
		s.DrainBefore(next)
		prev = next
	}
}

func TestScheduleOrderAcrossWrap(t *testing.T) {
	var s Schedule
	var sig Signal
	w := WakerFor(&sig)
	_ = s.RegisterOrUpdate(2, 1, w)
	_ = s.RegisterOrUpdate(0xFFFF_FFFE, 2, w)

	if next, _ := s.Next(); next != 0xFFFF_FFFE {
		t.Fatalf("Next() = %#x, want 0xfffffffe", next)
	}
	if n := s.DrainBefore(0xFFFF_FFFF); n != 1 {
		t.Fatalf("DrainBefore(0xffffffff) = %d, want 1", n)
	}
	if n := s.DrainBefore(2); n != 1 {
		t.Fatalf("DrainBefore(2) = %d, want 1", n)
	}
}

func TestScheduleRemoveEntry(t *testing.T) {
	var s Schedule
	var sig Signal
	w := WakerFor(&sig)
	for i, d := range []Instant{30, 10, 20, 40} {
		_ = s.RegisterOrUpdate(d, TaskID(i), w)
	}

	if !s.removeEntry(1, 10) {
		t.Fatal("removeEntry(1, 10) = false, want true")
	}
	if s.removeEntry(1, 10) {
		t.Fatal("second removeEntry(1, 10) = true, want false")
	}
	if s.Contains(1) {
		t.Fatal("Contains(1) after removeEntry")
	}
	if next, _ := s.Next(); next != 20 {
		t.Fatalf("Next() = %d, want 20", next)
	}
	if s.removeEntry(0, 99) {
		t.Fatal("removeEntry with stale deadline = true, want false")
	}
	if !s.removeEntry(0, 30) {
		t.Fatal("removeEntry(0, 30) = false, want true")
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
}

func TestScheduleUpdateReplacesWaker(t *testing.T) {
	var s Schedule
	var a, b Signal
	_ = s.RegisterOrUpdate(10, 1, WakerFor(&a))
	_ = s.RegisterOrUpdate(10, 1, WakerFor(&a))
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	_ = s.RegisterOrUpdate(10, 1, WakerFor(&b))
	s.DrainBefore(10)
	if a.Pending() || !b.Pending() {
		t.Fatalf("after update: a pending = %t, b pending = %t, want false, true", a.Pending(), b.Pending())
	}
}
