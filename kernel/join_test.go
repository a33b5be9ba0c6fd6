package kernel

import "testing"

// passFuture completes on its n-th poll with value v.
type passFuture struct {
	n     int
	v     int
	polls int
}

func (f *passFuture) Poll(*Context) (int, bool) {
	f.polls++
	return f.v, f.polls >= f.n
}

func TestJoinCompletion(t *testing.T) {
	a := &passFuture{n: 2, v: 1}
	b := &passFuture{n: 5, v: 2}
	j := Join[int](a, b)
	cx := NewContext(Waker{})

	for pass := 1; pass < 5; pass++ {
		if _, done := j.Poll(cx); done {
			t.Fatalf("pass %d: Poll() done early", pass)
		}
	}
	if j.Done() != 1 {
		t.Fatalf("Done() = %d, want 1", j.Done())
	}
	out, done := j.Poll(cx)
	if !done {
		t.Fatal("pass 5: Poll() not done")
	}
	if len(out) != 2 || out[0] != 1 || out[1] != 2 {
		t.Fatalf("outputs = %v, want [1 2]", out)
	}
	if a.polls != 2 {
		t.Fatalf("a polled %d times, want 2", a.polls)
	}
	if b.polls != 5 {
		t.Fatalf("b polled %d times, want 5", b.polls)
	}
}

func TestJoinEmpty(t *testing.T) {
	out, done := Join[int]().Poll(NewContext(Waker{}))
	if !done || len(out) != 0 {
		t.Fatalf("Join().Poll() = %v, %v, want [], true", out, done)
	}
}

func TestJoinTooManyBranchesPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Join of MaxBranches+1 did not panic")
		}
	}()
	fs := make([]Future[int], MaxBranches+1)
	for i := range fs {
		fs[i] = Ready[int]{V: i}
	}
	Join(fs...)
}

func TestJoin2(t *testing.T) {
	a := &passFuture{n: 3, v: 7}
	b := Ready[string]{V: "x"}
	j := Join2[int, string](a, b)
	cx := NewContext(Waker{})

	var out Pair[int, string]
	var done bool
	for i := 0; i < 3; i++ {
		out, done = j.Poll(cx)
	}
	if !done || out.A != 7 || out.B != "x" {
		t.Fatalf("Join2 = %+v, %v, want {7 x}, true", out, done)
	}
}

func TestJoinDelays(t *testing.T) {
	rt := newTestRuntime(t)
	var sig Signal
	cx := NewContext(WakerFor(&sig))

	short := rt.Delay(2)
	long := rt.Delay(5)
	j := Join[struct{}](&short, &long)
	if _, done := j.Poll(cx); done {
		t.Fatal("Poll() done at 0 ms")
	}
	if rt.Stats().Pending != 2 {
		t.Fatalf("Pending = %d, want 2", rt.Stats().Pending)
	}
	ticks(rt, 2)
	if !sig.Take() {
		t.Fatal("short delay did not wake the join")
	}
	if _, done := j.Poll(cx); done {
		t.Fatal("Poll() done at 2 ms")
	}
	ticks(rt, 3)
	if _, done := j.Poll(cx); !done {
		t.Fatal("Poll() not done at 5 ms")
	}
}
