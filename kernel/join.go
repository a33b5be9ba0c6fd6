package kernel

import "fmt"

// MaxBranches bounds the number of futures one Join drives.
const MaxBranches = 8

// JoinSet polls a fixed set of futures until all have completed.
type JoinSet[T any] struct {
	branches [MaxBranches]Future[T]
	outs     [MaxBranches]T
	done     [MaxBranches]bool
	n        int
	finished int
}

// Join combines branches into one future that completes when every branch
// has. Outputs are returned in declaration order. Passing more than
// MaxBranches futures is a configuration fault and panics.
func Join[T any](branches ...Future[T]) *JoinSet[T] {
	if len(branches) > MaxBranches {
		panic(fmt.Sprintf("kernel: join of %d branches exceeds %d", len(branches), MaxBranches))
	}
	j := &JoinSet[T]{n: len(branches)}
	copy(j.branches[:], branches)
	return j
}

// Done returns how many branches have completed.
func (j *JoinSet[T]) Done() int { return j.finished }

// Len returns the number of branches.
func (j *JoinSet[T]) Len() int { return j.n }

// Poll polls every unfinished branch once, in declaration order. Each branch
// receives the same context, so any of them can wake the whole join.
func (j *JoinSet[T]) Poll(cx *Context) ([]T, bool) {
	for i := 0; i < j.n; i++ {
		if j.done[i] {
			continue
		}
		v, ok := j.branches[i].Poll(cx)
		if !ok {
			continue
		}
		j.outs[i] = v
		j.done[i] = true
		j.branches[i] = nil
		j.finished++
	}
	if j.finished < j.n {
		return nil, false
	}
	return j.outs[:j.n], true
}

// Pair holds the outputs of Join2.
type Pair[A, B any] struct {
	A A
	B B
}

// Join2 combines two futures of different result types.
func Join2[A, B any](a Future[A], b Future[B]) Future[Pair[A, B]] {
	return &join2[A, B]{a: a, b: b}
}

type join2[A, B any] struct {
	a     Future[A]
	b     Future[B]
	out   Pair[A, B]
	doneA bool
	doneB bool
}

func (j *join2[A, B]) Poll(cx *Context) (Pair[A, B], bool) {
	if !j.doneA {
		j.out.A, j.doneA = j.a.Poll(cx)
	}
	if !j.doneB {
		j.out.B, j.doneB = j.b.Poll(cx)
	}
	if j.doneA && j.doneB {
		return j.out, true
	}
	return Pair[A, B]{}, false
}
