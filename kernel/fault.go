package kernel

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrTaskReturned is the fault value when a top-level task completes.
var ErrTaskReturned = errors.New("top-level task returned")

// FaultInfo describes an unrecoverable condition.
type FaultInfo struct {
	Where string
	Value any
	Stack []byte
}

var (
	faultActive atomic.Bool
	faultOnce   sync.Once

	faultHandler atomic.Value // func(FaultInfo)
	faultHalt    atomic.Value // func()
)

// InFaultMode reports whether a fault has been raised.
func InFaultMode() bool {
	return faultActive.Load()
}

// SetFaultHandler installs a process-wide fault handler.
//
// The handler is invoked at most once (on the first fault). It must not panic
// and must not suspend.
func SetFaultHandler(fn func(FaultInfo)) {
	faultHandler.Store(fn)
}

// SetFaultHalt replaces the default halt, which parks the faulting goroutine
// forever. Host runners use it to exit the process instead.
func SetFaultHalt(fn func()) {
	faultHalt.Store(fn)
}

func halt() {
	if v := faultHalt.Load(); v != nil {
		if fn, ok := v.(func()); ok && fn != nil {
			fn()
			return
		}
	}
	select {}
}

// Fault reports info to the installed handler and halts the caller.
func Fault(info FaultInfo) {
	faultOnce.Do(func() {
		faultActive.Store(true)
		if info.Stack == nil {
			info.Stack = captureStack()
		}
		if v := faultHandler.Load(); v != nil {
			if fn, ok := v.(func(FaultInfo)); ok && fn != nil {
				fn(info)
			}
		}
	})
	halt()
}

// Guard runs fn and turns a panic into a Fault tagged with where.
func Guard(where string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			Fault(FaultInfo{Where: where, Value: r, Stack: captureStack()})
		}
	}()
	fn()
}
