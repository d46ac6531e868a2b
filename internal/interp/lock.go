package interp

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Lock is a process-wide re-entrant mutex guarding the compiler model.
// The owning goroutine may acquire it recursively (enumeration nested
// inside instantiation nested inside a caller-held lock); other goroutines
// block until the owner fully releases.
type Lock struct {
	mu    sync.Mutex
	owner atomic.Uint64
	depth int32 // touched only by the owning goroutine
}

var globalLock Lock

// Global returns the single lock shared by every session in the process.
func Global() *Lock { return &globalLock }

// Acquire takes the lock, recursively if already held by this goroutine.
func (l *Lock) Acquire() {
	g := goid()
	if l.owner.Load() == g {
		l.depth++
		return
	}
	l.mu.Lock()
	l.owner.Store(g)
	l.depth = 1
}

// Release undoes one Acquire. Panics when called by a non-owner.
func (l *Lock) Release() {
	g := goid()
	if l.owner.Load() != g {
		panic("interp: lock released by non-owner")
	}
	l.depth--
	if l.depth == 0 {
		l.owner.Store(0)
		l.mu.Unlock()
	}
}

// Held reports whether the calling goroutine owns the lock.
func (l *Lock) Held() bool {
	return l.owner.Load() == goid()
}

// goid extracts the current goroutine ID from the runtime stack header
// ("goroutine N [state]:"). The runtime exposes no API for this; the
// re-entrancy contract needs an owner identity, so we parse it once per
// lock operation.
func goid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	const prefix = len("goroutine ")
	id := uint64(0)
	for _, c := range buf[prefix:n] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}
