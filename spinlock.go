package singleton

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// lock states for SpinLock
const (
	lockFree uint32 = 0
	lockHeld uint32 = 1
)

// SpinLock is a busy-waiting mutual exclusion lock.
//
// Unlike [sync.Mutex], a blocked [SpinLock.Lock] never parks the goroutine,
// it spins, yielding cooperatively, until the holder releases. This suits
// very short critical sections, at the cost of burning cycles under
// contention.
//
// The zero value is an unlocked SpinLock. A SpinLock must not be copied
// after first use. Misuse is not detected, e.g. unlocking a SpinLock not
// held by the caller simply releases it.
//
// SpinLock implements [sync.Locker].
type SpinLock struct {
	_     noCopy
	state atomic.Uint32
}

var _ sync.Locker = (*SpinLock)(nil)

// Lock acquires the lock, spinning until it is available.
func (x *SpinLock) Lock() {
	for spins := 0; !x.TryLock(); spins++ {
		yield(spins)
	}
}

// TryLock attempts to acquire the lock, without blocking, returning true on
// success.
func (x *SpinLock) TryLock() bool {
	return x.state.CompareAndSwap(lockFree, lockHeld)
}

// Unlock releases the lock.
func (x *SpinLock) Unlock() {
	x.state.Store(lockFree)
}

// yield stalls a busy-wait loop cooperatively, so that the goroutine being
// waited on can make progress, even on a single-threaded scheduler.
func yield(spins int) {
	switch {
	case spins < 16:
		// tight retry, the holder is likely mid-critical-section on another core
	case spins <= 1000:
		runtime.Gosched()
	default:
		time.Sleep(100 * time.Microsecond)
	}
}

// noCopy may be embedded into structs which must not be copied
// after the first use.
//
// See https://golang.org/issues/8005#issuecomment-190753527
// for details.
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
