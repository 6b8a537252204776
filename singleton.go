package singleton

import (
	"time"

	"github.com/joeycumines/logiface"
)

// Singleton guards a single shared value of type T, constructing it at most
// once, and serializing all access to it.
//
// Instances are typically initialized using the [New] or [NewLazy]
// factories. The zero value is also ready to use, and behaves as a lazy
// singleton of the zero value of T.
//
// There is no teardown: once constructed, the value is retained as long as
// the container, and package-level containers retain it for the life of the
// process.
//
// A Singleton must not be copied after first use.
type Singleton[T any] struct {
	// betteralign:ignore

	state  stateCell
	mu     SpinLock
	logger *logiface.Logger[logiface.Event] // configurable
	name   string                           // configurable
	init   func() T                         // nil once run
	value  T
}

// New returns a Singleton already holding value, in [StateInitialized].
// Accessors never run a constructor, and never spin on the state.
func New[T any](value T, opts ...Option[T]) *Singleton[T] {
	x := Singleton[T]{value: value}
	x.state.Store(StateInitialized)
	applyOptions(&x, opts)
	return &x
}

// NewLazy returns a Singleton that will construct its value on first access,
// by calling init, exactly once. A panic will occur if init is nil.
//
// Initialization is unrecoverable: if init panics, the panic propagates to
// the accessor that ran it, the Singleton remains in [StateInitializing],
// and every subsequent access spins forever. Constructors must not fail, and
// must not access the same Singleton, which deadlocks the same way.
func NewLazy[T any](init func() T, opts ...Option[T]) *Singleton[T] {
	if init == nil {
		panic(`singleton: nil init function`)
	}
	x := Singleton[T]{init: init}
	applyOptions(&x, opts)
	return &x
}

// View calls fn with the guarded value, blocking until the value is
// initialized, then until the exclusion guard is acquired. A panic will
// occur if fn is nil.
//
// The value is passed as a shallow copy, taken while the guard is held, so
// fn cannot assign to the guarded value itself, though a T containing
// references still shares the referenced data. The guard is held until fn
// returns, and is released even if fn panics.
//
// See also [View], a variant that returns the result of the closure.
func (x *Singleton[T]) View(fn func(T)) {
	if fn == nil {
		panic(`singleton: nil closure`)
	}
	x.ensureInitialized()
	x.mu.Lock()
	defer x.mu.Unlock()
	fn(x.value)
}

// Update calls fn with a pointer to the guarded value, blocking until the
// value is initialized, then until the exclusion guard is acquired. A panic
// will occur if fn is nil.
//
// The pointer must not be retained after fn returns. The guard is held until
// fn returns, and is released even if fn panics.
//
// See also [Update], a variant that returns the result of the closure.
func (x *Singleton[T]) Update(fn func(*T)) {
	if fn == nil {
		panic(`singleton: nil closure`)
	}
	x.ensureInitialized()
	x.mu.Lock()
	defer x.mu.Unlock()
	fn(&x.value)
}

// State returns the current initialization state. It is inherently racy:
// another goroutine may transition the state at any time, though
// [StateInitialized] is terminal, and therefore reliable.
func (x *Singleton[T]) State() State {
	return x.state.Load()
}

// Initialized returns true once the value has been constructed and
// published.
func (x *Singleton[T]) Initialized() bool {
	return x.state.Initialized()
}

// View calls fn with the value guarded by x, returning the result of fn. It
// behaves as [Singleton.View], which it supplements, as a method cannot
// introduce the result type parameter R.
func View[T, R any](x *Singleton[T], fn func(T) R) R {
	if fn == nil {
		panic(`singleton: nil closure`)
	}
	x.ensureInitialized()
	x.mu.Lock()
	defer x.mu.Unlock()
	return fn(x.value)
}

// Update calls fn with a pointer to the value guarded by x, returning the
// result of fn. It behaves as [Singleton.Update], which it supplements, as a
// method cannot introduce the result type parameter R.
func Update[T, R any](x *Singleton[T], fn func(*T) R) R {
	if fn == nil {
		panic(`singleton: nil closure`)
	}
	x.ensureInitialized()
	x.mu.Lock()
	defer x.mu.Unlock()
	return fn(&x.value)
}

// ensureInitialized guarantees the value is constructed, before access. The
// fast path is a single atomic load.
func (x *Singleton[T]) ensureInitialized() {
	if !x.state.Initialized() {
		x.initSlow()
	}
}

// initSlow claims construction, or spins until the winner publishes.
func (x *Singleton[T]) initSlow() {
	for spins := 0; ; spins++ {
		if x.state.TryTransition(StateUninitialized, StateInitializing) {
			x.runInit()
			return
		}
		if x.state.Initialized() {
			return
		}
		yield(spins)
	}
}

// runInit calls the constructor and publishes the value. It must only be
// reached by winning the transition to StateInitializing.
func (x *Singleton[T]) runInit() {
	x.debug().Log(`initializing`)
	start := time.Now()
	if x.init != nil {
		x.value = x.init()
		x.init = nil // do not keep the constructor alive after it runs
	}
	x.state.Store(StateInitialized)
	x.debug().Dur(`dur`, time.Since(start)).Log(`initialized`)
}

// debug starts a debug-level log event, with the configured name as a field,
// if set. Safe without a logger.
func (x *Singleton[T]) debug() *logiface.Builder[logiface.Event] {
	b := x.logger.Debug()
	if x.name != `` {
		b = b.Str(`name`, x.name)
	}
	return b
}
