// Package singleton provides a container guarding a single shared value,
// constructed at most once, either eagerly or on first access, and safe for
// concurrent use by any number of goroutines.
//
// # Initialization
//
// A [Singleton] is in one of three states, see [State]. The first accessor
// claims construction via atomic compare-and-swap, and every other accessor
// busy-waits until the winner publishes the value. Initialization is
// unconditional: there are no timeouts, and no cancellation. A constructor
// that panics leaves the container permanently in [StateInitializing],
// spinning all subsequent accessors, see [NewLazy].
//
// # Access
//
// All access to the guarded value is through closures, fully serialized by a
// [SpinLock], including access that does not mutate:
//
//   - [Singleton.View] and [View] pass the value, a shallow copy
//   - [Singleton.Update] and [Update] pass a pointer to the value
//
// The package-level [View] and [Update] functions additionally return the
// result of the closure, which the method variants cannot express, as
// methods cannot introduce type parameters.
//
//	config := singleton.NewLazy(loadConfig)
//	addr := singleton.View(config, func(c Config) string { return c.Addr })
//	config.Update(func(c *Config) { c.Retries++ })
//
// # Concurrency
//
// Exclusion is implemented by busy-waiting, never by parking goroutines:
// blocked accessors spin, yielding cooperatively to the scheduler. Closures
// should therefore be short, must not block indefinitely, and must not
// attempt reentrant access to the same container, which deadlocks. Where
// critical sections are long, or contention is heavy, prefer [sync.Mutex] or
// [sync.RWMutex].
package singleton
