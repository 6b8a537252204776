package singleton

import (
	"github.com/joeycumines/logiface"
)

// Option is a configuration option for constructing Singleton instances,
// using the New and NewLazy functions.
type Option[T any] func(x *Singleton[T])

// WithLogger configures a logger, used to trace lazy initialization, at
// debug level. Both the events and their fields are subject to change.
//
// Use [logiface.Logger.Logger] to generify the logger of a concrete
// implementation.
func WithLogger[T any](logger *logiface.Logger[logiface.Event]) Option[T] {
	return func(x *Singleton[T]) {
		x.logger = logger
	}
}

// WithName configures a name, identifying the container in logged events.
func WithName[T any](name string) Option[T] {
	return func(x *Singleton[T]) {
		x.name = name
	}
}

// applyOptions applies each option to x, skipping nil options.
func applyOptions[T any](x *Singleton[T], opts []Option[T]) {
	for _, o := range opts {
		if o != nil {
			o(x)
		}
	}
}
