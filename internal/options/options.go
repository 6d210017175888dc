// Package options implements the generic functional option machinery used by
// the configurable types in this module.
package options

// Option is a functional option that configures a value of type T.
type Option[T any] interface {
	apply(T) error
}

type funcOption[T any] struct {
	applyFunc func(T) error
}

func (f *funcOption[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates an option from a function that may fail.
func New[T any](fn func(T) error) Option[T] {
	return &funcOption[T]{applyFunc: fn}
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) Option[T] {
	return &funcOption[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order, stopping at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
