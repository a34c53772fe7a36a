package switchboard

import (
	"reflect"

	"go.uber.org/dig"
)

// Export provides the named service into a dig container as type T, so
// configuration-driven services can participate in a type-keyed
// constructor graph. The service is still built lazily by this container
// the first time dig asks for it; a built instance that is not a T
// surfaces as a TypeMismatchError through dig's invoke path.
func Export[T any](c *Container, dst *dig.Container, name string, opts ...dig.ProvideOption) error {
	return dst.Provide(func() (T, error) {
		instance, err := c.Get(name)
		if err != nil {
			var zero T
			return zero, err
		}

		typed, ok := instance.(T)
		if !ok {
			var zero T
			return zero, TypeMismatchError{
				Name:     name,
				Expected: reflect.TypeOf((*T)(nil)).Elem(),
				Actual:   reflect.TypeOf(instance),
			}
		}
		return typed, nil
	}, opts...)
}
