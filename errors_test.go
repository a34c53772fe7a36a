package switchboard

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			"not found",
			NotFoundError{Name: "db"},
			`service "db" not found`,
		},
		{
			"cycle",
			CycleError{Chain: []string{"a", "b", "a"}},
			"circular reference detected: a -> b -> a",
		},
		{
			"load without cause",
			LoadError{Path: "mod.make"},
			`cannot load symbol "mod.make"`,
		},
		{
			"load with cause",
			LoadError{Path: "mod.make", Cause: ErrSymbolUnknown},
			`cannot load symbol "mod.make": symbol not registered`,
		},
		{
			"config bare",
			ConfigError{},
			"invalid configuration",
		},
		{
			"config with source and reason",
			ConfigError{Source: "base.yaml", Reason: "top-level document is not a mapping"},
			"invalid configuration in base.yaml: top-level document is not a mapping",
		},
		{
			"factory",
			FactoryError{Factory: "mod.connect", Cause: errors.New("boom")},
			"factory mod.connect: boom",
		},
		{
			"resolution",
			ResolutionError{Name: "svc", Cause: errors.New("boom")},
			`resolving service "svc": boom`,
		},
		{
			"type mismatch",
			TypeMismatchError{Name: "x", Expected: reflect.TypeOf(0), Actual: reflect.TypeOf("")},
			`service "x": expected int, got string`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.EqualError(t, tc.err, tc.want)
		})
	}
}

func TestErrorMatching(t *testing.T) {
	t.Run("not found matches sentinel", func(t *testing.T) {
		assert.ErrorIs(t, NotFoundError{Name: "x"}, ErrNotFound)
	})

	t.Run("wrapping preserves the chain", func(t *testing.T) {
		cause := errors.New("root cause")
		err := ResolutionError{
			Name:  "outer",
			Cause: ResolutionError{Name: "inner", Cause: FactoryError{Factory: "f", Cause: cause}},
		}

		assert.ErrorIs(t, err, cause)

		var factoryErr FactoryError
		assert.ErrorAs(t, err, &factoryErr)

		var resErr ResolutionError
		assert.ErrorAs(t, err, &resErr)
		assert.Equal(t, "outer", resErr.Name)
	})
}
