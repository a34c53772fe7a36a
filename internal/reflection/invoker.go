// Package reflection adapts arbitrary Go values to the container's
// invocation contract: a call with positional arguments and keyword
// arguments that yields one value or an error.
package reflection

import (
	"fmt"
	"reflect"
	"strings"
)

// InvokeFunc is the normalized calling convention every adapted target is
// reduced to.
type InvokeFunc func(args []any, kwargs map[string]any) (any, error)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Adapt normalizes target into an InvokeFunc.
//
// Supported targets:
//   - func(args []any, kwargs map[string]any) (any, error), used as-is.
//   - any other func: positional arguments bind to parameters in order
//     (variadic tails supported); keyword arguments bind to the fields of a
//     trailing struct (or pointer-to-struct) parameter by field name, with
//     a case-insensitive fallback. Up to two results; a trailing error
//     result is split out.
func Adapt(target any) (InvokeFunc, error) {
	if target == nil {
		return nil, fmt.Errorf("target is nil")
	}

	if fn, ok := target.(func(args []any, kwargs map[string]any) (any, error)); ok {
		return fn, nil
	}

	v := reflect.ValueOf(target)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("target %T is not a function", target)
	}
	if t.NumOut() > 2 {
		return nil, fmt.Errorf("function %v returns more than two values", t)
	}
	if t.NumOut() == 2 && t.Out(1) != errType {
		return nil, fmt.Errorf("function %v: second return value must be error", t)
	}

	return func(args []any, kwargs map[string]any) (any, error) {
		in, err := bindArguments(t, args, kwargs)
		if err != nil {
			return nil, err
		}

		out := v.Call(in)
		return splitResults(t, out)
	}, nil
}

// bindArguments maps positional and keyword arguments onto the parameter
// list of fn.
func bindArguments(fn reflect.Type, args []any, kwargs map[string]any) ([]reflect.Value, error) {
	numIn := fn.NumIn()

	// A trailing struct or map[string]any parameter receives the keyword
	// arguments. The variadic slot never does. With no keyword arguments
	// given, the sink still absorbs its slot (as a zero value) when the
	// positional arguments alone leave exactly one parameter unfilled.
	kwIndex := -1
	if len(kwargs) > 0 {
		if numIn == 0 {
			return nil, fmt.Errorf("function %v takes no parameters but keyword arguments were given", fn)
		}
		if fn.IsVariadic() {
			return nil, fmt.Errorf("variadic function %v does not accept keyword arguments", fn)
		}
		last := fn.In(numIn - 1)
		if last != reflect.TypeOf(map[string]any(nil)) && !isStructLike(last) {
			return nil, fmt.Errorf("function %v has no trailing struct parameter for keyword arguments", fn)
		}
		kwIndex = numIn - 1
	} else if !fn.IsVariadic() && numIn > 0 && len(args) == numIn-1 {
		// Pointer sinks are excluded here so a missing positional *T
		// argument fails loudly instead of arriving as an empty struct.
		last := fn.In(numIn - 1)
		if last == reflect.TypeOf(map[string]any(nil)) || last.Kind() == reflect.Struct {
			kwIndex = numIn - 1
		}
	}

	positionalSlots := numIn
	if kwIndex >= 0 {
		positionalSlots--
	}

	if fn.IsVariadic() {
		if len(args) < positionalSlots-1 {
			return nil, fmt.Errorf("function %v expects at least %d positional arguments, got %d",
				fn, positionalSlots-1, len(args))
		}
	} else if len(args) != positionalSlots {
		return nil, fmt.Errorf("function %v expects %d positional arguments, got %d",
			fn, positionalSlots, len(args))
	}

	in := make([]reflect.Value, 0, numIn)
	for i, arg := range args {
		var paramType reflect.Type
		if fn.IsVariadic() && i >= positionalSlots-1 {
			paramType = fn.In(numIn - 1).Elem()
		} else {
			paramType = fn.In(i)
		}

		val, err := coerce(arg, paramType)
		if err != nil {
			return nil, fmt.Errorf("positional argument %d: %w", i, err)
		}
		in = append(in, val)
	}

	if kwIndex >= 0 {
		kwVal, err := buildKeywordArgument(fn.In(kwIndex), kwargs)
		if err != nil {
			return nil, err
		}
		in = append(in, kwVal)
	}

	return in, nil
}

// buildKeywordArgument materializes the trailing parameter from kwargs:
// either a map[string]any passed through, or a struct populated field by
// field.
func buildKeywordArgument(paramType reflect.Type, kwargs map[string]any) (reflect.Value, error) {
	if paramType == reflect.TypeOf(map[string]any(nil)) {
		return reflect.ValueOf(kwargs), nil
	}

	structType := paramType
	isPtr := structType.Kind() == reflect.Pointer
	if isPtr {
		structType = structType.Elem()
	}

	ptr := reflect.New(structType)
	elem := ptr.Elem()

	for key, value := range kwargs {
		field, ok := fieldByKeyword(structType, key)
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown keyword argument %q for %v", key, structType)
		}

		fv, err := coerce(value, field.Type)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("keyword argument %q: %w", key, err)
		}
		elem.FieldByIndex(field.Index).Set(fv)
	}

	if isPtr {
		return ptr, nil
	}
	return elem, nil
}

// fieldByKeyword finds the exported struct field matching a keyword name,
// trying an exact match before a case-insensitive one.
func fieldByKeyword(structType reflect.Type, key string) (reflect.StructField, bool) {
	if f, ok := structType.FieldByName(key); ok && f.IsExported() {
		return f, true
	}

	f, ok := structType.FieldByNameFunc(func(name string) bool {
		return strings.EqualFold(name, key)
	})
	if ok && f.IsExported() {
		return f, true
	}
	return reflect.StructField{}, false
}

// coerce converts an argument to the parameter type, allowing nil for
// nilable parameters and assignable or convertible values otherwise.
func coerce(arg any, paramType reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch paramType.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return reflect.Zero(paramType), nil
		default:
			return reflect.Value{}, fmt.Errorf("cannot pass nil as %v", paramType)
		}
	}

	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(paramType) {
		return v, nil
	}
	if v.Type().ConvertibleTo(paramType) && convertible(v.Type(), paramType) {
		return v.Convert(paramType), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %v", arg, paramType)
}

// convertible limits reflect conversions to safe numeric widening and
// string-compatible cases so that, for example, an int argument satisfies
// an int64 parameter without letting a string silently become a byte
// slice of its contents when a typed []byte was wanted.
func convertible(from, to reflect.Type) bool {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		switch from.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return true
		}
	case reflect.String:
		return from.Kind() == reflect.String
	}
	return false
}

// splitResults converts the reflect call results into (value, error).
func splitResults(fn reflect.Type, out []reflect.Value) (any, error) {
	switch fn.NumOut() {
	case 0:
		return nil, nil
	case 1:
		if fn.Out(0) == errType {
			if !out[0].IsNil() {
				return nil, out[0].Interface().(error)
			}
			return nil, nil
		}
		return out[0].Interface(), nil
	default:
		if !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}
		return out[0].Interface(), nil
	}
}

func isStructLike(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}
