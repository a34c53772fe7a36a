package reflection

import (
	"fmt"
	"reflect"
)

// Attr looks up a named attribute on value: a method (on the value or its
// pointer), an exported struct field, or a string-keyed map entry. This is
// how the loader walks the trailing segments of a dotted symbol path.
func Attr(value any, name string) (any, error) {
	if value == nil {
		return nil, fmt.Errorf("cannot access %q on nil", name)
	}

	v := reflect.ValueOf(value)

	if m := v.MethodByName(name); m.IsValid() {
		return m.Interface(), nil
	}

	elem := v
	for elem.Kind() == reflect.Pointer {
		if elem.IsNil() {
			return nil, fmt.Errorf("cannot access %q on nil %v", name, elem.Type())
		}
		elem = elem.Elem()
	}

	switch elem.Kind() {
	case reflect.Struct:
		f := elem.FieldByName(name)
		if f.IsValid() && f.CanInterface() {
			return f.Interface(), nil
		}
	case reflect.Map:
		if elem.Type().Key().Kind() == reflect.String {
			entry := elem.MapIndex(reflect.ValueOf(name).Convert(elem.Type().Key()))
			if entry.IsValid() {
				return entry.Interface(), nil
			}
		}
	}

	return nil, fmt.Errorf("%v has no attribute %q", v.Type(), name)
}
