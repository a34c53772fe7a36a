package switchboard

import "fmt"

// resolveValue recursively walks a raw definition, substituting references
// with built instances and invoking factories, while composites keep their
// structural shape. The resolution state carries the names mid-build on
// this path for cycle detection.
func (c *Container) resolveValue(raw any, res *resolution) (any, error) {
	switch v := raw.(type) {
	case string:
		if decoded, ok := unescape(v); ok {
			return decoded, nil
		}
		if name, ok := referenceName(v); ok {
			return c.get(name, res)
		}
		return v, nil

	case map[string]any:
		if _, ok := v[c.factoryKey]; ok {
			return c.invokeFactory(v, res)
		}
		resolved := make(map[string]any, len(v))
		for key, value := range v {
			r, err := c.resolveValue(value, res)
			if err != nil {
				return nil, err
			}
			resolved[key] = r
		}
		return resolved, nil

	case []any:
		resolved := make([]any, len(v))
		for i, item := range v {
			r, err := c.resolveValue(item, res)
			if err != nil {
				return nil, err
			}
			resolved[i] = r
		}
		return resolved, nil

	default:
		return raw, nil
	}
}

// invokeFactory resolves a factory-invocation mapping: the reserved key
// holds either a symbol path (no positional arguments) or a sequence of
// the path followed by positional arguments; every other key is a keyword
// argument. Arguments may themselves contain references or nested
// invocations and are fully resolved before the call.
func (c *Container) invokeFactory(def map[string]any, res *resolution) (any, error) {
	slot := def[c.factoryKey]

	var rawArgs []any
	if seq, ok := slot.([]any); ok {
		if len(seq) == 0 {
			return nil, ConfigError{
				Source: fmt.Sprintf("factory key %q", c.factoryKey),
				Reason: "empty invocation sequence",
			}
		}
		slot = seq[0]
		rawArgs = seq[1:]
	}

	// The factory slot itself may be a reference; resolve it before
	// deciding whether it still needs a symbol lookup.
	target, err := c.resolveValue(slot, res)
	if err != nil {
		return nil, err
	}

	inv, factoryName, err := c.invocableFor(target)
	if err != nil {
		return nil, err
	}

	args := make([]any, len(rawArgs))
	for i, rawArg := range rawArgs {
		if args[i], err = c.resolveValue(rawArg, res); err != nil {
			return nil, err
		}
	}

	kwargs := make(map[string]any, len(def)-1)
	for key, rawValue := range def {
		if key == c.factoryKey {
			continue
		}
		if kwargs[key], err = c.resolveValue(rawValue, res); err != nil {
			return nil, err
		}
	}

	result, err := inv.Invoke(args, kwargs)
	if err != nil {
		return nil, FactoryError{Factory: factoryName, Cause: err}
	}
	return result, nil
}

// invocableFor turns a resolved factory slot into something callable: a
// string goes through the symbol resolver, anything already invocable is
// used directly.
func (c *Container) invocableFor(target any) (Invocable, string, error) {
	switch t := target.(type) {
	case string:
		inv, err := c.symbols.Resolve(t)
		if err != nil {
			return nil, "", err
		}
		return inv, t, nil
	case Invocable:
		return t, fmt.Sprintf("%T", t), nil
	case func(args []any, kwargs map[string]any) (any, error):
		return InvocableFunc(t), fmt.Sprintf("%T", target), nil
	default:
		return nil, "", ConfigError{
			Source: fmt.Sprintf("factory key %q", c.factoryKey),
			Reason: fmt.Sprintf("value of type %T is neither a symbol path nor invocable", target),
		}
	}
}
