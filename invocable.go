package switchboard

// Invocable is the single capability contract for factory targets. Whether
// the underlying target is a plain function, a bound method, or a closure
// produced elsewhere, the engine only ever calls it with resolved
// positional arguments followed by resolved keyword arguments.
type Invocable interface {
	Invoke(args []any, kwargs map[string]any) (any, error)
}

// InvocableFunc adapts a function to the Invocable interface.
type InvocableFunc func(args []any, kwargs map[string]any) (any, error)

func (f InvocableFunc) Invoke(args []any, kwargs map[string]any) (any, error) {
	return f(args, kwargs)
}

// SymbolResolver resolves a dotted symbol path to an invocable target. The
// container depends on this contract only, so tests can substitute a
// deterministic fake for the default Registry.
type SymbolResolver interface {
	Resolve(path string) (Invocable, error)
}
