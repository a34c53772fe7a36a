package switchboard

import (
	"fmt"
	"strings"
	"sync"

	"github.com/switchboard-dev/switchboard/internal/reflection"
)

// Registry is the default SymbolResolver: a table of named symbols
// registered by the application. Go has no runtime module loading, so the
// dotted paths that a dynamic runtime would import are instead registered
// up front; path segments beyond the longest registered prefix are
// traversed reflectively (method, struct field, or map entry), which keeps
// paths like "store.users.Find" working against a single registered root.
//
// Resolved invocables are cached per path, so each distinct path costs one
// lookup-and-adapt for the registry's lifetime.
type Registry struct {
	mu      sync.RWMutex
	symbols map[string]any

	cacheMu sync.RWMutex
	cache   map[string]Invocable
}

// NewRegistry creates an empty symbol registry.
func NewRegistry() *Registry {
	return &Registry{
		symbols: make(map[string]any),
		cache:   make(map[string]Invocable),
	}
}

// Register installs a symbol under a dotted path. The target may be an
// Invocable, any Go function, or a plain value whose attributes are
// addressed by longer paths. Registering a path again replaces the symbol
// and drops any cached invocables below it.
func (r *Registry) Register(path string, target any) {
	r.mu.Lock()
	r.symbols[path] = target
	r.mu.Unlock()

	r.cacheMu.Lock()
	for cached := range r.cache {
		if cached == path || strings.HasPrefix(cached, path+".") {
			delete(r.cache, cached)
		}
	}
	r.cacheMu.Unlock()
}

// RegisterAll installs every symbol in the map.
func (r *Registry) RegisterAll(symbols map[string]any) {
	for path, target := range symbols {
		r.Register(path, target)
	}
}

// Resolve implements SymbolResolver.
func (r *Registry) Resolve(path string) (Invocable, error) {
	r.cacheMu.RLock()
	if inv, ok := r.cache[path]; ok {
		r.cacheMu.RUnlock()
		return inv, nil
	}
	r.cacheMu.RUnlock()

	target, err := r.locate(path)
	if err != nil {
		return nil, err
	}

	inv, err := adaptTarget(target)
	if err != nil {
		return nil, LoadError{Path: path, Cause: err}
	}

	r.cacheMu.Lock()
	r.cache[path] = inv
	r.cacheMu.Unlock()
	return inv, nil
}

// locate finds the registered symbol for path: an exact match first, then
// the longest registered prefix at a dot boundary with the remaining
// segments traversed as attributes.
func (r *Registry) locate(path string) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if target, ok := r.symbols[path]; ok {
		return target, nil
	}

	unit := path
	for {
		dot := strings.LastIndexByte(unit, '.')
		if dot < 0 {
			return nil, LoadError{Path: path, Cause: ErrSymbolUnknown}
		}
		unit = unit[:dot]

		root, ok := r.symbols[unit]
		if !ok {
			continue
		}

		target := root
		for _, attr := range strings.Split(path[dot+1:], ".") {
			var err error
			target, err = reflection.Attr(target, attr)
			if err != nil {
				return nil, LoadError{Path: path, Cause: err}
			}
		}
		return target, nil
	}
}

// adaptTarget normalizes a located symbol to the Invocable contract.
func adaptTarget(target any) (Invocable, error) {
	switch t := target.(type) {
	case Invocable:
		return t, nil
	case func(args []any, kwargs map[string]any) (any, error):
		return InvocableFunc(t), nil
	}

	fn, err := reflection.Adapt(target)
	if err != nil {
		return nil, fmt.Errorf("not invocable: %w", err)
	}
	return InvocableFunc(fn), nil
}
