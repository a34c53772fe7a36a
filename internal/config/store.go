// Package config holds the layered raw-definition store backing a
// container. It knows nothing about references or factories; values are
// opaque until the resolution engine classifies them.
package config

import (
	"sort"
	"sync"
)

// Store maps service names to their raw, unresolved definitions. Later
// documents override earlier ones per name with a whole-value replace;
// definitions are never deep-merged.
type Store struct {
	mu          sync.RWMutex
	definitions map[string]any
}

// NewStore creates an empty definition store.
func NewStore() *Store {
	return &Store{
		definitions: make(map[string]any),
	}
}

// Load merges an ordered sequence of documents. Within one call, later
// documents win per name, matching the semantics of repeated Load calls.
func (s *Store) Load(docs ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range docs {
		for name, raw := range doc {
			s.definitions[name] = raw
		}
	}
}

// Assign installs one raw definition, replacing any prior entry.
func (s *Store) Assign(name string, raw any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.definitions[name] = raw
}

// Lookup returns the raw definition for name.
func (s *Store) Lookup(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.definitions[name]
	return raw, ok
}

// Contains reports whether a definition exists for name.
func (s *Store) Contains(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.definitions[name]
	return ok
}

// Names returns every defined service name in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.definitions))
	for name := range s.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of defined names.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.definitions)
}
