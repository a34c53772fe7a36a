// Package graph tracks the state of one in-flight resolution chain and
// reports reference cycles.
package graph

// Chain records the service names currently mid-build along a single
// resolution path. One Chain belongs to one top-level Get call and is
// threaded through recursive resolution; it is never shared between
// goroutines, so it needs no locking.
type Chain struct {
	names []string
	index map[string]int // name -> position in names
}

// NewChain creates an empty resolution chain.
func NewChain() *Chain {
	return &Chain{
		index: make(map[string]int),
	}
}

// Contains reports whether name is already mid-build on this chain.
func (c *Chain) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Push marks name as mid-build. The caller must have checked Contains first.
func (c *Chain) Push(name string) {
	c.index[name] = len(c.names)
	c.names = append(c.names, name)
}

// Pop removes the most recently pushed name.
func (c *Chain) Pop() {
	if len(c.names) == 0 {
		return
	}
	last := c.names[len(c.names)-1]
	c.names = c.names[:len(c.names)-1]
	delete(c.index, last)
}

// Len returns the number of names currently mid-build.
func (c *Chain) Len() int {
	return len(c.names)
}

// Cycle returns the ordered cycle path for name, starting at the first
// occurrence of name on the chain and closed by repeating it, e.g.
// [a b c a]. It returns nil if name is not on the chain.
func (c *Chain) Cycle(name string) []string {
	start, ok := c.index[name]
	if !ok {
		return nil
	}

	path := make([]string, 0, len(c.names)-start+1)
	path = append(path, c.names[start:]...)
	path = append(path, name)
	return path
}
