package switchboard

import "sync"

// instanceCache provides thread-safe storage for built instances. In the
// steady state an entry is written at most once per name.
type instanceCache struct {
	mu        sync.RWMutex
	instances map[string]any
}

func newInstanceCache() *instanceCache {
	return &instanceCache{
		instances: make(map[string]any),
	}
}

func (c *instanceCache) get(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	instance, ok := c.instances[name]
	return instance, ok
}

func (c *instanceCache) set(name string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances[name] = instance
}

func (c *instanceCache) delete(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.instances, name)
}

func (c *instanceCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.instances = make(map[string]any)
}

func (c *instanceCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.instances)
}
