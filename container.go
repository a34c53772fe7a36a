package switchboard

import (
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/switchboard-dev/switchboard/internal/config"
	"github.com/switchboard-dev/switchboard/internal/graph"
)

// Container resolves named services from layered declarative definitions.
// Services are built lazily on first Get, memoized as singletons per name,
// and wired together through bracketed references embedded in their
// definitions.
//
// A Container is safe for concurrent use. Get blocks a caller only while
// another goroutine is building the same name; unrelated names build
// independently behind per-name locks.
type Container struct {
	id         string
	factoryKey string

	store    *config.Store
	registry *Registry
	symbols  SymbolResolver
	cache    *instanceCache

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	buildMu  sync.Mutex
	builders map[string]*resolution // name -> resolution holding its lock

	logger *zap.Logger
}

// resolution is the per-Get state threaded through recursive resolution:
// the chain of names mid-build on this path, plus the name the resolution
// is currently blocked on. The waiting field is published in
// Container.builders bookkeeping so concurrent resolutions can spot a wait
// cycle before deadlocking on each other's name locks.
type resolution struct {
	chain   *graph.Chain
	waiting string // guarded by Container.buildMu
}

// New creates an empty container. By default the factory key is ":" and
// symbols resolve through the container's own Registry.
func New(opts ...Option) *Container {
	c := &Container{
		id:         uuid.NewString(),
		factoryKey: DefaultFactoryKey,
		store:      config.NewStore(),
		registry:   NewRegistry(),
		cache:      newInstanceCache(),
		locks:      make(map[string]*sync.Mutex),
		builders:   make(map[string]*resolution),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt.apply(c)
	}

	if c.symbols == nil {
		c.symbols = c.registry
	}
	c.logger = c.logger.With(zap.String("container", c.id))

	return c
}

// ID returns the container's unique identifier, also present on its log
// entries.
func (c *Container) ID() string {
	return c.id
}

// Load merges an ordered sequence of definition documents. Later
// documents override earlier ones per name with a whole-value replace.
// Loading never rebuilds instances that are already cached.
func (c *Container) Load(docs ...map[string]any) {
	c.store.Load(docs...)
	c.logger.Debug("documents loaded", zap.Int("documents", len(docs)))
}

// Set installs or overwrites one raw definition. A cached instance built
// from a previous definition is left untouched; use Forget to force a
// rebuild.
func (c *Container) Set(name string, raw any) {
	c.store.Assign(name, raw)
}

// Register installs a factory symbol under a dotted path in the
// container's built-in registry. When a custom SymbolResolver was injected
// with WithSymbolResolver, that resolver is consulted instead and
// registered symbols are ignored.
func (c *Container) Register(path string, target any) {
	c.registry.Register(path, target)
}

// RegisterAll installs every symbol in the map.
func (c *Container) RegisterAll(symbols map[string]any) {
	c.registry.RegisterAll(symbols)
}

// Contains reports whether a definition exists for name.
func (c *Container) Contains(name string) bool {
	return c.store.Contains(name)
}

// Names returns every defined service name in sorted order.
func (c *Container) Names() []string {
	return c.store.Names()
}

// Classify tags a raw definition using the container's factory key.
func (c *Container) Classify(raw any) Kind {
	return classify(raw, c.factoryKey)
}

// Get returns the built instance for name, constructing it and every
// dependency reachable through references on first access. Repeated calls
// return the identical instance.
func (c *Container) Get(name string) (any, error) {
	return c.get(name, &resolution{chain: graph.NewChain()})
}

// MustGet is Get, panicking on error. Intended for program start-up paths
// where a misconfigured container is fatal anyway.
func (c *Container) MustGet(name string) any {
	instance, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return instance
}

// get is the per-name state machine: cache check, cycle guard, per-name
// lock, double-checked cache, then classify-and-resolve.
func (c *Container) get(name string, res *resolution) (any, error) {
	if instance, ok := c.cache.get(name); ok {
		return instance, nil
	}

	if res.chain.Contains(name) {
		return nil, CycleError{Chain: res.chain.Cycle(name)}
	}

	// Publish the intent to block on name's lock before actually
	// blocking. A cycle entered from several goroutines at once never
	// accumulates on any single chain, so it is caught here instead, on
	// the wait-for graph of in-flight resolutions.
	if err := c.announceWait(name, res); err != nil {
		return nil, err
	}

	res.chain.Push(name)
	defer res.chain.Pop()

	// The per-name lock gives the exactly-once-build guarantee while
	// leaving unrelated names free to build concurrently.
	lock := c.nameLock(name)
	lock.Lock()
	c.claimBuild(name, res)
	defer func() {
		c.releaseBuild(name)
		lock.Unlock()
	}()

	if instance, ok := c.cache.get(name); ok {
		return instance, nil
	}

	raw, ok := c.store.Lookup(name)
	if !ok {
		return nil, NotFoundError{Name: name}
	}

	start := time.Now()
	instance, err := c.resolveValue(raw, res)
	if err != nil {
		c.logger.Debug("build failed",
			zap.String("service", name),
			zap.Error(err))
		return nil, ResolutionError{Name: name, Cause: err}
	}

	c.cache.set(name, instance)
	c.logger.Debug("service built",
		zap.String("service", name),
		zap.Duration("elapsed", time.Since(start)))
	return instance, nil
}

// ResolveAll eagerly builds every defined service, in sorted name order,
// stopping at the first failure. Names already built stay cached. Call it
// to pay the start-up cost up front and to surface configuration errors
// before serving traffic.
func (c *Container) ResolveAll() error {
	for _, name := range c.store.Names() {
		if _, err := c.Get(name); err != nil {
			return err
		}
	}
	c.logger.Debug("all services resolved", zap.Int("services", c.cache.len()))
	return nil
}

// Forget drops the cached instance for name, so the next Get rebuilds it
// from the current definition. Instances that already hold a reference to
// the forgotten one keep using it.
func (c *Container) Forget(name string) {
	c.cache.delete(name)
}

// Expire drops every cached instance.
func (c *Container) Expire() {
	c.cache.clear()
}

// announceWait records that res is about to block on name's lock, after
// checking that doing so cannot deadlock. Every resolution that holds a
// name lock is listed in c.builders, and a blocked resolution publishes
// the name it waits on; following owner-to-waited-on edges from name back
// to res closes a wait cycle, which is reported as a reference cycle. The
// detection is complete because edges only appear under buildMu, so the
// resolution adding the closing edge always sees the rest of the loop.
func (c *Container) announceWait(name string, res *resolution) error {
	c.buildMu.Lock()
	defer c.buildMu.Unlock()

	path := []string{name}
	next := name
	for {
		owner := c.builders[next]
		if owner == nil {
			break
		}
		if owner == res {
			return CycleError{Chain: append(path, name)}
		}
		if owner.waiting == "" {
			break
		}
		next = owner.waiting
		path = append(path, next)
	}

	res.waiting = name
	return nil
}

// claimBuild marks res as the holder of name's lock and clears its
// published wait.
func (c *Container) claimBuild(name string, res *resolution) {
	c.buildMu.Lock()
	res.waiting = ""
	c.builders[name] = res
	c.buildMu.Unlock()
}

// releaseBuild must run before the name lock is released, so a successor
// never observes a stale owner.
func (c *Container) releaseBuild(name string) {
	c.buildMu.Lock()
	delete(c.builders, name)
	c.buildMu.Unlock()
}

func (c *Container) nameLock(name string) *sync.Mutex {
	c.locksMu.Lock()
	defer c.locksMu.Unlock()

	lock, ok := c.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[name] = lock
	}
	return lock
}

// Resolve builds the named service and asserts it to T.
func Resolve[T any](c *Container, name string) (T, error) {
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
}
