package injector

import (
	"log/slog"
	"sync"
)

// Container holds an ordered list of providers and a cache of resolved singletons.
// Lookups that find nothing locally are delegated to the parent container, if any.
//
// The provider list is replaced, never modified in place, so a snapshot of it is
// just the slice header. The lock is not held while constructors or factories run;
// a factory may look up other keys on the same container.
type Container struct {
	mu        sync.RWMutex
	providers []*Provider
	instances map[Key]any
	parent    *Container
	logger    *slog.Logger
	// gen counts provider list swaps; a value resolved under an older
	// generation is returned but not cached.
	gen uint64
}

// UndoFunc restores the provider list a registration replaced. It returns an
// UndoFunc that reverts the restoration itself.
type UndoFunc func() UndoFunc

// New builds a container from providers and bare classes. A bare class becomes a
// provider whose key and class are the class itself and whose dependencies are the
// ones the class declares. The container has no parent.
func New(entries ...Entry) (*Container, error) {
	return NewInjector(entries)
}

// MustNew is like New but panics if an entry is invalid.
func MustNew(entries ...Entry) *Container {
	c, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return c
}

// NewInjector builds a container from entries and applies opts.
// Returns NilKeyError if an entry has no key.
func NewInjector(entries []Entry, opts ...Option) (*Container, error) {
	providers, err := normalize(entries)
	if err != nil {
		return nil, err
	}

	c := &Container{
		providers: providers,
		instances: make(map[Key]any, len(providers)),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Child builds a container whose parent is c. The child shares c's logger.
func (c *Container) Child(entries ...Entry) (*Container, error) {
	return NewInjector(entries, WithParent(c), WithLogger(c.logger))
}

// Parent returns the container lookups are delegated to, or nil.
func (c *Container) Parent() *Container {
	return c.parent
}

// Get returns the cached value for key, resolving and caching it on first use.
// When the container itself cannot produce a value the lookup is delegated to the
// parent, which caches the value on its side.
//
// Returns ProviderNotFoundError (or EmptyProviderError) when no container in the
// chain produced a value, CircularDependencyError when the providers form a cycle
// and DependencyError wrapping such a cycle when it is reached through a
// dependency. A dependency without a provider is passed as nil.
func (c *Container) Get(key Key) (any, error) {
	if isNil(key) {
		return nil, &ProviderNotFoundError{Key: keyString(key)}
	}
	return c.get(key, nil)
}

func (c *Container) get(key Key, path resolutionPath) (any, error) {
	c.mu.RLock()
	inst, ok := c.instances[key]
	gen := c.gen
	c.mu.RUnlock()
	if ok {
		c.logger.Debug("injector: cache hit", "key", key.String())
		return inst, nil
	}

	inst, err := c.instanceOf(key, false, path)
	if err == nil {
		return c.store(key, inst, gen), nil
	}
	if !isMiss(err) {
		return nil, err
	}

	if c.parent != nil {
		c.logger.Debug("injector: delegating to parent", "key", key.String(), "op", "get")
		return c.parent.get(key, path)
	}
	return nil, err
}

// store caches inst unless a concurrent lookup cached a value first, in which
// case that value is returned. If the provider list changed since gen was read,
// inst may come from a replaced provider and is returned uncached.
func (c *Container) store(key Key, inst any, gen uint64) any {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		c.logger.Debug("injector: providers changed during resolution, not caching", "key", key.String())
		return inst
	}
	if existing, ok := c.instances[key]; ok {
		return existing
	}
	c.instances[key] = inst
	return inst
}

// InstanceOf resolves key without reading or writing the singleton cache. If the
// container has no provider for key and askParent is true, the parent is asked
// with the same flag. Dependencies are always resolved fresh and may come from
// ancestors.
func (c *Container) InstanceOf(key Key, askParent bool) (any, error) {
	if isNil(key) {
		return nil, &ProviderNotFoundError{Key: keyString(key)}
	}
	return c.instanceOf(key, askParent, nil)
}

func (c *Container) instanceOf(key Key, askParent bool, path resolutionPath) (any, error) {
	p := c.lookup(key)
	if p == nil {
		if askParent && c.parent != nil {
			c.logger.Debug("injector: delegating to parent", "key", key.String(), "op", "instanceOf")
			return c.parent.instanceOf(key, askParent, path)
		}
		return nil, &ProviderNotFoundError{Key: key.String()}
	}

	path, err := path.start(key, p)
	if err != nil {
		return nil, err
	}

	// A dependency nobody provides leaves its argument nil.
	args := make([]any, len(p.Deps))
	for i, dep := range p.Deps {
		if isNil(dep) {
			continue
		}
		v, err := c.instanceOf(dep, true, path)
		if err != nil {
			if isMiss(err) {
				c.logger.Debug("injector: dependency missing", "key", key.String(), "dependency", dep.String())
				continue
			}
			return nil, &DependencyError{Key: key.String(), Dependency: dep.String(), Err: err}
		}
		args[i] = v
	}

	inst, strategy, ok := invoke(key, p, args)
	if !ok {
		return nil, &EmptyProviderError{Key: key.String()}
	}
	c.logger.Debug("injector: resolved", "key", key.String(), "strategy", string(strategy))
	return inst, nil
}

// lookup returns the last registered provider for key, or nil.
func (c *Container) lookup(key Key) *Provider {
	c.mu.RLock()
	providers := c.providers
	c.mu.RUnlock()

	for i := len(providers) - 1; i >= 0; i-- {
		if providers[i].Provide == key {
			return providers[i]
		}
	}
	return nil
}

// Has reports whether a provider for key is registered in c or an ancestor.
func (c *Container) Has(key Key) bool {
	if isNil(key) {
		return false
	}
	for cur := c; cur != nil; cur = cur.parent {
		if cur.lookup(key) != nil {
			return true
		}
	}
	return false
}

// Keys returns the distinct keys registered in c, ordered by the position of
// their active provider.
func (c *Container) Keys() []Key {
	c.mu.RLock()
	providers := c.providers
	c.mu.RUnlock()

	active := activeProviders(providers)
	keys := make([]Key, 0, len(active))
	for _, p := range providers {
		if active[p.Provide] == p {
			keys = append(keys, p.Provide)
		}
	}
	return keys
}

// AddProviders registers providers on c and returns an undo action.
//
// With replace set, every existing provider whose key appears in providers is
// removed before providers are appended. Without it providers are only appended;
// the last registered provider for a key still wins. In both cases cached
// values for the incoming keys are evicted.
//
// Returns NilKeyError if a provider has no key; c is then left untouched.
func (c *Container) AddProviders(providers []Provider, replace bool) (UndoFunc, error) {
	incoming, err := normalizeProviders(providers)
	if err != nil {
		return nil, err
	}

	keys := make(map[Key]struct{}, len(incoming))
	for _, p := range incoming {
		keys[p.Provide] = struct{}{}
	}

	c.mu.Lock()
	snapshot := c.providers
	next := make([]*Provider, 0, len(snapshot)+len(incoming))
	for _, p := range snapshot {
		if _, ok := keys[p.Provide]; replace && ok {
			continue
		}
		next = append(next, p)
	}
	next = append(next, incoming...)
	c.providers = next
	c.gen++
	for k := range keys {
		delete(c.instances, k)
	}
	c.mu.Unlock()

	c.logger.Debug("injector: providers added", "count", len(incoming), "replace", replace)

	return func() UndoFunc {
		return c.restore(snapshot)
	}, nil
}

// restore puts target back as the provider list and evicts cached values of
// every key whose active provider changes.
func (c *Container) restore(target []*Provider) UndoFunc {
	c.mu.Lock()
	current := c.providers
	c.providers = target
	c.gen++
	changed := changedKeys(current, target)
	for _, k := range changed {
		delete(c.instances, k)
	}
	c.mu.Unlock()

	c.logger.Debug("injector: providers restored", "evicted", len(changed))

	return func() UndoFunc {
		return c.restore(current)
	}
}

// activeProviders maps every key to its last registered provider.
func activeProviders(providers []*Provider) map[Key]*Provider {
	active := make(map[Key]*Provider, len(providers))
	for _, p := range providers {
		active[p.Provide] = p
	}
	return active
}

func changedKeys(from, to []*Provider) []Key {
	before := activeProviders(from)
	after := activeProviders(to)

	var keys []Key
	for k, p := range before {
		if after[k] != p {
			keys = append(keys, k)
		}
	}
	for k := range after {
		if _, ok := before[k]; !ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// resolutionPath is the chain of providers being resolved by one lookup.
type resolutionPath []pathFrame

type pathFrame struct {
	key      Key
	provider *Provider
}

// start returns the path extended with p, or CircularDependencyError when p is
// already being resolved.
func (rp resolutionPath) start(key Key, p *Provider) (resolutionPath, error) {
	for i, f := range rp {
		if f.provider != p {
			continue
		}
		chain := make([]string, 0, len(rp)-i+1)
		for _, ff := range rp[i:] {
			chain = append(chain, ff.key.String())
		}
		chain = append(chain, key.String())
		return nil, &CircularDependencyError{Chain: chain}
	}

	next := make(resolutionPath, len(rp), len(rp)+1)
	copy(next, rp)
	return append(next, pathFrame{key: key, provider: p}), nil
}
