package container

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrNotBound is returned by MakeWith when nothing is registered for an abstract.
var ErrNotBound = errors.New("container: no binding registered")

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory builds a concrete value from the container. Parameters passed to
// MakeWith are available inside the factory through c.Parameter.
type Factory func(c *Container) any

type binding struct {
	factory   Factory
	singleton bool
}

// Extender decorates an already-resolved instance.
type Extender func(instance any, c *Container) any

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the IoC container, modelled on Laravel's Illuminate\Container\Container.
//
// It supports:
//   - Bind / Singleton / Instance / Alias
//   - Make / MakeWith / Resolve (generic)
//   - Tags and Extend
//   - AfterResolving callbacks
type Container struct {
	mu sync.RWMutex

	bindings  map[string]*binding
	instances map[string]any
	aliases   map[string]string
	extenders map[string][]Extender
	tags      map[string][]string

	afterResolving []func(string, any)

	// parameter overrides for the builds currently in flight (innermost last)
	with []map[string]any
}

// New creates a container with itself bound as "container".
func New() *Container {
	c := &Container{}
	c.reset()
	c.Instance("container", c)
	return c
}

func (c *Container) reset() {
	c.bindings = make(map[string]*binding)
	c.instances = make(map[string]any)
	c.aliases = make(map[string]string)
	c.extenders = make(map[string][]Extender)
	c.tags = make(map[string][]string)
	c.afterResolving = nil
	c.with = nil
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient factory; every Make builds a new value.
//
//	// Laravel: $app->bind(UserRepository::class, fn($app) => new EloquentUserRepository($app))
//	c.Bind("UserRepository", func(c *container.Container) any {
//	    return &EloquentUserRepository{}
//	})
func (c *Container) Bind(abstract string, factory Factory) {
	c.register(abstract, factory, false)
}

// Singleton registers a factory whose result is cached after first resolution.
//
//	// Laravel: $app->singleton(Cache::class, fn($app) => new RedisCache($app))
func (c *Container) Singleton(abstract string, factory Factory) {
	c.register(abstract, factory, true)
}

// Instance registers a pre-built value. It replaces any earlier binding.
//
//	// Laravel: $app->instance(Config::class, $config)
func (c *Container) Instance(abstract string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	c.instances[key] = instance
}

func (c *Container) register(abstract string, factory Factory, singleton bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	// a cached singleton from an earlier factory must not outlive the rebind
	delete(c.instances, key)
	c.bindings[key] = &binding{factory: factory, singleton: singleton}
}

// Alias registers an alternative name for an abstract.
//
//	// Laravel: $app->alias(Cache::class, 'cache')
func (c *Container) Alias(abstract, alias string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if abstract == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", abstract))
	}
	c.aliases[alias] = c.canonical(abstract)
}

// ── Extend ────────────────────────────────────────────────────────────────────

// Extend decorates the resolved instance of an abstract. A singleton that is
// already resolved is decorated in place.
//
//	// Laravel: $app->extend(Logger::class, fn($logger, $app) => new TimestampLogger($logger))
func (c *Container) Extend(abstract string, fn Extender) {
	c.mu.Lock()
	key := c.canonical(abstract)
	c.extenders[key] = append(c.extenders[key], fn)
	inst, resolved := c.instances[key]
	c.mu.Unlock()

	if resolved {
		extended := fn(inst, c)
		c.mu.Lock()
		c.instances[key] = extended
		c.mu.Unlock()
	}
}

// ── Tags ──────────────────────────────────────────────────────────────────────

// Tag associates multiple abstracts under a named group.
//
//	// Laravel: $app->tag([CpuReport::class, MemoryReport::class], 'reports')
func (c *Container) Tag(abstracts []string, tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags[tag] = append(c.tags[tag], abstracts...)
}

// Tagged resolves every abstract registered under a tag, in tagging order.
func (c *Container) Tagged(tag string) []any {
	c.mu.RLock()
	abstracts := append([]string(nil), c.tags[tag]...)
	c.mu.RUnlock()

	out := make([]any, 0, len(abstracts))
	for _, abs := range abstracts {
		out = append(out, c.Make(abs))
	}
	return out
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves an abstract and panics when it is not bound.
//
//	// Laravel: $app->make(UserRepository::class)
func (c *Container) Make(abstract string) any {
	v, err := c.MakeWith(abstract, nil)
	if err != nil {
		panic(err.Error())
	}
	return v
}

// MakeWith resolves an abstract, exposing params to the factory for the
// duration of the build. Parameterised builds never read or populate the
// singleton cache, matching Laravel's makeWith.
//
//	// Laravel: $app->makeWith(ReportBuilder::class, ['year' => 2024])
//	v, err := c.MakeWith("report", map[string]any{"year": 2024})
func (c *Container) MakeWith(abstract string, params map[string]any) (any, error) {
	key := c.canonicalRead(abstract)
	contextual := len(params) > 0

	c.mu.RLock()
	inst, cached := c.instances[key]
	b, bound := c.bindings[key]
	c.mu.RUnlock()

	if cached && !(contextual && bound) {
		return inst, nil
	}
	if !bound {
		return nil, fmt.Errorf("%w for [%s]", ErrNotBound, abstract)
	}

	instance := c.build(key, b.factory, params)
	if b.singleton && !contextual {
		c.mu.Lock()
		c.instances[key] = instance
		c.mu.Unlock()
	}
	c.fireAfterResolving(key, instance)
	return instance, nil
}

func (c *Container) build(key string, f Factory, params map[string]any) any {
	c.mu.Lock()
	c.with = append(c.with, params)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.with = c.with[:len(c.with)-1]
		c.mu.Unlock()
	}()

	instance := f(c)

	c.mu.RLock()
	exts := append([]Extender(nil), c.extenders[key]...)
	c.mu.RUnlock()
	for _, ext := range exts {
		instance = ext(instance, c)
	}
	return instance
}

// Parameter returns a parameter passed to the innermost MakeWith call.
// Only meaningful inside a factory.
func (c *Container) Parameter(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.with) == 0 {
		return nil, false
	}
	v, ok := c.with[len(c.with)-1][name]
	return v, ok
}

func (c *Container) currentParams() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.with) == 0 {
		return nil
	}
	return c.with[len(c.with)-1]
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound reports whether an abstract has a binding or an instance.
//
//	// Laravel: $app->bound(UserRepository::class)
func (c *Container) Bound(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(abstract)
	_, hasBinding := c.bindings[key]
	_, hasInstance := c.instances[key]
	return hasBinding || hasInstance
}

// Has is the PSR-11 name for Bound.
func (c *Container) Has(abstract string) bool { return c.Bound(abstract) }

// Resolved reports whether the abstract holds a resolved instance.
func (c *Container) Resolved(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[c.canonical(abstract)]
	return ok
}

// Forget removes the binding and the instance of an abstract.
//
//	// Laravel: $app->forgetInstance(Cache::class)
func (c *Container) Forget(abstract string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	delete(c.instances, key)
}

// Flush resets the entire container, including its self binding.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// Bindings returns every registered abstract key.
func (c *Container) Bindings() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.bindings)+len(c.instances))
	for k := range c.bindings {
		out = append(out, k)
	}
	for k := range c.instances {
		if _, dup := c.bindings[k]; !dup {
			out = append(out, k)
		}
	}
	return out
}

// canonical resolves an alias; callers hold mu.
func (c *Container) canonical(abstract string) string {
	if target, ok := c.aliases[abstract]; ok {
		return target
	}
	return abstract
}

func (c *Container) canonicalRead(abstract string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.canonical(abstract)
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// AfterResolving registers a callback fired after any factory build.
//
//	// Laravel: $app->afterResolving(fn($object, $app) => ...)
func (c *Container) AfterResolving(cb func(abstract string, instance any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterResolving = append(c.afterResolving, cb)
}

func (c *Container) fireAfterResolving(abstract string, instance any) {
	c.mu.RLock()
	cbs := append([]func(string, any){}, c.afterResolving...)
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(abstract, instance)
	}
}

// ── Reflect helpers ───────────────────────────────────────────────────────────

// TypeKey returns the package-qualified type name of v, useful as a stable
// abstract key for interfaces and pointer types.
//
//	key := container.TypeKey((*UserRepository)(nil))  // "example.com/app.UserRepository"
func TypeKey(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve calls Make and type-asserts the result, panicking on mismatch.
//
//	db := container.Resolve[*sql.DB](c, "db")
func Resolve[T any](c *Container, abstract string) T {
	instance := c.Make(abstract)
	typed, ok := instance.(T)
	if !ok {
		panic(fmt.Sprintf("container: Resolve[%T]: [%s] resolved to %T", *new(T), abstract, instance))
	}
	return typed
}

// TryResolve is like Resolve but reports failure instead of panicking.
func TryResolve[T any](c *Container, abstract string) (T, bool) {
	var zero T
	instance, err := c.MakeWith(abstract, nil)
	if err != nil {
		return zero, false
	}
	typed, ok := instance.(T)
	return typed, ok
}
