package testbench

import (
	"fmt"
	"sort"
	"sync"
)

// ServiceContainer is the registry a TestApplication owns. It is implemented
// by SimpleContainer and by the framework container adapter.
type ServiceContainer interface {
	Bind(id string, concrete any)
	Singleton(id string, concrete any)
	Instance(id string, value any)
	Has(id string) bool
	Resolve(id string, params map[string]any) (any, error)
}

// Flusher is implemented by containers that can be emptied.
type Flusher interface {
	Flush()
}

// SimpleContainer is the fallback registry used without the framework.
// Every entry is a pre-built value: Bind, Singleton and Instance all store
// concrete as given and Resolve returns it untouched, ignoring params.
type SimpleContainer struct {
	mu       sync.RWMutex
	bindings map[string]any
}

// NewSimpleContainer returns an empty SimpleContainer.
func NewSimpleContainer() *SimpleContainer {
	return &SimpleContainer{bindings: make(map[string]any)}
}

func (c *SimpleContainer) Bind(id string, concrete any)      { c.set(id, concrete) }
func (c *SimpleContainer) Singleton(id string, concrete any) { c.set(id, concrete) }
func (c *SimpleContainer) Instance(id string, value any)     { c.set(id, value) }

func (c *SimpleContainer) set(id string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings[id] = v
}

// Has reports whether id is bound.
func (c *SimpleContainer) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bindings[id]
	return ok
}

// Resolve returns the value bound to id, or ErrServiceNotFound.
func (c *SimpleContainer) Resolve(id string, _ map[string]any) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.bindings[id]
	if !ok {
		return nil, fmt.Errorf("%w: [%s]", ErrServiceNotFound, id)
	}
	return v, nil
}

// Flush removes every binding.
func (c *SimpleContainer) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings = make(map[string]any)
}

// Keys returns the bound identifiers, sorted.
func (c *SimpleContainer) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.bindings))
	for k := range c.bindings {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
