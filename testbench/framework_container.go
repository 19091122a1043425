package testbench

import (
	"errors"
	"fmt"

	"github.com/km-arc/go-laravel-testbench/framework/container"
)

// FrameworkContainer adapts the framework IoC container to ServiceContainer.
//
// Bind and Singleton accept a container.Factory, a func(*container.Container) any,
// a func() any, or a plain value; plain values are wrapped in a factory that
// returns them.
type FrameworkContainer struct {
	c *container.Container
}

// NewFrameworkContainer wraps c.
func NewFrameworkContainer(c *container.Container) *FrameworkContainer {
	return &FrameworkContainer{c: c}
}

// Unwrap returns the framework container.
func (f *FrameworkContainer) Unwrap() *container.Container { return f.c }

func (f *FrameworkContainer) Bind(id string, concrete any)      { f.c.Bind(id, factoryOf(concrete)) }
func (f *FrameworkContainer) Singleton(id string, concrete any) { f.c.Singleton(id, factoryOf(concrete)) }
func (f *FrameworkContainer) Instance(id string, value any)     { f.c.Instance(id, value) }
func (f *FrameworkContainer) Has(id string) bool                { return f.c.Has(id) }
func (f *FrameworkContainer) Flush()                            { f.c.Flush() }

// Resolve delegates to MakeWith. A missing binding matches both
// ErrServiceNotFound and container.ErrNotBound.
func (f *FrameworkContainer) Resolve(id string, params map[string]any) (any, error) {
	v, err := f.c.MakeWith(id, params)
	if errors.Is(err, container.ErrNotBound) {
		return nil, fmt.Errorf("%w: %w", ErrServiceNotFound, err)
	}
	return v, err
}

func factoryOf(concrete any) container.Factory {
	switch fn := concrete.(type) {
	case container.Factory:
		return fn
	case func(*container.Container) any:
		return fn
	case func() any:
		return func(*container.Container) any { return fn() }
	default:
		return func(*container.Container) any { return concrete }
	}
}
