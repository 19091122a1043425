// Package container provides a Laravel-compatible IoC container and
// Service Provider system for Go.
//
// Because Go has no runtime constructor reflection, auto-wiring is replaced
// by explicit factory functions.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&MyProvider{})
//  3. Boot: registry.Boot()        — safe to resolve everything after this
//
// # Bindings
//
//	// Transient — new instance every Make()
//	c.Bind("Foo", func(c *container.Container) any { return &Foo{} })
//
//	// Singleton — created once, reused
//	c.Singleton("cache", func(c *container.Container) any { return cache.NewMemory() })
//
//	// Pre-built value
//	c.Instance("config", myConfig)
//
//	// Alias
//	c.Alias("cache", "cacheManager")
//
// # Resolving
//
//	raw := c.Make("cache")                         // panics when unbound
//	v, err := c.MakeWith("report", map[string]any{"year": 2024})
//	cache := container.Resolve[*MemoryCache](c, "cache")
//
// Factories read MakeWith parameters through c.Parameter:
//
//	c.Bind("report", func(c *container.Container) any {
//	    year, _ := c.Parameter("year")
//	    return &Report{Year: year.(int)}
//	})
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) {
//	    app.Singleton("mailer", func(c *container.Container) any { return mail.NewLog() })
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
//
// Providers are deduplicated by ProviderName, which is the Go type name
// unless the provider implements NamedProvider. RegisterProviderType adds a
// provider to the catalog so it can be registered by name.
//
// # Deferred Providers
//
//	type HeavyProvider struct{ container.BaseProvider }
//
//	func (p *HeavyProvider) IsDeferred() bool   { return true }
//	func (p *HeavyProvider) Provides() []string { return []string{"heavy"} }
package container
