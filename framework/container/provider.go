package container

import "fmt"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider mirrors Laravel's Illuminate\Support\ServiceProvider.
//
// Register binds services; Boot runs after every provider has been
// registered, so it is safe to resolve other bindings there.
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) {
//	    app.Singleton("clock", func(c *container.Container) any { return clock.Real{} })
//	}
type ServiceProvider interface {
	Register(app *Container)
	Boot(app *Container)

	// Provides lists the abstracts a deferred provider registers.
	Provides() []string

	// IsDeferred defers Register until one of Provides() is first resolved.
	IsDeferred() bool
}

// NamedProvider lets a provider choose its own identifier instead of its
// Go type name.
type NamedProvider interface {
	ProviderName() string
}

// ProviderName returns the identifier used to deduplicate p.
func ProviderName(p ServiceProvider) string {
	if n, ok := p.(NamedProvider); ok {
		return n.ProviderName()
	}
	return TypeKey(p)
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider provides no-op Boot, Provides and IsDeferred. Embed it and
// implement Register.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container)  {}
func (p *BaseProvider) Provides() []string { return nil }
func (p *BaseProvider) IsDeferred() bool   { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers and boots ServiceProviders in registration
// order, mirroring Application::register and Application::boot.
type ProviderRegistry struct {
	app      *Container
	eager    []ServiceProvider
	names    []string
	seen     map[string]bool
	deferred map[string]ServiceProvider // abstract → provider
	loaded   map[string]bool            // deferred providers already registered
	booted   bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:      app,
		seen:     make(map[string]bool),
		deferred: make(map[string]ServiceProvider),
		loaded:   make(map[string]bool),
	}
}

// Register adds a provider and calls its Register method unless it is
// deferred. A provider whose name was already registered is ignored.
// Registering after Boot boots the provider immediately.
//
//	// Laravel: $app->register(AppServiceProvider::class)
func (r *ProviderRegistry) Register(provider ServiceProvider) bool {
	if provider == nil {
		return false
	}
	name := ProviderName(provider)
	if r.seen[name] {
		return false
	}
	r.seen[name] = true
	r.names = append(r.names, name)

	if provider.IsDeferred() {
		for _, abstract := range provider.Provides() {
			r.deferred[abstract] = provider
			r.intercept(abstract, provider)
		}
		return true
	}

	provider.Register(r.app)
	r.eager = append(r.eager, provider)
	if r.booted {
		provider.Boot(r.app)
	}
	return true
}

// intercept binds a placeholder that loads the deferred provider on first use.
func (r *ProviderRegistry) intercept(abstract string, provider ServiceProvider) {
	r.app.Bind(abstract, func(c *Container) any {
		params := c.currentParams()
		r.load(provider)
		v, err := c.MakeWith(abstract, params)
		if err != nil {
			panic(fmt.Sprintf("container: deferred provider %s did not register [%s]",
				ProviderName(provider), abstract))
		}
		return v
	})
}

func (r *ProviderRegistry) load(provider ServiceProvider) {
	name := ProviderName(provider)
	if r.loaded[name] {
		return
	}
	r.loaded[name] = true
	for _, abstract := range provider.Provides() {
		delete(r.deferred, abstract)
		r.app.Forget(abstract)
	}
	provider.Register(r.app)
	if r.booted {
		provider.Boot(r.app)
	}
}

// Boot calls Boot on every eager provider in registration order. Calling it
// again is a no-op.
//
//	// Laravel: $app->boot()
func (r *ProviderRegistry) Boot() {
	if r.booted {
		return
	}
	r.booted = true
	for _, provider := range r.eager {
		provider.Boot(r.app)
	}
}

// Booted reports whether Boot has run.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns the eager providers in registration order.
func (r *ProviderRegistry) Providers() []ServiceProvider {
	return append([]ServiceProvider(nil), r.eager...)
}

// Names returns every registered provider name, deferred ones included.
func (r *ProviderRegistry) Names() []string { return append([]string(nil), r.names...) }

// Registered reports whether a provider with this name was registered.
func (r *ProviderRegistry) Registered(name string) bool { return r.seen[name] }

// Deferred returns the abstracts still waiting on a deferred provider.
func (r *ProviderRegistry) Deferred() []string {
	out := make([]string, 0, len(r.deferred))
	for abstract := range r.deferred {
		out = append(out, abstract)
	}
	return out
}
