package testbench

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/km-arc/go-laravel-testbench/framework/app"
	"github.com/km-arc/go-laravel-testbench/framework/config"
	"github.com/km-arc/go-laravel-testbench/framework/container"
	"github.com/km-arc/go-laravel-testbench/internal/logging"
)

// Options configures Create.
type Options struct {
	// Backend picks the container. Nil selects BackendFromConfig(Env).
	Backend Backend
	// Scope receives the application as its current instance. Nil creates
	// a private Scope.
	Scope *Scope
	// Env is handed to the framework application and supplies the strict
	// providers switch. Nil loads it from the environment.
	Env *config.Config

	Providers     []container.ServiceProvider
	ProviderNames []string // looked up in the provider catalog
	Config        map[string]any

	BeforeBoot func(*TestApplication)
	AfterBoot  func(*TestApplication)

	// StrictProviders panics with ErrProviderNotFound on unknown provider
	// names instead of skipping them.
	StrictProviders bool

	Logger logrus.FieldLogger
}

// TestApplication owns one container for the duration of a test, tracks the
// providers registered on it and the mocks that must win over them.
type TestApplication struct {
	backend   Backend
	runtime   Runtime
	container ServiceContainer
	scope     *Scope
	log       logrus.FieldLogger
	strict    bool

	providers   []string
	providerSet map[string]bool
	overrides   map[string]any
	config      map[string]any
	repo        *config.Repository

	booted             bool
	flushed            bool
	frameworkAvailable bool
}

// Create builds, boots and publishes a TestApplication.
//
//	a := testbench.Create(testbench.Options{
//	    Providers: []container.ServiceProvider{&providers.HealthServiceProvider{}},
//	    Config:    map[string]any{"app.locale": "fr"},
//	})
//	defer a.Flush()
func Create(opts Options) *TestApplication {
	env := opts.Env
	if env == nil {
		env = config.Load()
	}
	backend := opts.Backend
	if backend == nil {
		backend = BackendFromConfig(env)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if !backend.Available() {
		logger.WithField("backend", backend.Name()).Debug("backend unavailable, falling back to simple container")
		backend = SimpleBackend{}
	}

	scope := opts.Scope
	if scope == nil {
		scope = NewScope()
	}

	rt := backend.Open(env)
	a := &TestApplication{
		backend:            backend,
		runtime:            rt,
		container:          rt.Container(),
		scope:              scope,
		log:                logger.WithField("backend", backend.Name()),
		strict:             opts.StrictProviders || env.Testbench.Strict,
		providerSet:        make(map[string]bool),
		overrides:          make(map[string]any),
		config:             make(map[string]any, len(opts.Config)),
		frameworkAvailable: rt.Framework() != nil,
	}
	for k, v := range opts.Config {
		a.config[k] = v
	}
	a.repo = config.NewRepository(a.config)

	if a.frameworkAvailable {
		a.registerCoreBindings()
		a.reapplyOverridesAfterResolving()
	}
	a.log.Debug("application created")

	if opts.BeforeBoot != nil {
		opts.BeforeBoot(a)
	}
	for _, p := range opts.Providers {
		a.RegisterProvider(p)
	}
	for _, name := range opts.ProviderNames {
		a.RegisterProviderNamed(name)
	}

	a.Boot()
	if opts.AfterBoot != nil {
		opts.AfterBoot(a)
	}

	scope.publish(a)
	rt.Publish()
	return a
}

func (a *TestApplication) registerCoreBindings() {
	fw := a.runtime.Framework()
	c := a.container
	c.Instance("app", fw)
	c.Instance("container", fw.Container)
	c.Instance(container.TypeKey((*app.Application)(nil)), fw)
	c.Instance(container.TypeKey((*container.Container)(nil)), fw.Container)
	c.Instance(container.TypeKey((*TestApplication)(nil)), a)
	c.Instance("testbench", a)
	c.Instance("config.repository", a.repo)
}

// reapplyOverridesAfterResolving restores mocks after every factory build. A
// deferred provider forgets and rebinds all of its abstracts when one of them
// is first resolved, which would otherwise replace mocks on its siblings.
func (a *TestApplication) reapplyOverridesAfterResolving() {
	a.runtime.Framework().AfterResolving(func(string, any) {
		if a.booted && !a.flushed && len(a.overrides) > 0 {
			a.applyOverrides()
		}
	})
}

// ── Lifecycle ────────────────────────────────────────────────────────────────

// Boot applies queued mocks, boots the providers and applies the mocks again
// so they are the last write for their identifiers. Calling it twice is a
// no-op.
func (a *TestApplication) Boot() {
	if a.booted || a.flushed {
		return
	}
	a.applyOverrides()
	a.runtime.BootProviders()
	a.applyOverrides()
	a.booted = true
	a.log.WithField("providers", len(a.providers)).Debug("application booted")
}

func (a *TestApplication) applyOverrides() {
	for id, v := range a.overrides {
		a.container.Instance(id, v)
	}
}

// Flush empties the container, forgets providers, mocks and config, and
// unpublishes the application. The instance is inert afterwards.
func (a *TestApplication) Flush() {
	if a.flushed {
		return
	}
	a.scope.release(a)
	a.runtime.Unpublish()
	if f, ok := a.container.(Flusher); ok {
		f.Flush()
	}
	a.repo.Flush()

	a.providers = nil
	a.providerSet = make(map[string]bool)
	a.overrides = make(map[string]any)
	a.config = make(map[string]any)
	a.booted = false
	a.flushed = true
	a.log.Debug("application flushed")
}

func (a *TestApplication) inert(op string) bool {
	if a.flushed {
		a.log.WithField("op", op).Warn("use of a flushed application")
	}
	return a.flushed
}

// ── Providers ────────────────────────────────────────────────────────────────

// RegisterProvider registers p unless a provider with the same name was
// already registered. Nil providers are skipped. It reports whether p was
// added.
func (a *TestApplication) RegisterProvider(p container.ServiceProvider) bool {
	if p == nil || a.inert("register provider") {
		return false
	}
	name := container.ProviderName(p)
	if a.providerSet[name] {
		a.log.WithField("provider", name).Debug("provider already registered")
		return false
	}
	a.providerSet[name] = true
	a.providers = append(a.providers, name)
	a.runtime.RegisterProvider(p)

	// a late provider must not shadow mocks
	if a.booted {
		a.applyOverrides()
	}
	a.log.WithField("provider", name).Debug("provider registered")
	return true
}

// RegisterProviderNamed looks name up in the provider catalog and registers
// the result. Unknown names are skipped unless the application is strict.
func (a *TestApplication) RegisterProviderNamed(name string) bool {
	p, ok := container.LookupProvider(name)
	if !ok {
		if a.strict {
			panic(fmt.Errorf("%w: %s", ErrProviderNotFound, name))
		}
		a.log.WithField("provider", name).Debug("provider not found, skipped")
		return false
	}
	return a.RegisterProvider(p)
}

// RegisteredProviders returns provider names in registration order.
func (a *TestApplication) RegisteredProviders() []string {
	return append([]string(nil), a.providers...)
}

// ── Container access ─────────────────────────────────────────────────────────

// Resolve returns the service bound to id. Params are visible to framework
// factories through container.Parameter and ignored by the simple container.
func (a *TestApplication) Resolve(id string, params map[string]any) (any, error) {
	if a.flushed {
		return nil, fmt.Errorf("%w: resolving [%s]", ErrApplicationFlushed, id)
	}
	return a.container.Resolve(id, params)
}

// Bound reports whether id is registered. It has no side effects.
func (a *TestApplication) Bound(id string) bool {
	if a.flushed {
		return false
	}
	return a.container.Has(id)
}

// Mock replaces id with v. Before boot the mock is queued; after boot it is
// visible to the next Resolve.
func (a *TestApplication) Mock(id string, v any) *TestApplication {
	if a.inert("mock") {
		return a
	}
	a.overrides[id] = v
	if a.booted {
		a.container.Instance(id, v)
	}
	a.log.WithField("id", id).Debug("mock registered")
	return a
}

func (a *TestApplication) Instance(id string, v any) *TestApplication {
	if !a.inert("instance") {
		a.container.Instance(id, v)
	}
	return a
}

func (a *TestApplication) Bind(id string, concrete any) *TestApplication {
	if !a.inert("bind") {
		a.container.Bind(id, concrete)
	}
	return a
}

func (a *TestApplication) Singleton(id string, concrete any) *TestApplication {
	if !a.inert("singleton") {
		a.container.Singleton(id, concrete)
	}
	return a
}

// ResolveAs resolves id and asserts the result to T.
func ResolveAs[T any](a *TestApplication, id string) (T, error) {
	var zero T
	v, err := a.Resolve(id, nil)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: [%s] is %T", ErrTypeMismatch, id, v)
	}
	return t, nil
}

// ── Config ───────────────────────────────────────────────────────────────────

// Config returns a configuration value.
func (a *TestApplication) Config(key string) (any, bool) {
	v, ok := a.config[key]
	return v, ok
}

// SetConfig stores a configuration value, mirrored into ConfigRepository.
func (a *TestApplication) SetConfig(key string, v any) {
	if a.inert("config") {
		return
	}
	a.config[key] = v
	a.repo.Set(key, v)
}

// ConfigRepository is the repository bound as "config.repository" in
// framework mode.
func (a *TestApplication) ConfigRepository() *config.Repository { return a.repo }

// ── Accessors ────────────────────────────────────────────────────────────────

func (a *TestApplication) Booted() bool                { return a.booted }
func (a *TestApplication) Flushed() bool               { return a.flushed }
func (a *TestApplication) FrameworkAvailable() bool    { return a.frameworkAvailable }
func (a *TestApplication) Container() ServiceContainer { return a.container }
func (a *TestApplication) Backend() Backend            { return a.backend }
func (a *TestApplication) Scope() *Scope               { return a.scope }

// Framework returns the host application, or nil on the simple backend.
func (a *TestApplication) Framework() *app.Application { return a.runtime.Framework() }
