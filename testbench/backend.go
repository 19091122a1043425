package testbench

import (
	"github.com/km-arc/go-laravel-testbench/framework/app"
	"github.com/km-arc/go-laravel-testbench/framework/config"
	"github.com/km-arc/go-laravel-testbench/framework/container"
)

// Backend names accepted by BackendFromConfig (TESTBENCH_BACKEND).
const (
	BackendFramework = "framework"
	BackendSimple    = "simple"
)

// Backend chooses the container a TestApplication runs on. It is decided by
// the composition root (the test case or the environment), never probed at
// runtime by the application itself.
type Backend interface {
	Name() string
	// Available reports whether the backend can be used in this process.
	// An unavailable backend is replaced by SimpleBackend.
	Available() bool
	Open(cfg *config.Config) Runtime
}

// Runtime is one opened backend, owned by a single TestApplication.
type Runtime interface {
	Container() ServiceContainer
	// Framework returns the host application, or nil for the fallback.
	Framework() *app.Application
	RegisterProvider(p container.ServiceProvider)
	BootProviders()
	// Publish and Unpublish manage the host's global application pointer.
	Publish()
	Unpublish()
}

// BackendFromConfig maps TESTBENCH_BACKEND to a Backend. Anything other than
// "simple" selects the framework.
func BackendFromConfig(cfg *config.Config) Backend {
	if cfg != nil && cfg.Testbench.Backend == BackendSimple {
		return SimpleBackend{}
	}
	return FrameworkBackend{}
}

// ── FrameworkBackend ─────────────────────────────────────────────────────────

// FrameworkBackend runs the application on the host framework: a full
// app.Application with its provider registry and global instance.
type FrameworkBackend struct {
	// Probe overrides the availability check. Nil means available.
	Probe func() bool
}

func (FrameworkBackend) Name() string { return BackendFramework }

func (b FrameworkBackend) Available() bool {
	if b.Probe != nil {
		return b.Probe()
	}
	return true
}

func (FrameworkBackend) Open(cfg *config.Config) Runtime {
	a := app.New(cfg)
	return &frameworkRuntime{app: a, c: NewFrameworkContainer(a.Container)}
}

type frameworkRuntime struct {
	app *app.Application
	c   *FrameworkContainer
}

func (r *frameworkRuntime) Container() ServiceContainer { return r.c }
func (r *frameworkRuntime) Framework() *app.Application { return r.app }

func (r *frameworkRuntime) RegisterProvider(p container.ServiceProvider) { r.app.Register(p) }
func (r *frameworkRuntime) BootProviders()                               { r.app.Boot() }

func (r *frameworkRuntime) Publish() { app.SetInstance(r.app) }

// Unpublish only clears the global pointer while it still names this runtime,
// so a stale teardown cannot unpublish a newer application.
func (r *frameworkRuntime) Unpublish() {
	if app.Instance() == r.app {
		app.ClearInstance()
	}
}

// ── SimpleBackend ────────────────────────────────────────────────────────────

// SimpleBackend runs the application on a SimpleContainer. Providers are
// tracked but never registered or booted.
type SimpleBackend struct{}

func (SimpleBackend) Name() string                  { return BackendSimple }
func (SimpleBackend) Available() bool               { return true }
func (SimpleBackend) Open(_ *config.Config) Runtime { return &simpleRuntime{c: NewSimpleContainer()} }

type simpleRuntime struct {
	c *SimpleContainer
}

func (r *simpleRuntime) Container() ServiceContainer                  { return r.c }
func (r *simpleRuntime) Framework() *app.Application                  { return nil }
func (r *simpleRuntime) RegisterProvider(_ container.ServiceProvider) {}
func (r *simpleRuntime) BootProviders()                               {}
func (r *simpleRuntime) Publish()                                     {}
func (r *simpleRuntime) Unpublish()                                   {}
