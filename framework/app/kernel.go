package app

import (
	"sync"

	"github.com/km-arc/go-laravel-testbench/framework/config"
	"github.com/km-arc/go-laravel-testbench/framework/container"
	"github.com/km-arc/go-laravel-testbench/framework/providers"
	"github.com/km-arc/go-laravel-testbench/framework/routing"
)

// Version is the framework version reported by Application.Version.
const Version = "0.2.0"

// Application is the top-level application container.
// It embeds the IoC Container and ProviderRegistry so user code can
// call app.Bind(), app.Singleton(), app.Register() directly —
// exactly like $app in Laravel's bootstrap/app.php.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// New creates the application and registers the framework core providers.
// A nil cfg is loaded from the environment on first use of "config".
func New(cfg *config.Config) *Application {
	c := container.New()
	registry := container.NewProviderRegistry(c)

	a := &Application{
		Container: c,
		Providers: registry,
	}
	c.Instance("app", a)

	// same order as Laravel: configuration first, then routing
	registry.Register(&providers.ConfigServiceProvider{Config: cfg})
	registry.Register(&providers.RoutingServiceProvider{})

	return a
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) bool {
	return a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() {
	a.Providers.Boot()
}

// Booted reports whether the providers have been booted.
func (a *Application) Booted() bool { return a.Providers.Booted() }

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.Resolve[*config.Config](a.Container, "config")
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.Resolve[*routing.Router](a.Container, "router")
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
func (a *Application) Version() string     { return Version }

// ── Global instance ──────────────────────────────────────────────────────────

// The process-wide application, like Laravel's Container::getInstance().
var global struct {
	sync.RWMutex
	app *Application
}

// SetInstance publishes a as the global application.
func SetInstance(a *Application) {
	global.Lock()
	defer global.Unlock()
	global.app = a
}

// Instance returns the global application, or nil.
func Instance() *Application {
	global.RLock()
	defer global.RUnlock()
	return global.app
}

// ClearInstance forgets the global application.
func ClearInstance() {
	SetInstance(nil)
}
