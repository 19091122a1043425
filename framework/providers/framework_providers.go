package providers

import (
	"github.com/km-arc/go-laravel-testbench/framework/config"
	"github.com/km-arc/go-laravel-testbench/framework/container"
	"github.com/km-arc/go-laravel-testbench/framework/routing"
)

func init() {
	container.RegisterProviderType("config", func() container.ServiceProvider {
		return &ConfigServiceProvider{}
	})
	container.RegisterProviderType("routing", func() container.ServiceProvider {
		return &RoutingServiceProvider{}
	})
	container.RegisterProviderType("health", func() container.ServiceProvider {
		return &HealthServiceProvider{}
	})
}

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the application configuration.
//
// Bound abstracts:
//   - "config"            → *config.Config
//   - "configuration"     → alias of "config"
//   - "config.repository" → *config.Repository (runtime key/value config)
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->singleton('config', fn() => new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	Config   *config.Config // used as-is when set
	EnvFiles []string       // otherwise loaded from these files
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	cfg, envFiles := p.Config, p.EnvFiles
	app.Singleton("config", func(c *container.Container) any {
		if cfg != nil {
			return cfg
		}
		return config.Load(envFiles...)
	})
	app.Alias("config", "configuration")
	app.Singleton("config.repository", func(c *container.Container) any {
		return config.NewRepository(nil)
	})
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Bound abstracts:
//   - "router"  → *routing.Router
//
// Laravel equivalent:
//
//	// Illuminate\Routing\RoutingServiceProvider
//	$app->singleton('router', fn($app) => new Router($app['events'], $app));
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton("router", func(c *container.Container) any {
		return routing.New()
	})
}
