package providers

import (
	"net/http"

	"github.com/km-arc/go-laravel-testbench/framework/config"
	"github.com/km-arc/go-laravel-testbench/framework/container"
	gohttp "github.com/km-arc/go-laravel-testbench/framework/http"
	"github.com/km-arc/go-laravel-testbench/framework/routing"
)

// DefaultHealthPath is the route HealthServiceProvider registers by default.
const DefaultHealthPath = "/health"

// HealthServiceProvider adds a liveness route to the router during Boot.
//
// The route answers 200 with an empty body, or with a JSON status document
// when Verbose is set:
//
//	{"data": {"status": "ok", "app": "GoLaravel", "env": "testing"}}
type HealthServiceProvider struct {
	container.BaseProvider
	Path    string
	Verbose bool
}

func (p *HealthServiceProvider) Register(app *container.Container) {
	app.Instance("health.path", p.path())
}

func (p *HealthServiceProvider) Boot(app *container.Container) {
	router, ok := container.TryResolve[*routing.Router](app, "router")
	if !ok {
		return
	}
	cfg, _ := container.TryResolve[*config.Config](app, "config")
	verbose := p.Verbose

	router.Get(p.path(), func(w http.ResponseWriter, r *http.Request) {
		if !verbose {
			w.WriteHeader(http.StatusOK)
			return
		}
		status := map[string]any{"status": "ok"}
		if cfg != nil {
			status["app"] = cfg.App.Name
			status["env"] = cfg.App.Env
		}
		gohttp.NewResponse(w).Success(status)
	})
}

func (p *HealthServiceProvider) path() string {
	if p.Path == "" {
		return DefaultHealthPath
	}
	return p.Path
}
