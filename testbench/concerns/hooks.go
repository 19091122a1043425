package concerns

import (
	"github.com/km-arc/go-laravel-testbench/framework/container"
	"github.com/km-arc/go-laravel-testbench/testbench"
)

// Optional hooks a test case can implement. CreateApplication probes the
// owner passed to Attach for each of them.

type DefinesProviders interface {
	ApplicationProviders() []container.ServiceProvider
}

// DefinesProviderNames lists providers by catalog name.
type DefinesProviderNames interface {
	ApplicationProviderNames() []string
}

type DefinesConfig interface {
	ApplicationConfig() map[string]any
}

// DefinesBackend overrides TESTBENCH_BACKEND for one test case.
type DefinesBackend interface {
	ApplicationBackend() testbench.Backend
}

// BeforeApplicationBoot runs after core bindings, before any provider.
type BeforeApplicationBoot interface {
	BeforeApplicationBoot(a *testbench.TestApplication)
}

// AfterApplicationBoot runs once providers have booted.
type AfterApplicationBoot interface {
	AfterApplicationBoot(a *testbench.TestApplication)
}
