// Package concerns holds the capabilities test cases compose. The only one
// today is InteractsWithContainer.
package concerns

import (
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-laravel-testbench/framework/config"
	"github.com/km-arc/go-laravel-testbench/internal/logging"
	"github.com/km-arc/go-laravel-testbench/testbench"
)

// InteractsWithContainer gives a test case a lazily created TestApplication
// and container shortcuts. Embed it, then Attach before use:
//
//	type OrdersTest struct {
//	    suite.Suite
//	    concerns.InteractsWithContainer
//	}
//
//	func (s *OrdersTest) SetupTest()    { s.Attach(s, s.T()); s.CreateApplication() }
//	func (s *OrdersTest) TearDownTest() { s.DestroyApplication() }
type InteractsWithContainer struct {
	owner any
	t     assert.TestingT
	scope *testbench.Scope
	app   *testbench.TestApplication
}

// Attach records the composed test case, probed for hooks, and the target of
// the Assert helpers.
func (c *InteractsWithContainer) Attach(owner any, t assert.TestingT) {
	c.owner = owner
	c.t = t
}

// App returns the current application, creating it on first use.
func (c *InteractsWithContainer) App() *testbench.TestApplication {
	if c.app == nil {
		c.CreateApplication()
	}
	return c.app
}

// CreateApplication builds a fresh application from the owner's hooks. Any
// application still held is destroyed first.
func (c *InteractsWithContainer) CreateApplication() *testbench.TestApplication {
	if c.app != nil {
		c.DestroyApplication()
	}
	if c.scope == nil {
		c.scope = testbench.NewScope()
	}

	opts := testbench.Options{Scope: c.scope, Logger: c.logger()}
	if h, ok := c.owner.(DefinesBackend); ok {
		opts.Backend = h.ApplicationBackend()
	}
	if h, ok := c.owner.(DefinesProviders); ok {
		opts.Providers = h.ApplicationProviders()
	}
	if h, ok := c.owner.(DefinesProviderNames); ok {
		opts.ProviderNames = h.ApplicationProviderNames()
	}
	if h, ok := c.owner.(DefinesConfig); ok {
		opts.Config = h.ApplicationConfig()
	}
	if h, ok := c.owner.(BeforeApplicationBoot); ok {
		opts.BeforeBoot = h.BeforeApplicationBoot
	}
	if h, ok := c.owner.(AfterApplicationBoot); ok {
		opts.AfterBoot = h.AfterApplicationBoot
	}

	c.app = testbench.Create(opts)
	return c.app
}

// DestroyApplication flushes the held application and then the scope, so an
// application whose reference was lost is flushed too.
func (c *InteractsWithContainer) DestroyApplication() {
	if c.app != nil {
		c.app.Flush()
		c.app = nil
	}
	if c.scope != nil {
		c.scope.Destroy()
	}
}

// RefreshApplication swaps the application for a fresh one mid-test.
func (c *InteractsWithContainer) RefreshApplication() *testbench.TestApplication {
	c.DestroyApplication()
	return c.CreateApplication()
}

// Scope returns the scope applications are published to.
func (c *InteractsWithContainer) Scope() *testbench.Scope { return c.scope }

func (c *InteractsWithContainer) logger() logrus.FieldLogger {
	tb, ok := c.t.(testing.TB)
	if !ok {
		return logging.Discard()
	}
	return logging.ForTest(tb, config.Get("TESTBENCH_LOG_LEVEL", "warn"))
}

// ── Pass-throughs ────────────────────────────────────────────────────────────

func (c *InteractsWithContainer) Resolve(id string, params map[string]any) (any, error) {
	return c.App().Resolve(id, params)
}

func (c *InteractsWithContainer) Bound(id string) bool { return c.App().Bound(id) }

func (c *InteractsWithContainer) Mock(id string, v any) *testbench.TestApplication {
	return c.App().Mock(id, v)
}

func (c *InteractsWithContainer) Instance(id string, v any) *testbench.TestApplication {
	return c.App().Instance(id, v)
}

func (c *InteractsWithContainer) Bind(id string, concrete any) *testbench.TestApplication {
	return c.App().Bind(id, concrete)
}

func (c *InteractsWithContainer) Singleton(id string, concrete any) *testbench.TestApplication {
	return c.App().Singleton(id, concrete)
}

// ── Assertions ───────────────────────────────────────────────────────────────

func (c *InteractsWithContainer) AssertBound(id string, msgAndArgs ...any) bool {
	c.helper()
	return assert.True(c.testingT(), c.Bound(id),
		describe(fmt.Sprintf("Failed asserting that [%s] is bound in the container.", id), msgAndArgs)...)
}

func (c *InteractsWithContainer) AssertNotBound(id string, msgAndArgs ...any) bool {
	c.helper()
	return assert.False(c.testingT(), c.Bound(id),
		describe(fmt.Sprintf("Failed asserting that [%s] is not bound in the container.", id), msgAndArgs)...)
}

// AssertResolves fails unless id resolves without error.
func (c *InteractsWithContainer) AssertResolves(id string, msgAndArgs ...any) bool {
	c.helper()
	_, err := c.Resolve(id, nil)
	return assert.NoError(c.testingT(), err,
		describe(fmt.Sprintf("Failed asserting that [%s] can be resolved from the container.", id), msgAndArgs)...)
}

func (c *InteractsWithContainer) helper() {
	if h, ok := c.testingT().(interface{ Helper() }); ok {
		h.Helper()
	}
}

// testingT falls back to the owner's T() when Attach was given no TestingT.
func (c *InteractsWithContainer) testingT() assert.TestingT {
	if c.t != nil {
		return c.t
	}
	if o, ok := c.owner.(interface{ T() *testing.T }); ok && o.T() != nil {
		return o.T()
	}
	panic("concerns: assertion on an InteractsWithContainer without a TestingT; call Attach(owner, t) first")
}

func describe(fallback string, msgAndArgs []any) []any {
	if len(msgAndArgs) == 0 {
		return []any{fallback}
	}
	return msgAndArgs
}

// ── Plain tests ──────────────────────────────────────────────────────────────

// Setup attaches a standalone InteractsWithContainer to t, creates the
// application and destroys it in t.Cleanup, so teardown runs even when the
// test fails or panics. owner may be nil or any value implementing hooks.
//
//	func TestCheckout(t *testing.T) {
//	    c := concerns.Setup(t, nil)
//	    c.Mock("payments", fakeGateway{})
//	}
func Setup(t testing.TB, owner any) *InteractsWithContainer {
	t.Helper()
	c := &InteractsWithContainer{}
	c.Attach(owner, t)
	c.CreateApplication()
	t.Cleanup(c.DestroyApplication)
	return c
}
