package concerns_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-laravel-testbench/framework/container"
	"github.com/km-arc/go-laravel-testbench/testbench"
	"github.com/km-arc/go-laravel-testbench/testbench/concerns"
)

// ── fixtures ─────────────────────────────────────────────────────────────────

type greeterProvider struct{ container.BaseProvider }

func (p *greeterProvider) Register(app *container.Container) {
	app.Singleton("greeter", func(*container.Container) any { return "hello" })
}

// hookedCase implements every hook.
type hookedCase struct {
	concerns.InteractsWithContainer
	events []string
}

func (h *hookedCase) ApplicationBackend() testbench.Backend { return testbench.FrameworkBackend{} }
func (h *hookedCase) ApplicationProviderNames() []string    { return []string{"health", "missing"} }
func (h *hookedCase) ApplicationConfig() map[string]any     { return map[string]any{"app.locale": "fr"} }

func (h *hookedCase) ApplicationProviders() []container.ServiceProvider {
	return []container.ServiceProvider{&greeterProvider{}}
}

func (h *hookedCase) BeforeApplicationBoot(a *testbench.TestApplication) {
	h.events = append(h.events, "before")
	a.Mock("greeter", "mocked hello")
}

func (h *hookedCase) AfterApplicationBoot(a *testbench.TestApplication) {
	h.events = append(h.events, "after")
}

type simpleCase struct {
	concerns.InteractsWithContainer
}

func (simpleCase) ApplicationBackend() testbench.Backend { return testbench.SimpleBackend{} }

// suiteOwner exposes T() the way a testify suite does.
type suiteOwner struct {
	simpleCase
	t *testing.T
}

func (o *suiteOwner) T() *testing.T { return o.t }

// strictCase names a provider the catalog does not know.
type strictCase struct {
	simpleCase
}

func (strictCase) ApplicationProviderNames() []string { return []string{"does-not-exist"} }

// recorder captures assertion failures.
type recorder struct{ failures []string }

func (r *recorder) Errorf(format string, args ...any) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

// ── Lifecycle ────────────────────────────────────────────────────────────────

func TestApp_LazyAndMemoised(t *testing.T) {
	c := &simpleCase{}
	c.Attach(c, t)
	defer c.DestroyApplication()

	a := c.App()
	require.NotNil(t, a)
	assert.Same(t, a, c.App())
	assert.Same(t, a, c.Scope().Current())
}

func TestCreateApplication_UsesHooks(t *testing.T) {
	h := &hookedCase{}
	h.Attach(h, t)
	a := h.CreateApplication()
	defer h.DestroyApplication()

	assert.True(t, a.FrameworkAvailable())
	assert.Equal(t, []string{"before", "after"}, h.events)
	assert.Len(t, a.RegisteredProviders(), 2, "unknown catalog names are skipped")

	v, err := h.Resolve("greeter", nil)
	require.NoError(t, err)
	assert.Equal(t, "mocked hello", v, "mock from the before-boot hook wins")

	locale, _ := a.Config("app.locale")
	assert.Equal(t, "fr", locale)
	h.AssertBound("health.path")
}

func TestDestroyApplication(t *testing.T) {
	c := &simpleCase{}
	c.Attach(c, t)
	a := c.App()
	c.Instance("x", 1)

	c.DestroyApplication()
	assert.True(t, a.Flushed())
	assert.False(t, a.Bound("x"))
	assert.Nil(t, c.Scope().Current())

	assert.NotPanics(t, c.DestroyApplication)
}

func TestRefreshApplication(t *testing.T) {
	c := &simpleCase{}
	c.Attach(c, t)
	defer c.DestroyApplication()

	first := c.App()
	c.Instance("x", 1)

	second := c.RefreshApplication()
	assert.NotSame(t, first, second)
	assert.True(t, first.Flushed())
	assert.False(t, c.Bound("x"))
	assert.Same(t, second, c.App())
}

func TestPassThroughs(t *testing.T) {
	c := &simpleCase{}
	c.Attach(c, t)
	defer c.DestroyApplication()

	c.Instance("a", 1).Bind("b", 2).Singleton("c", 3)
	c.Mock("a", 10)

	for id, want := range map[string]any{"a": 10, "b": 2, "c": 3} {
		v, err := c.Resolve(id, nil)
		require.NoError(t, err)
		assert.Equal(t, want, v, id)
	}
	c.AssertBound("a")
	c.AssertNotBound("missing")
	c.AssertResolves("b")
}

func TestAssertions_FailureMessages(t *testing.T) {
	r := &recorder{}
	c := &simpleCase{}
	c.Attach(c, r)
	defer c.DestroyApplication()
	c.Instance("present", true)

	assert.False(t, c.AssertBound("absent"))
	assert.False(t, c.AssertNotBound("present"))
	assert.False(t, c.AssertResolves("absent"))
	assert.True(t, c.AssertBound("present", "custom message"))

	require.Len(t, r.failures, 3)
	assert.Contains(t, r.failures[0], "Failed asserting that [absent] is bound in the container.")
	assert.Contains(t, r.failures[1], "Failed asserting that [present] is not bound in the container.")
	assert.Contains(t, r.failures[2], "Failed asserting that [absent] can be resolved from the container.")
}

func TestAssertions_FallBackToOwnerT(t *testing.T) {
	o := &suiteOwner{t: t}
	o.Attach(o, nil)
	defer o.DestroyApplication()

	assert.True(t, o.AssertNotBound("missing"))
}

func TestAssertions_WithoutTestingT_Panics(t *testing.T) {
	c := &concerns.InteractsWithContainer{}
	defer c.DestroyApplication()

	assert.PanicsWithValue(t,
		"concerns: assertion on an InteractsWithContainer without a TestingT; call Attach(owner, t) first",
		func() { c.AssertBound("anything") })
}

// ── Setup ────────────────────────────────────────────────────────────────────

func TestSetup_DestroysOnCleanup(t *testing.T) {
	var a *testbench.TestApplication

	t.Run("body", func(t *testing.T) {
		c := concerns.Setup(t, simpleCase{})
		a = c.App()
		c.Instance("x", 1)
		c.AssertBound("x")
	})

	require.NotNil(t, a)
	assert.True(t, a.Flushed(), "Cleanup should flush the application")
}

func TestSetup_NilOwner(t *testing.T) {
	c := concerns.Setup(t, nil)
	assert.NotNil(t, c.App())
}

func TestSetup_StrictProvidersFromEnv(t *testing.T) {
	t.Setenv("TESTBENCH_STRICT_PROVIDERS", "true")

	assert.PanicsWithError(t, "testbench: provider not found: does-not-exist", func() {
		concerns.Setup(t, strictCase{})
	})
}
