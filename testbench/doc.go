// Package testbench runs packages built on the go-laravel framework inside a
// disposable application for the duration of a test.
//
// # Lifecycle
//
//  1. Create: pick a Backend, open its container, register core bindings
//  2. BeforeBoot hook, then providers in registration order
//  3. Boot: mocks, provider Boot, mocks again
//  4. AfterBoot hook, then publish as the Scope's current instance
//  5. Flush (or Scope.Destroy) at teardown
//
// # Backends
//
// FrameworkBackend runs on a full app.Application; SimpleBackend runs on a
// SimpleContainer, a flat map of pre-built values. The choice belongs to the
// test case or to TESTBENCH_BACKEND:
//
//	a := testbench.Create(testbench.Options{Backend: testbench.SimpleBackend{}})
//
// # Mocks
//
// A mock registered before Boot is applied after every provider has booted,
// so it always wins over provider bindings:
//
//	a := testbench.Create(testbench.Options{
//	    Providers:  []container.ServiceProvider{&ClockProvider{}},
//	    BeforeBoot: func(a *testbench.TestApplication) { a.Mock("clock", fixedClock) },
//	})
//	clock, _ := testbench.ResolveAs[Clock](a, "clock") // fixedClock
package testbench
