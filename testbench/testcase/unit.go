// Package testcase provides the three layered base test cases, built on
// testify suites:
//
//	UnitTestCase         reflection helpers and structural assertions
//	IntegrationTestCase  + a fresh TestApplication per test
//	EndToEndTestCase     + simulated HTTP requests and response assertions
//
// Embed one in a suite and run it with suite.Run:
//
//	type HealthTest struct{ testcase.EndToEndTestCase }
//
//	func (s *HealthTest) TestHealth() { s.AssertOk(s.Get("/health")) }
//
//	func TestHealth(t *testing.T) { suite.Run(t, new(HealthTest)) }
package testcase

import (
	"github.com/stretchr/testify/suite"

	"github.com/km-arc/go-laravel-testbench/testbench/introspect"
)

// UnitTestCase is the base of every test case.
type UnitTestCase struct {
	suite.Suite
	outer suite.TestingSuite
}

// SetS records the suite being run, so embedded layers can probe the
// outermost type for hooks.
func (u *UnitTestCase) SetS(s suite.TestingSuite) {
	u.Suite.SetS(s)
	u.outer = s
}

// Outer returns the suite passed to suite.Run, or nil before it starts.
func (u *UnitTestCase) Outer() suite.TestingSuite { return u.outer }

// InvokeMethod calls an exported method, or an Invoker seam, by name and
// fails the test when it cannot.
func (u *UnitTestCase) InvokeMethod(obj any, name string, args ...any) []any {
	u.T().Helper()
	out, err := introspect.InvokeMethod(obj, name, args...)
	u.Require().NoError(err)
	return out
}

// GetProperty reads a field, unexported ones included.
func (u *UnitTestCase) GetProperty(obj any, name string) any {
	u.T().Helper()
	v, err := introspect.GetProperty(obj, name)
	u.Require().NoError(err)
	return v
}

// SetProperty writes a field, unexported ones included.
func (u *UnitTestCase) SetProperty(obj any, name string, value any) {
	u.T().Helper()
	u.Require().NoError(introspect.SetProperty(obj, name, value))
}

func (u *UnitTestCase) AssertUsesTrait(v any, trait any, msgAndArgs ...any) bool {
	u.T().Helper()
	return introspect.AssertUsesTrait(u.T(), v, trait, msgAndArgs...)
}

func (u *UnitTestCase) AssertImplementsInterface(v any, iface any, msgAndArgs ...any) bool {
	u.T().Helper()
	return introspect.AssertImplementsInterface(u.T(), v, iface, msgAndArgs...)
}

func (u *UnitTestCase) AssertHasMethod(v any, name string, msgAndArgs ...any) bool {
	u.T().Helper()
	return introspect.AssertHasMethod(u.T(), v, name, msgAndArgs...)
}

func (u *UnitTestCase) AssertHasProperty(v any, name string, msgAndArgs ...any) bool {
	u.T().Helper()
	return introspect.AssertHasProperty(u.T(), v, name, msgAndArgs...)
}
