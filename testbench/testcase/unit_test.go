package testcase_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/km-arc/go-laravel-testbench/testbench/concerns"
	"github.com/km-arc/go-laravel-testbench/testbench/testcase"
)

type widget struct {
	secret string
	count  int
}

func (w *widget) Increment(by int) int {
	w.count += by
	return w.count
}

type UnitSuite struct {
	testcase.UnitTestCase
}

func TestUnitSuite(t *testing.T) {
	suite.Run(t, new(UnitSuite))
}

func (s *UnitSuite) TestOuterIsCaptured() {
	s.Same(s, s.Outer())
}

func (s *UnitSuite) TestInvokeMethod() {
	w := &widget{}
	s.Equal([]any{3}, s.InvokeMethod(w, "Increment", 3))
	s.Equal(3, w.count)
}

func (s *UnitSuite) TestProperties() {
	w := &widget{secret: "s3cret"}
	s.Equal("s3cret", s.GetProperty(w, "secret"))

	s.SetProperty(w, "secret", "rotated")
	s.SetProperty(w, "count", 9)
	s.Equal("rotated", w.secret)
	s.Equal(9, w.count)
}

func (s *UnitSuite) TestStructuralAssertions() {
	s.AssertHasMethod(&widget{}, "Increment")
	s.AssertHasProperty(widget{}, "count")
	s.AssertImplementsInterface(&testcase.IntegrationTestCase{}, (*suite.TestingSuite)(nil))
	s.AssertImplementsInterface(&testcase.IntegrationTestCase{}, (*suite.SetupTestSuite)(nil))
}

func (s *UnitSuite) TestAssertUsesTrait_Transitive() {
	e2e := &testcase.EndToEndTestCase{}

	s.AssertUsesTrait(e2e, (*testcase.IntegrationTestCase)(nil))
	s.AssertUsesTrait(e2e, (*testcase.UnitTestCase)(nil), "two levels up")
	s.AssertUsesTrait(e2e, (*concerns.InteractsWithContainer)(nil), "through IntegrationTestCase")
	s.AssertUsesTrait(e2e, (*suite.Suite)(nil), "through UnitTestCase")
}
