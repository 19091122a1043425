package testcase

import (
	"github.com/km-arc/go-laravel-testbench/testbench/concerns"
)

// IntegrationTestCase gives every test its own TestApplication. Hooks from
// the concerns package are read from the outermost suite. A suite that
// defines its own SetupTest or TearDownTest must call these.
type IntegrationTestCase struct {
	UnitTestCase
	concerns.InteractsWithContainer
}

func (s *IntegrationTestCase) SetupTest() {
	s.Attach(s.owner(), s.T())
	s.CreateApplication()
}

// TearDownTest runs even when the test body fails or panics.
func (s *IntegrationTestCase) TearDownTest() {
	s.DestroyApplication()
}

func (s *IntegrationTestCase) owner() any {
	if o := s.Outer(); o != nil {
		return o
	}
	return s
}
