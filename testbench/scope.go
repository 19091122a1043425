package testbench

import "sync"

// Scope holds the current TestApplication for one test case. Each test case
// owns its own Scope, so "current instance" is never process-wide.
type Scope struct {
	mu      sync.Mutex
	current *TestApplication
}

// NewScope returns an empty Scope.
func NewScope() *Scope { return &Scope{} }

// Current returns the published application, or nil.
func (s *Scope) Current() *TestApplication {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Destroy flushes the current application, if any. Safe to call repeatedly.
func (s *Scope) Destroy() {
	s.mu.Lock()
	cur := s.current
	s.current = nil
	s.mu.Unlock()

	if cur != nil {
		cur.Flush()
	}
}

func (s *Scope) publish(a *TestApplication) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = a
}

func (s *Scope) release(a *TestApplication) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == a {
		s.current = nil
	}
}
