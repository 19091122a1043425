package testbench

import "errors"

var (
	// ErrServiceNotFound is returned when an identifier is not bound.
	ErrServiceNotFound = errors.New("testbench: service not found")

	// ErrApplicationFlushed is returned by a TestApplication used after Flush.
	ErrApplicationFlushed = errors.New("testbench: application has been flushed")

	// ErrProviderNotFound is raised for unknown provider names in strict mode.
	ErrProviderNotFound = errors.New("testbench: provider not found")

	// ErrTypeMismatch is returned by ResolveAs when the value has another type.
	ErrTypeMismatch = errors.New("testbench: resolved value has unexpected type")
)
