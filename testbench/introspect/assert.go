package introspect

import (
	"fmt"
	"reflect"

	"github.com/stretchr/testify/assert"
)

type tHelper interface{ Helper() }

// AssertUsesTrait fails t unless v composes trait, directly, through an
// embedded type, or through another trait.
func AssertUsesTrait(t assert.TestingT, v any, trait any, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if UsesTrait(v, trait) {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("Failed asserting that %s uses trait %s.\nTraits: %v",
		typeName(v), TraitName(trait), UsesTraits(v)), msgAndArgs...)
}

// AssertImplementsInterface fails t unless v implements the interface iface
// points to.
func AssertImplementsInterface(t assert.TestingT, v any, iface any, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if Implements(v, iface) {
		return true
	}
	want := "<invalid interface>"
	if it := reflect.TypeOf(iface); it != nil && it.Kind() == reflect.Pointer {
		want = it.Elem().String()
	}
	return assert.Fail(t, fmt.Sprintf("Failed asserting that %s implements %s.", typeName(v), want), msgAndArgs...)
}

func AssertHasMethod(t assert.TestingT, v any, name string, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if HasMethod(v, name) {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("Failed asserting that %s has method %s.", typeName(v), name), msgAndArgs...)
}

func AssertHasProperty(t assert.TestingT, v any, name string, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if HasProperty(v, name) {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("Failed asserting that %s has property %s.", typeName(v), name), msgAndArgs...)
}
