// Package introspect reaches into values for test assertions: calling
// methods by name, reading and writing unexported fields, and listing the
// traits a type composes. It is the one place the testbench bypasses
// encapsulation, and only for tests.
package introspect

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"
)

var (
	ErrMethodNotFound   = errors.New("introspect: method not found")
	ErrPropertyNotFound = errors.New("introspect: property not found")
	ErrNotStruct        = errors.New("introspect: value is not a struct")
	ErrNotAddressable   = errors.New("introspect: value is not addressable, pass a pointer")
	ErrArguments        = errors.New("introspect: arguments do not match")
	ErrIncompatible     = errors.New("introspect: value cannot be assigned")
)

// Invoker is a test seam for behaviour Go keeps unexported. InvokeMethod
// tries it first; handled=false falls through to exported methods.
//
//	func (s *Store) InvokeForTest(name string, args []any) ([]any, bool) {
//	    if name == "evict" {
//	        s.evict(args[0].(string))
//	        return nil, true
//	    }
//	    return nil, false
//	}
type Invoker interface {
	InvokeForTest(name string, args []any) (out []any, handled bool)
}

// ── Methods ──────────────────────────────────────────────────────────────────

// InvokeMethod calls the method name on obj and returns its results.
// Unexported methods are unreachable through reflection; expose them with
// Invoker instead.
func InvokeMethod(obj any, name string, args ...any) ([]any, error) {
	if inv, ok := obj.(Invoker); ok {
		if out, handled := inv.InvokeForTest(name, args); handled {
			return out, nil
		}
	}

	m := methodByName(reflect.ValueOf(obj), name)
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %s has no method %q", ErrMethodNotFound, typeName(obj), name)
	}
	in, err := callArgs(m.Type(), args)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", typeName(obj), name, err)
	}

	res := m.Call(in)
	out := make([]any, len(res))
	for i, r := range res {
		out[i] = r.Interface()
	}
	return out, nil
}

func methodByName(v reflect.Value, name string) reflect.Value {
	if !v.IsValid() {
		return reflect.Value{}
	}
	if m := v.MethodByName(name); m.IsValid() {
		return m
	}
	// pointer-receiver method on a struct passed by value
	if v.Kind() != reflect.Pointer {
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		return p.MethodByName(name)
	}
	return reflect.Value{}
}

func callArgs(mt reflect.Type, args []any) ([]reflect.Value, error) {
	n := mt.NumIn()
	if mt.IsVariadic() {
		if len(args) < n-1 {
			return nil, fmt.Errorf("%w: want at least %d, got %d", ErrArguments, n-1, len(args))
		}
	} else if len(args) != n {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrArguments, n, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		pt := mt.In(min(i, n-1))
		if mt.IsVariadic() && i >= n-1 {
			pt = pt.Elem()
		}
		v, err := valueFor(pt, arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i] = v
	}
	return in, nil
}

// valueFor adapts raw to t: nil becomes the zero value, assignable values
// pass through, convertible values are converted.
func valueFor(t reflect.Type, raw any) (reflect.Value, error) {
	if raw == nil {
		return reflect.Zero(t), nil
	}
	v := reflect.ValueOf(raw)
	switch {
	case v.Type().AssignableTo(t):
		return v, nil
	case v.Type().ConvertibleTo(t):
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %s to %s", ErrIncompatible, v.Type(), t)
}

// ── Properties ───────────────────────────────────────────────────────────────

// GetProperty returns the field name of the struct obj points to. Unexported
// and promoted fields are readable.
func GetProperty(obj any, name string) (any, error) {
	v, err := structValue(obj)
	if err != nil {
		return nil, err
	}
	if !v.CanAddr() {
		cp := reflect.New(v.Type()).Elem()
		cp.Set(v)
		v = cp
	}
	f, err := fieldByName(v, name)
	if err != nil {
		return nil, err
	}
	return f.Interface(), nil
}

// SetProperty writes value into the field name of the struct obj points to.
// The only check is the one Go itself needs: value must be assignable or
// convertible to the field's type.
func SetProperty(obj any, name string, value any) error {
	v, err := structValue(obj)
	if err != nil {
		return err
	}
	if !v.CanAddr() {
		return fmt.Errorf("%w: %s", ErrNotAddressable, typeName(obj))
	}
	f, err := fieldByName(v, name)
	if err != nil {
		return err
	}
	val, err := valueFor(f.Type(), value)
	if err != nil {
		return fmt.Errorf("%s.%s: %w", v.Type(), name, err)
	}
	f.Set(val)
	return nil
}

func structValue(obj any) (reflect.Value, error) {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil %s", ErrNotStruct, typeName(obj))
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotStruct, typeName(obj))
	}
	return v, nil
}

// fieldByName returns an addressable, settable view of the field, unexported
// or not. v must be addressable.
func fieldByName(v reflect.Value, name string) (reflect.Value, error) {
	sf, ok := v.Type().FieldByName(name)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %s has no field %q", ErrPropertyNotFound, v.Type(), name)
	}
	f, err := v.FieldByIndexErr(sf.Index)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %s.%s: %v", ErrPropertyNotFound, v.Type(), name, err)
	}
	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem(), nil
}

// ── Structure ────────────────────────────────────────────────────────────────

// HasMethod reports whether v, or a pointer to it, has the exported method.
func HasMethod(v any, name string) bool {
	t := reflect.TypeOf(v)
	if t == nil {
		return false
	}
	if _, ok := t.MethodByName(name); ok {
		return true
	}
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
		_, ok := reflect.PointerTo(t).MethodByName(name)
		return ok
	}
	return false
}

// HasProperty reports whether the struct behind v declares or promotes name.
func HasProperty(v any, name string) bool {
	t := derefType(reflect.TypeOf(v))
	if t == nil || t.Kind() != reflect.Struct {
		return false
	}
	_, ok := t.FieldByName(name)
	return ok
}

// Implements reports whether v implements the interface iface points to.
//
//	introspect.Implements(store, (*io.Closer)(nil))
func Implements(v any, iface any) bool {
	it := reflect.TypeOf(iface)
	if v == nil || it == nil || it.Kind() != reflect.Pointer || it.Elem().Kind() != reflect.Interface {
		return false
	}
	return reflect.TypeOf(v).Implements(it.Elem())
}

func derefType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
