package introspect

import (
	"reflect"
	"sort"
	"sync"
)

// A trait is a named capability a type composes. Traits come from two
// sources: structs and interfaces a type embeds (transitively, Go's closest
// thing to parent classes), and tags declared with DeclareTraits.

type traitRef struct {
	name string
	typ  reflect.Type // nil for plain string tags
}

var registry = struct {
	sync.RWMutex
	traits map[reflect.Type][]traitRef
}{traits: make(map[reflect.Type][]traitRef)}

// DeclareTraits records that unit composes traits. A trait is either a
// string tag or a value (or nil pointer) of a type; type traits are walked in
// turn, so a trait that composes other traits passes them on.
//
//	func init() {
//	    introspect.DeclareTraits((*Store)(nil), "cacheable", (*Auditable)(nil))
//	}
func DeclareTraits(unit any, traits ...any) {
	t := derefType(reflect.TypeOf(unit))
	if t == nil {
		return
	}
	registry.Lock()
	defer registry.Unlock()
	for _, tr := range traits {
		ref := refOf(tr)
		if ref.name == "" || containsRef(registry.traits[t], ref) {
			continue
		}
		registry.traits[t] = append(registry.traits[t], ref)
	}
}

// TraitName returns the name a trait is reported under: the tag itself for
// strings, "import/path.Type" for types.
func TraitName(trait any) string { return refOf(trait).name }

// UsesTraits lists every trait v composes, sorted and without duplicates.
func UsesTraits(v any) []string {
	t := derefType(reflect.TypeOf(v))
	if t == nil {
		return nil
	}
	found := make(map[string]bool)
	walkTraits(t, found, make(map[reflect.Type]bool))

	out := make([]string, 0, len(found))
	for name := range found {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// UsesTrait reports whether trait is among UsesTraits(v).
func UsesTrait(v any, trait any) bool {
	name := TraitName(trait)
	for _, got := range UsesTraits(v) {
		if got == name {
			return true
		}
	}
	return false
}

func walkTraits(t reflect.Type, found map[string]bool, visited map[reflect.Type]bool) {
	if visited[t] {
		return
	}
	visited[t] = true

	registry.RLock()
	declared := append([]traitRef(nil), registry.traits[t]...)
	registry.RUnlock()
	for _, ref := range declared {
		found[ref.name] = true
		if ref.typ != nil {
			walkTraits(ref.typ, found, visited)
		}
	}

	if t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := derefType(f.Type)
		found[typeKey(ft)] = true
		walkTraits(ft, found, visited)
	}
}

func refOf(trait any) traitRef {
	switch tr := trait.(type) {
	case nil:
		return traitRef{}
	case string:
		return traitRef{name: tr}
	case reflect.Type:
		t := derefType(tr)
		return traitRef{name: typeKey(t), typ: t}
	default:
		t := derefType(reflect.TypeOf(trait))
		return traitRef{name: typeKey(t), typ: t}
	}
}

func containsRef(refs []traitRef, ref traitRef) bool {
	for _, r := range refs {
		if r.name == ref.name {
			return true
		}
	}
	return false
}

func typeKey(t reflect.Type) string {
	if t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
