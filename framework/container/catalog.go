package container

import (
	"sort"
	"sync"
)

// ProviderConstructor builds a fresh provider instance.
type ProviderConstructor func() ServiceProvider

// The catalog maps provider names to constructors so providers can be
// referenced by name, the way Laravel config lists provider class names.
var catalog = struct {
	sync.RWMutex
	ctors map[string]ProviderConstructor
}{ctors: make(map[string]ProviderConstructor)}

// RegisterProviderType makes a provider loadable by name. Packages usually
// call it from init.
//
//	func init() {
//	    container.RegisterProviderType("billing", func() container.ServiceProvider {
//	        return &BillingServiceProvider{}
//	    })
//	}
func RegisterProviderType(name string, ctor ProviderConstructor) {
	catalog.Lock()
	defer catalog.Unlock()
	catalog.ctors[name] = ctor
}

// LookupProvider builds the provider registered under name.
func LookupProvider(name string) (ServiceProvider, bool) {
	catalog.RLock()
	ctor, ok := catalog.ctors[name]
	catalog.RUnlock()
	if !ok || ctor == nil {
		return nil, false
	}
	p := ctor()
	return p, p != nil
}

// ProviderTypes lists the catalog, sorted.
func ProviderTypes() []string {
	catalog.RLock()
	defer catalog.RUnlock()
	out := make([]string, 0, len(catalog.ctors))
	for name := range catalog.ctors {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
