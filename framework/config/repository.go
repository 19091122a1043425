package config

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// Repository is a flat key/value config store, the runtime counterpart of
// Laravel's config() helper. Keys are opaque strings; dotted names such as
// "app.locale" are a convention, not a hierarchy.
type Repository struct {
	mu    sync.RWMutex
	items map[string]any
}

// NewRepository copies items into a new Repository.
func NewRepository(items map[string]any) *Repository {
	r := &Repository{items: make(map[string]any, len(items))}
	for k, v := range items {
		r.items[k] = v
	}
	return r
}

// Get returns the value for key and whether it was present.
func (r *Repository) Get(key string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[key]
	return v, ok
}

// Set stores a value.
//
//	// Laravel: config(['app.locale' => 'fr'])
func (r *Repository) Set(key string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[key] = value
}

// Has reports whether key is present.
func (r *Repository) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// String returns key formatted as a string, or fallback when absent.
func (r *Repository) String(key, fallback string) string {
	v, ok := r.Get(key)
	if !ok || v == nil {
		return fallback
	}
	if s, isString := v.(string); isString {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns key as an int. Strings are parsed; anything else falls back.
func (r *Repository) Int(key string, fallback int) int {
	v, ok := r.Get(key)
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return fallback
}

// Bool returns key as a bool. Strings are parsed; anything else falls back.
func (r *Repository) Bool(key string, fallback bool) bool {
	v, ok := r.Get(key)
	if !ok {
		return fallback
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed
		}
	}
	return fallback
}

// All returns a copy of every item.
func (r *Repository) All() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]any, len(r.items))
	for k, v := range r.items {
		out[k] = v
	}
	return out
}

// Keys returns the sorted keys.
func (r *Repository) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.items))
	for k := range r.items {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Flush removes every item.
func (r *Repository) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[string]any)
}
