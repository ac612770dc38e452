package store

import (
	"context"
	"fmt"
	"sort"
)

// Constructor builds a Store from provider-independent settings.
type Constructor func(ctx context.Context, cfg Config) (Store, error)

var registry = map[string]Constructor{}

// Register adds a store constructor under the given provider name.
func Register(name string, ctor Constructor) {
	registry[name] = ctor
}

// Get returns the store constructor for the given provider name.
func Get(name string) (Constructor, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown store provider: %s", name)
	}
	return ctor, nil
}

// Providers returns the names of all registered store providers, sorted.
func Providers() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
