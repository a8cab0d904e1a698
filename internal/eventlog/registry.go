package eventlog

import (
	"fmt"
	"sort"
)

// Constructor builds an Opener from provider settings.
type Constructor func(cfg Config) (Opener, error)

var registry = map[string]Constructor{}

// Register adds an Opener constructor under the given provider name.
func Register(name string, ctor Constructor) {
	registry[name] = ctor
}

// Get returns the constructor registered for name.
func Get(name string) (Constructor, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown eventlog provider: %s", name)
	}
	return ctor, nil
}

// New resolves cfg.Provider and builds its Opener.
func New(cfg Config) (Opener, error) {
	ctor, err := Get(cfg.Provider)
	if err != nil {
		return nil, err
	}
	return ctor(cfg)
}

// Providers returns the names of all registered providers, sorted.
func Providers() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
