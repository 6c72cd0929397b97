package generator

import (
	"fmt"
	"slices"
)

// Registry maps generator names to generator factory functions
var Registry = map[string]func() Generator{
	"prose":   func() Generator { return &ProseGenerator{} },
	"logs":    func() Generator { return &LogGenerator{UserCount: 100} },
	"metrics": func() Generator { return &MetricGenerator{} },
	"urls":    func() Generator { return &URLGenerator{} },
	"edges":   func() Generator { return &EdgeGenerator{} },
}

// Get returns a generator by name
func Get(name string) (Generator, error) {
	factory, exists := Registry[name]
	if !exists {
		return nil, fmt.Errorf("unknown generator: %s", name)
	}
	return factory(), nil
}

// List returns all available generator names, sorted
func List() []string {
	var names []string
	for name := range Registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SetUserCount updates the UserCount for LogGenerator
func SetUserCount(count int) {
	Registry["logs"] = func() Generator { return &LogGenerator{UserCount: count} }
}
