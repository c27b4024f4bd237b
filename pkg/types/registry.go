package types

import (
	"fmt"
	"slices"
)

// factories maps a kind name to a constructor returning a fresh entity.
// Filled once by init in kinds.go; read-only afterwards.
var factories = map[string]func() Entity{}

// Register adds a kind factory. It panics on an empty or duplicate name,
// which can only happen through a programming error at init time.
func Register(kind string, factory func() Entity) {
	if kind == "" || factory == nil {
		panic("types: Register requires a kind name and a factory")
	}
	if _, dup := factories[kind]; dup {
		panic("types: kind registered twice: " + kind)
	}
	factories[kind] = factory
}

// New returns a fresh entity of the given kind with a new id and timestamps.
// Returns ErrUnknownKind if no factory is registered under kind.
func New(kind string) (Entity, error) {
	factory, ok := factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return factory(), nil
}

// IsKnown reports whether kind has a registered factory.
func IsKnown(kind string) bool {
	_, ok := factories[kind]
	return ok
}

// Kinds returns the registered kind names sorted alphabetically.
func Kinds() []string {
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Key returns the composite registry key "<kind>.<id>".
func Key(kind, id string) string {
	return kind + "." + id
}

// KeyOf returns the composite registry key of e.
func KeyOf(e Entity) string {
	return Key(e.Kind(), e.Meta().ID)
}
