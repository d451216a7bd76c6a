package runtime

import (
	"sort"
)

// Environment is one lexical scope. Function values keep a pointer to the
// scope they were defined in, so scopes are shared, never copied: a later
// binding in a captured scope is visible to every closure holding it.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// NewEnclosedEnvironment creates the scope for a function call or block.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return NewEnvironment(outer)
}

// Parent exposes the lexical parent (nil for a root scope).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Extend creates a child scope whose parent is e.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}

// Snapshot returns a copy of the bindings of this scope only.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Define inserts or shadows a binding in the current scope and returns the
// bound value.
func (e *Environment) Define(name string, value Value) Value {
	e.values[name] = value
	return value
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Keys returns the names bound in this scope in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
