package types

import "iter"

// Attrs is an insertion-ordered mapping of field name to Value. It carries
// the fields attached to an entity at runtime beyond its kind's schema.
// The zero value is ready to use.
type Attrs struct {
	keys []string
	vals map[string]Value
}

// Set stores v under name. A new name is appended to the iteration order;
// an existing name keeps its position.
func (a *Attrs) Set(name string, v Value) {
	if a.vals == nil {
		a.vals = make(map[string]Value)
	}
	if _, ok := a.vals[name]; !ok {
		a.keys = append(a.keys, name)
	}
	a.vals[name] = v
}

// Get returns the value stored under name.
func (a *Attrs) Get(name string) (Value, bool) {
	if a == nil {
		return Value{}, false
	}
	v, ok := a.vals[name]
	return v, ok
}

// Delete removes name. Deleting an absent name is a no-op.
func (a *Attrs) Delete(name string) {
	if a == nil {
		return
	}
	if _, ok := a.vals[name]; !ok {
		return
	}
	delete(a.vals, name)
	for i, k := range a.keys {
		if k == name {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of stored fields.
func (a *Attrs) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// Keys returns the field names in insertion order.
func (a *Attrs) Keys() []string {
	if a == nil {
		return nil
	}
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// All iterates over the fields in insertion order.
func (a *Attrs) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if a == nil {
			return
		}
		for _, k := range a.keys {
			if !yield(k, a.vals[k]) {
				return
			}
		}
	}
}
