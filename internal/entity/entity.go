// Package entity provides the canonical fact representation consumed by the
// predicate evaluator. Facts arrive as either table-like (map) or list-like
// (key/value pair sequence) containers; both are normalized at the boundary
// into an ordered-map Entity so the rest of the system never branches on
// container shape.
package entity

import (
	"sort"
)

// Symbol is a named constant value. Symbols compare by identity only.
type Symbol string

// Entity is an immutable, insertion-ordered key/value fact container.
// The zero value is an empty entity and is ready to use. Entities are never
// mutated in place: Set returns a new Entity sharing untouched values.
type Entity struct {
	keys   []string
	values map[string]any
}

// New returns an empty entity.
func New() Entity {
	return Entity{}
}

// FromMap normalizes a table-like container into an Entity.
// Keys are sorted so logically identical maps produce identical entities.
func FromMap(m map[string]any) Entity {
	if len(m) == 0 {
		return Entity{}
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	e := Entity{
		keys:   keys,
		values: make(map[string]any, len(m)),
	}
	for _, k := range keys {
		e.values[k] = normalize(m[k])
	}
	return e
}

// FromPairs normalizes a list-like container into an Entity. Each element
// must be a two-element pair (slice of key, value); the key may be a string
// or Symbol. Malformed elements are skipped rather than reported; a broken
// fact pattern simply carries fewer attributes.
func FromPairs(pairs []any) Entity {
	e := Entity{values: make(map[string]any, len(pairs))}
	for _, p := range pairs {
		kv, ok := p.([]any)
		if !ok || len(kv) != 2 {
			continue
		}
		var key string
		switch k := kv[0].(type) {
		case string:
			key = k
		case Symbol:
			key = string(k)
		default:
			continue
		}
		if _, dup := e.values[key]; !dup {
			e.keys = append(e.keys, key)
		}
		e.values[key] = normalize(kv[1])
	}
	if len(e.values) == 0 {
		return Entity{}
	}
	return e
}

// Normalize converts a raw value into its canonical form: the same
// conversion applied to every value entering an entity. Callers comparing
// external values (rule condition constants, query arguments) against
// entity attributes normalize first so numeric widths never matter.
func Normalize(v any) any {
	return normalize(v)
}

// normalize converts a raw value into its canonical in-entity form.
// All numeric types collapse to float64 so numeric comparison is uniform;
// nested maps become nested entities. Unrecognized values are preserved
// as-is and compare equal to nothing, which makes failed checks evaluate
// false instead of erroring.
func normalize(v any) any {
	switch val := v.(type) {
	case bool, string, float64, Symbol, Entity:
		return val
	case int:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case float32:
		return float64(val)
	case uint:
		return float64(val)
	case map[string]any:
		return FromMap(val)
	case []Entity:
		out := make([]Entity, len(val))
		copy(out, val)
		return out
	case []map[string]any:
		out := make([]Entity, 0, len(val))
		for _, m := range val {
			out = append(out, FromMap(m))
		}
		return out
	default:
		return val
	}
}

// Len returns the number of attributes.
func (e Entity) Len() int {
	return len(e.keys)
}

// Keys returns the attribute names in canonical order.
func (e Entity) Keys() []string {
	out := make([]string, len(e.keys))
	copy(out, e.keys)
	return out
}

// Has reports whether the attribute is present.
func (e Entity) Has(key string) bool {
	_, ok := e.values[key]
	return ok
}

// Get returns the attribute value and whether it is present.
func (e Entity) Get(key string) (any, bool) {
	v, ok := e.values[key]
	return v, ok
}

// GetOr returns the attribute value, or def if the attribute is absent.
// Absence is never an error.
func (e Entity) GetOr(key string, def any) any {
	if v, ok := e.values[key]; ok {
		return v
	}
	return def
}

// Bool returns the attribute as a bool, or def on absence or type mismatch.
func (e Entity) Bool(key string, def bool) bool {
	if v, ok := e.values[key].(bool); ok {
		return v
	}
	return def
}

// Number returns the attribute as a float64, or def on absence or mismatch.
func (e Entity) Number(key string, def float64) float64 {
	if v, ok := e.values[key].(float64); ok {
		return v
	}
	return def
}

// String returns the attribute as a string, or def on absence or mismatch.
// Symbols are not strings; they keep their identity semantics.
func (e Entity) String(key string, def string) string {
	if v, ok := e.values[key].(string); ok {
		return v
	}
	return def
}

// Child returns a nested entity attribute. Missing or non-entity values
// yield an empty entity so chained lookups stay total.
func (e Entity) Child(key string) Entity {
	if v, ok := e.values[key].(Entity); ok {
		return v
	}
	return Entity{}
}

// List returns an entity-sequence attribute, or nil when absent/mismatched.
func (e Entity) List(key string) []Entity {
	if v, ok := e.values[key].([]Entity); ok {
		out := make([]Entity, len(v))
		copy(out, v)
		return out
	}
	return nil
}

// Set returns a new entity with key bound to value. The receiver is not
// modified; untouched values are shared between the two entities.
func (e Entity) Set(key string, value any) Entity {
	out := Entity{
		keys:   make([]string, len(e.keys)),
		values: make(map[string]any, len(e.values)+1),
	}
	copy(out.keys, e.keys)
	for k, v := range e.values {
		out.values[k] = v
	}
	if !out.Has(key) {
		out.keys = append(out.keys, key)
	}
	out.values[key] = normalize(value)
	return out
}

// Equal reports type-directed equality of two canonical values: numbers
// compare numerically, strings lexically, symbols and bools by identity,
// nested entities structurally. Comparing values of different types yields
// false, never an error.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case Symbol:
		bv, ok := b.(Symbol)
		return ok && av == bv
	case Entity:
		bv, ok := b.(Entity)
		return ok && av.EqualTo(bv)
	case []Entity:
		bv, ok := b.([]Entity)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !av[i].EqualTo(bv[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// EqualTo reports structural equality of two entities.
// Key order is irrelevant: only logical content matters.
func (e Entity) EqualTo(other Entity) bool {
	if len(e.values) != len(other.values) {
		return false
	}
	for k, v := range e.values {
		ov, ok := other.values[k]
		if !ok || !Equal(v, ov) {
			return false
		}
	}
	return true
}

// Map returns the entity content as a plain map (values stay canonical).
// Used by exporters; the entity itself is unaffected by mutation of the
// returned map.
func (e Entity) Map() map[string]any {
	out := make(map[string]any, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}
