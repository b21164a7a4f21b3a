package valueobject

import (
	"reflect"
	"time"

	"golang.org/x/exp/slices"
)

// Object is a frozen value-object instance. It exclusively owns its property
// values, exposes no write surface (Set always fails), and compares by
// concrete type plus property values, never by identity. A frozen Object is
// safe for unsynchronized concurrent reads.
type Object struct {
	typ      *Type
	values   map[string]any
	computed map[string]any
}

// Type returns the concrete value-object type of the instance.
func (o *Object) Type() *Type {
	return o.typ
}

// Get returns the value of a declared or computed property, or nil when the
// name is neither.
func (o *Object) Get(name string) any {
	if value, ok := o.values[name]; ok {
		return value
	}
	return o.computed[name]
}

// Has reports whether name is a declared or computed property.
func (o *Object) Has(name string) bool {
	if _, ok := o.values[name]; ok {
		return true
	}
	_, ok := o.computed[name]
	return ok
}

// Set always fails: instances are frozen at construction. The error reports
// a reassignment for declared or computed names and an addition otherwise;
// the prior value is left untouched either way.
func (o *Object) Set(name string, value any) error {
	if o.Has(name) {
		return newFrozenReassignError(o.typ.name, name)
	}
	return newFrozenAddError(o.typ.name, name)
}

// IsEqualTo reports structural equality: other must be an instance of the
// exact same concrete type and every declared property, inherited ones
// included, must be deep-equal. Computed properties do not participate.
func (o *Object) IsEqualTo(other any) bool {
	if other == nil {
		return false
	}
	oo, ok := other.(*Object)
	if !ok || oo == nil {
		return false
	}
	if oo.typ != o.typ {
		return false
	}
	for _, f := range o.typ.schema.fields {
		if !propertyEqual(o.values[f.Name], oo.values[f.Name]) {
			return false
		}
	}
	return true
}

// With builds a new instance of the same concrete type with the named
// overrides substituted and every other property, inherited ones included,
// carried over. It runs the full construction pipeline, so overrides are
// shape- and type-checked exactly like direct construction.
func (o *Object) With(overrides map[string]any) (*Object, error) {
	names := o.typ.propertyNames()
	var unknown []string
	for key := range overrides {
		if !slices.Contains(names, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return nil, newShapeError(o.typ.name, names, append(slices.Clone(names), unknown...))
	}
	if o.typ.schema.positional {
		args := make([]any, 0, len(names))
		for _, name := range names {
			if value, ok := overrides[name]; ok {
				args = append(args, value)
				continue
			}
			args = append(args, o.values[name])
		}
		return o.typ.New(args...)
	}
	record := make(map[string]any, len(names))
	for _, name := range names {
		if value, ok := overrides[name]; ok {
			record[name] = value
			continue
		}
		record[name] = o.values[name]
	}
	return o.typ.New(record)
}

// propertyEqual is the deep equality used between property values. Nested
// value objects compare via IsEqualTo, numbers compare by numeric value so
// a JSON round trip (which parses every number as float64) stays equal, and
// times compare by instant.
func propertyEqual(a, b any) bool {
	if ao, ok := a.(*Object); ok {
		if ao == nil {
			bo, ok := b.(*Object)
			return ok && bo == nil
		}
		return ao.IsEqualTo(b)
	}
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}
	if af, ok := numericValue(a); ok {
		bf, bok := numericValue(b)
		return bok && af == bf
	}
	return reflect.DeepEqual(a, b)
}

func numericValue(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.CanInt():
		return float64(rv.Int()), true
	case rv.CanUint():
		return float64(rv.Uint()), true
	case rv.CanFloat():
		return rv.Float(), true
	default:
		return 0, false
	}
}
