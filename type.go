package valueobject

import (
	"fmt"

	"github.com/go-leo/gox/slicex"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Type is a concrete value-object type: a registered name, an optional
// parent, and a Property Schema. Instances are built with New and are
// frozen from then on.
type Type struct {
	name                 string
	parent               *Type
	declared             *Schema
	schema               *Schema
	finalize             func(*Object) map[string]any
	validationFailures   func(*Object, *FailureCollector)
	throwValidationError func(*Object, *FailureCollector) error
	rehydrate            func(map[string]any) error
}

// Define declares a concrete value-object type. The schema may be nil for a
// type that only inherits properties; a type whose effective schema ends up
// empty fails at construction time, not here. The name is the serialization
// tag and must be non-empty.
func Define(name string, schema *Schema, opts ...Option) *Type {
	if name == "" {
		panic("valueobject: empty type name")
	}
	o := newOption(opts...)
	t := &Type{
		name:                 name,
		parent:               o.parent,
		declared:             schema,
		finalize:             o.finalize,
		validationFailures:   o.validationFailures,
		throwValidationError: o.throwValidationError,
		rehydrate:            o.rehydrate,
	}
	t.schema = t.mergeSchemas()
	return t
}

// Name returns the registered type name used as the serialization tag.
func (t *Type) Name() string {
	return t.name
}

// Parent returns the declared parent type, or nil.
func (t *Type) Parent() *Type {
	return t.parent
}

// Properties returns the effective schema's fields: ancestor declarations
// first, own declarations last, redeclared names kept at their most
// ancestral position with the closest declaration's descriptor.
func (t *Type) Properties() []Field {
	return t.schema.Fields()
}

func (t *Type) isDescendantOf(ancestor *Type) bool {
	for cur := t; cur != nil; cur = cur.parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// mergeSchemas flattens the ancestor chain into the effective schema.
// Root-ancestor fields come first; a redeclared name keeps its first
// position but takes the closest declaration's descriptor. The result is
// positional only when every declaring ancestor is positional.
func (t *Type) mergeSchemas() *Schema {
	var chain []*Schema
	for cur := t; cur != nil; cur = cur.parent {
		if cur.declared != nil {
			chain = slicex.AppendFirst(chain, cur.declared)
		}
	}
	merged := &Schema{positional: len(chain) > 0}
	index := map[string]int{}
	for _, schema := range chain {
		if !schema.positional {
			merged.positional = false
		}
		for _, f := range schema.fields {
			if i, ok := index[f.Name]; ok {
				merged.fields[i].Type = f.Type
				continue
			}
			index[f.Name] = len(merged.fields)
			merged.fields = append(merged.fields, f)
		}
	}
	return merged
}

// New runs the construction pipeline: schema resolution, arity and shape
// checks, the Undefined check, the type check, assignment, the Finalize
// hook, and freezing. No instance escapes a failed call.
func (t *Type) New(args ...any) (*Object, error) {
	fields := t.schema.fields
	if len(fields) == 0 {
		return nil, newNoPropertiesError()
	}
	values, err := t.resolveArguments(args)
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		if isUndefined(values[f.Name]) {
			return nil, newUndefinedError(t.name, t.declaredSignature(), f.Name)
		}
	}
	if err := t.checkTypes(values); err != nil {
		return nil, err
	}
	obj := &Object{typ: t, values: values}
	if finalize := t.closestFinalize(); finalize != nil {
		if computed := finalize(obj); len(computed) > 0 {
			obj.computed = map[string]any{}
			for name, value := range computed {
				if _, declared := values[name]; declared {
					continue
				}
				obj.computed[name] = value
			}
		}
	}
	return obj, nil
}

// MustNew is like New but panics on error. Intended for package-level
// construction of known-good instances and for generated code.
func (t *Type) MustNew(args ...any) *Object {
	obj, err := t.New(args...)
	if err != nil {
		panic(err)
	}
	return obj
}

// resolveArguments performs the shape check and maps arguments to declared
// property names.
func (t *Type) resolveArguments(args []any) (map[string]any, error) {
	fields := t.schema.fields
	names := t.propertyNames()
	if t.schema.positional {
		if len(args) != len(fields) {
			return nil, newArityError(t.name, names, len(args), len(fields))
		}
		values := make(map[string]any, len(fields))
		for i, f := range fields {
			values[f.Name] = args[i]
		}
		return values, nil
	}
	if len(args) != 1 {
		return nil, newArityError(t.name, names, len(args), 1)
	}
	record, ok := args[0].(map[string]any)
	if !ok {
		return nil, newNonRecordError(t.name, names, actualTypeName(args[0]))
	}
	if err := t.checkShape(record); err != nil {
		return nil, err
	}
	values := make(map[string]any, len(fields))
	for _, f := range fields {
		values[f.Name] = record[f.Name]
	}
	return values, nil
}

// checkShape verifies the record's key set exactly equals the declared
// names. Go maps do not preserve insertion order, so the supplied side of
// the error renders declared-order keys first, then extra keys sorted.
func (t *Type) checkShape(record map[string]any) error {
	names := t.propertyNames()
	mismatch := false
	var supplied []string
	for _, name := range names {
		if _, ok := record[name]; ok {
			supplied = append(supplied, name)
			continue
		}
		mismatch = true
	}
	extras := make([]string, 0)
	for _, key := range maps.Keys(record) {
		if !slices.Contains(names, key) {
			extras = append(extras, key)
		}
	}
	if len(extras) > 0 {
		mismatch = true
		slices.Sort(extras)
		supplied = append(supplied, extras...)
	}
	if mismatch {
		return newShapeError(t.name, names, supplied)
	}
	return nil
}

// checkTypes runs every declared descriptor against its resolved value and,
// on any failure, reports the whole schema's declared signature against the
// actual signature of everything supplied.
func (t *Type) checkTypes(values map[string]any) error {
	fields := t.schema.fields
	failed := false
	actual := make([]string, 0, len(fields))
	for _, f := range fields {
		value := values[f.Name]
		actual = append(actual, fmt.Sprintf("%s:%s", f.Name, actualTypeName(value)))
		if value == nil {
			continue
		}
		if !f.Type.Matches(value) {
			failed = true
		}
	}
	if failed {
		return newTypeError(t.name, t.declaredSignature(), actual)
	}
	return nil
}

func (t *Type) propertyNames() []string {
	return slicex.Map[[]Field, []string](
		t.schema.fields,
		func(i int, f Field) string { return f.Name },
	)
}

// declaredSignature renders the schema for error messages: bare names for
// positional schemas, "name:type" pairs for named ones.
func (t *Type) declaredSignature() []string {
	if t.schema.positional {
		return t.propertyNames()
	}
	return slicex.Map[[]Field, []string](
		t.schema.fields,
		func(i int, f Field) string { return f.Name + ":" + f.Type.signature() },
	)
}

func (t *Type) closestFinalize() func(*Object) map[string]any {
	for cur := t; cur != nil; cur = cur.parent {
		if cur.finalize != nil {
			return cur.finalize
		}
	}
	return nil
}

func (t *Type) closestValidationFailures() func(*Object, *FailureCollector) {
	for cur := t; cur != nil; cur = cur.parent {
		if cur.validationFailures != nil {
			return cur.validationFailures
		}
	}
	return nil
}

func (t *Type) closestThrowValidationError() func(*Object, *FailureCollector) error {
	for cur := t; cur != nil; cur = cur.parent {
		if cur.throwValidationError != nil {
			return cur.throwValidationError
		}
	}
	return nil
}

func (t *Type) closestRehydrate() func(map[string]any) error {
	for cur := t; cur != nil; cur = cur.parent {
		if cur.rehydrate != nil {
			return cur.rehydrate
		}
	}
	return nil
}
