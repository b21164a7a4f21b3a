package valueobject

import (
	"errors"
	"reflect"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

// ErrNotStruct is returned by SchemaOf when the prototype is not a struct
// or a pointer to one.
var ErrNotStruct = errors.New("valueobject: SchemaOf requires a struct prototype")

// Field is a single declared property: a name, and for named schemas the
// Descriptor its values must satisfy.
type Field struct {
	Name string
	Type Descriptor
}

// F builds a named-schema field.
func F(name string, typ Descriptor) Field {
	return Field{Name: name, Type: typ}
}

// Schema is the declared property list of a value-object type.
// A positional schema declares names only and accepts any non-Undefined
// value; a named schema pairs every name with a Descriptor.
type Schema struct {
	positional bool
	fields     []Field
}

// Positional declares an ordered, untyped property list. Construction takes
// exactly one argument per name, in this order.
func Positional(names ...string) *Schema {
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, Field{Name: name})
	}
	return &Schema{positional: true, fields: fields}
}

// Named declares a typed property list. Construction takes exactly one
// map[string]any argument whose key set equals the declared names. Field
// order here fixes schema order; argument order never matters.
func Named(fields ...Field) *Schema {
	return &Schema{fields: slices.Clone(fields)}
}

// Fields returns a copy of the schema's fields in declaration order.
func (s *Schema) Fields() []Field {
	return slices.Clone(s.fields)
}

// Positional reports whether the schema is positional.
func (s *Schema) Positional() bool {
	return s.positional
}

// SchemaOf derives a named schema from a struct prototype via reflection.
// Exported fields map to properties: string kinds to String, integer and
// float kinds to Number, bool to Boolean, anything else to InstanceOf of
// the field's type. The property name is the field name with its first
// rune lowered, overridable with a `vo:"name"` tag; `vo:"-"` skips the
// field.
func SchemaOf(prototype any) (*Schema, error) {
	t := reflect.TypeOf(prototype)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := lowerFirst(sf.Name)
		if tag, ok := sf.Tag.Lookup("vo"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		fields = append(fields, Field{Name: name, Type: descriptorOf(sf.Type)})
	}
	return Named(fields...), nil
}

func descriptorOf(t reflect.Type) Descriptor {
	switch {
	case t.Kind() == reflect.String:
		return String
	case isNumberKind(t.Kind()):
		return Number
	case t.Kind() == reflect.Bool:
		return Boolean
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return Descriptor{kind: kindInstance, typ: t}
}

func lowerFirst(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}
