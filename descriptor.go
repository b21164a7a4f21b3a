package valueobject

import (
	"reflect"
)

// Undefined marks a property value that was never supplied.
// It is never a valid property value; nil always is.
var Undefined = undefined{}

type undefined struct{}

func (undefined) String() string {
	return "undefined"
}

func isUndefined(value any) bool {
	_, ok := value.(undefined)
	return ok
}

type kind int

const (
	kindAny kind = iota
	kindString
	kindNumber
	kindBoolean
	kindInstance
	kindValue
)

// Descriptor is the rule a declared property's value must satisfy:
// a primitive kind, an instance of a Go type, or a nested value-object type.
type Descriptor struct {
	kind kind
	typ  reflect.Type
	vt   *Type
}

var (
	// String accepts values of string kind.
	String = Descriptor{kind: kindString}
	// Number accepts values of any integer or float kind.
	Number = Descriptor{kind: kindNumber}
	// Boolean accepts values of bool kind.
	Boolean = Descriptor{kind: kindBoolean}
)

// InstanceOf returns a Descriptor accepting instances of the sample's type,
// or of any type assignable to it. Pointer samples are dereferenced, so
// InstanceOf((*T)(nil)) and InstanceOf(T{}) declare the same rule, and a
// sample like (*fmt.Stringer)(nil) declares an interface rule satisfied by
// every implementation.
func InstanceOf(sample any) Descriptor {
	t := reflect.TypeOf(sample)
	if t == nil {
		panic("valueobject: InstanceOf called with untyped nil")
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return Descriptor{kind: kindInstance, typ: t}
}

// Of returns a Descriptor accepting objects of the given value-object type
// or of any of its descendants.
func Of(t *Type) Descriptor {
	if t == nil {
		panic("valueobject: Of called with nil type")
	}
	return Descriptor{kind: kindValue, vt: t}
}

// Matches reports whether value satisfies the descriptor.
// nil satisfies every descriptor; Undefined satisfies none.
func (d Descriptor) Matches(value any) bool {
	if value == nil {
		return true
	}
	if isUndefined(value) {
		return false
	}
	switch d.kind {
	case kindAny:
		return true
	case kindString:
		return reflect.TypeOf(value).Kind() == reflect.String
	case kindNumber:
		return isNumberKind(reflect.TypeOf(value).Kind())
	case kindBoolean:
		return reflect.TypeOf(value).Kind() == reflect.Bool
	case kindInstance:
		t := reflect.TypeOf(value)
		if d.typ.Kind() == reflect.Interface {
			return t.Implements(d.typ) || reflect.PointerTo(t).Implements(d.typ)
		}
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		return t == d.typ || t.AssignableTo(d.typ)
	case kindValue:
		o, ok := value.(*Object)
		if !ok {
			return false
		}
		// a typed nil is null, and null satisfies every descriptor
		return o == nil || o.typ.isDescendantOf(d.vt)
	default:
		return false
	}
}

// signature renders the descriptor the way construction errors show it,
// e.g. "string" or "instanceof Child".
func (d Descriptor) signature() string {
	switch d.kind {
	case kindString:
		return "string"
	case kindNumber:
		return "number"
	case kindBoolean:
		return "boolean"
	case kindInstance:
		if name := d.typ.Name(); name != "" {
			return "instanceof " + name
		}
		return "instanceof " + d.typ.String()
	case kindValue:
		return "instanceof " + d.vt.name
	default:
		return "any"
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// actualTypeName renders a supplied value's runtime type the way
// construction errors show it: null, undefined, string, number, boolean,
// or "object <TypeName>".
func actualTypeName(value any) string {
	if value == nil {
		return "null"
	}
	if isUndefined(value) {
		return "undefined"
	}
	if o, ok := value.(*Object); ok {
		if o == nil {
			return "null"
		}
		return "object " + o.typ.name
	}
	t := reflect.TypeOf(value)
	switch {
	case t.Kind() == reflect.String:
		return "string"
	case isNumberKind(t.Kind()):
		return "number"
	case t.Kind() == reflect.Bool:
		return "boolean"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return "object " + name
	}
	return "object " + t.String()
}
