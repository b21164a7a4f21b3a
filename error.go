package valueobject

import (
	"fmt"
	"strings"

	"github.com/go-leo/gox/slicex"
)

type Code int

const (
	NoProperties      Code = 1
	WrongArity             = 2
	WrongShape             = 3
	UndefinedProperty      = 4
	WrongType              = 5
	FrozenAdd              = 6
	FrozenReassign         = 7
	UnknownType            = 8
	MalformedJSON          = 9
	Invalid                = 10
)

type Error struct {
	Code     Code
	TypeName string
	// Expected is the declared property list, rendered in schema order.
	Expected []string
	// Actual is the supplied key set or actual type signature, depending on Code.
	Actual   []string
	Property string
	Got      int
	Want     int
	Value    string
	Failures []Failure
	err      error
}

func (e Error) Error() string {
	switch e.Code {
	case NoProperties:
		return "valueobject: ValueObjects must define static properties member"
	case WrongArity:
		return fmt.Sprintf("valueobject: %s(%s) called with %d arguments (expected %d)",
			e.TypeName, strings.Join(e.Expected, ", "), e.Got, e.Want)
	case WrongShape:
		if len(e.Actual) == 0 && e.Value != "" {
			return fmt.Sprintf("valueobject: %s({%s}) called with %s",
				e.TypeName, strings.Join(e.Expected, ", "), e.Value)
		}
		return fmt.Sprintf("valueobject: %s({%s}) called with {%s}",
			e.TypeName, strings.Join(e.Expected, ", "), strings.Join(e.Actual, ", "))
	case UndefinedProperty:
		return fmt.Sprintf("valueobject: %s(%s) called with undefined for %s",
			e.TypeName, strings.Join(e.Expected, ", "), e.Property)
	case WrongType:
		return fmt.Sprintf("valueobject: %s(%s) called with (%s)",
			e.TypeName, strings.Join(e.Expected, ", "), strings.Join(e.Actual, ", "))
	case FrozenAdd:
		return fmt.Sprintf("valueobject: cannot add property %s to frozen %s", e.Property, e.TypeName)
	case FrozenReassign:
		return fmt.Sprintf("valueobject: cannot reassign property %s of frozen %s", e.Property, e.TypeName)
	case UnknownType:
		if e.Value != "" {
			return fmt.Sprintf("valueobject: cannot deserialize value with non-string __type__ (%s)", e.Value)
		}
		if e.TypeName == "" {
			return "valueobject: cannot deserialize value without __type__"
		}
		return fmt.Sprintf("valueobject: cannot deserialize unknown type %s", e.TypeName)
	case MalformedJSON:
		return fmt.Sprintf("valueobject: failed to parse serialized value, %v", e.err)
	case Invalid:
		rendered := slicex.Map[[]Failure, []string](
			e.Failures,
			func(i int, f Failure) string { return f.String() },
		)
		return fmt.Sprintf("%s is invalid: %s", e.TypeName, strings.Join(rendered, ", "))
	default:
		return ""
	}
}

func (e Error) Unwrap() error {
	return e.err
}

func newNoPropertiesError() error {
	return Error{Code: NoProperties}
}

func newArityError(typeName string, expected []string, got, want int) error {
	return Error{Code: WrongArity, TypeName: typeName, Expected: expected, Got: got, Want: want}
}

func newShapeError(typeName string, expected, actual []string) error {
	return Error{Code: WrongShape, TypeName: typeName, Expected: expected, Actual: actual}
}

func newNonRecordError(typeName string, expected []string, value string) error {
	return Error{Code: WrongShape, TypeName: typeName, Expected: expected, Value: value}
}

func newUndefinedError(typeName string, expected []string, property string) error {
	return Error{Code: UndefinedProperty, TypeName: typeName, Expected: expected, Property: property}
}

func newTypeError(typeName string, expected, actual []string) error {
	return Error{Code: WrongType, TypeName: typeName, Expected: expected, Actual: actual}
}

func newFrozenAddError(typeName string, property string) error {
	return Error{Code: FrozenAdd, TypeName: typeName, Property: property}
}

func newFrozenReassignError(typeName string, property string) error {
	return Error{Code: FrozenReassign, TypeName: typeName, Property: property}
}

func newUnknownTypeError(typeName string) error {
	return Error{Code: UnknownType, TypeName: typeName}
}

func newBadTypeTagError(actual string) error {
	return Error{Code: UnknownType, Value: actual}
}

func newMalformedJSONError(err error) error {
	return Error{Code: MalformedJSON, err: err}
}

func newInvalidError(typeName string, failures []Failure) error {
	return Error{Code: Invalid, TypeName: typeName, Failures: failures}
}
