package valueobject

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/exp/slices"
)

// failureCodec marshals failures without HTML escaping so messages such
// as "must be > 0" survive verbatim.
var failureCodec = jsoniter.Config{}.Froze()

// Failure is one collected validation failure. Property is empty for
// unscoped failures. A scoped failure marshals as
// {"property":"year","message":"must be > 0"}.
type Failure struct {
	Property string `json:"property,omitempty"`
	Message  string `json:"message"`
}

// MarshalJSON renders the documented failure form literally, bypassing the
// HTML escaping the standard-library-compatible configs apply.
func (f Failure) MarshalJSON() ([]byte, error) {
	type plain Failure
	return failureCodec.Marshal(plain(f))
}

// String renders the failure the way the default validation error shows it:
// `"message"` when unscoped, `property "message"` when scoped.
func (f Failure) String() string {
	if f.Property == "" {
		return fmt.Sprintf("%q", f.Message)
	}
	return fmt.Sprintf("%s %q", f.Property, f.Message)
}

// FailureCollector accumulates validation failures in insertion order.
// The zero value is ready to use.
type FailureCollector struct {
	failures []Failure
}

// Add appends an unscoped failure.
func (c *FailureCollector) Add(message string) {
	c.failures = append(c.failures, Failure{Message: message})
}

// For returns a sub-view whose Add appends failures scoped to the property.
func (c *FailureCollector) For(property string) *PropertyFailures {
	return &PropertyFailures{property: property, collector: c}
}

// Failures returns a copy of the collected failures in insertion order.
func (c *FailureCollector) Failures() []Failure {
	return slices.Clone(c.failures)
}

// HasFailures reports whether anything has been collected.
func (c *FailureCollector) HasFailures() bool {
	return len(c.failures) > 0
}

// PropertyFailures is a FailureCollector view scoped to one property.
type PropertyFailures struct {
	property  string
	collector *FailureCollector
}

// Add appends a failure scoped to the view's property.
func (p *PropertyFailures) Add(message string) {
	p.collector.failures = append(p.collector.failures, Failure{Property: p.property, Message: message})
}

// Validate invokes the type's ValidationFailures hook and, when the
// collector is non-empty afterwards, its ThrowValidationError hook. Without
// a ValidationFailures hook anywhere in the ancestor chain it never fails.
// The default error-raising step returns an Invalid Error whose message is
// the type name, "is invalid", then every failure in insertion order.
func (o *Object) Validate() error {
	hook := o.typ.closestValidationFailures()
	if hook == nil {
		return nil
	}
	collector := &FailureCollector{}
	hook(o, collector)
	if !collector.HasFailures() {
		return nil
	}
	if throw := o.typ.closestThrowValidationError(); throw != nil {
		return throw(o, collector)
	}
	return newInvalidError(o.typ.name, collector.Failures())
}
