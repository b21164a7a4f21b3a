package valueobject

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type shape interface {
	Area() float64
}

type square struct {
	Side float64
}

func (s square) Area() float64 {
	return s.Side * s.Side
}

func TestPrimitiveDescriptors(t *testing.T) {
	assert.True(t, String.Matches("abc"))
	assert.False(t, String.Matches(1.0))
	assert.False(t, String.Matches(true))

	assert.True(t, Number.Matches(1.5))
	assert.True(t, Number.Matches(42))
	assert.True(t, Number.Matches(uint8(7)))
	assert.False(t, Number.Matches("42"))

	assert.True(t, Boolean.Matches(false))
	assert.False(t, Boolean.Matches(0))
}

func TestNullAndUndefined(t *testing.T) {
	for _, d := range []Descriptor{String, Number, Boolean, InstanceOf(time.Time{})} {
		assert.True(t, d.Matches(nil))
		assert.False(t, d.Matches(Undefined))
	}
}

func TestInstanceOfDescriptor(t *testing.T) {
	d := InstanceOf(square{})
	assert.True(t, d.Matches(square{Side: 2}))
	assert.True(t, d.Matches(&square{Side: 2}))
	assert.False(t, d.Matches(toy{}))
	assert.False(t, d.Matches("square"))

	// pointer samples dereference to the same rule
	assert.True(t, InstanceOf((*square)(nil)).Matches(square{}))
}

func TestInstanceOfInterface(t *testing.T) {
	d := InstanceOf((*shape)(nil))
	assert.True(t, d.Matches(square{}))
	assert.False(t, d.Matches(toy{}))

	s := InstanceOf((*fmt.Stringer)(nil))
	assert.True(t, s.Matches(time.Month(1)))
	assert.False(t, s.Matches(1.0))
}

func TestOfDescriptor(t *testing.T) {
	Base := Define("Base", Named(F("id", String)))
	Derived := Define("Derived", Named(F("name", String)), Extends(Base))
	Other := Define("Other", Named(F("id", String)))

	base := Base.MustNew(map[string]any{"id": "1"})
	derived := Derived.MustNew(map[string]any{"id": "1", "name": "n"})
	other := Other.MustNew(map[string]any{"id": "1"})

	d := Of(Base)
	assert.True(t, d.Matches(base))
	// polymorphic acceptance: descendants of the declared type match
	assert.True(t, d.Matches(derived))
	assert.False(t, d.Matches(other))
	assert.False(t, Of(Derived).Matches(base))
}

func TestNestedValueObjectProperty(t *testing.T) {
	Address := Define("Address", Named(F("city", String)))
	Customer := Define("Customer", Named(F("name", String), F("address", Of(Address))))

	addr := Address.MustNew(map[string]any{"city": "Berlin"})
	c, err := Customer.New(map[string]any{"name": "a", "address": addr})
	assert.NoError(t, err)
	assert.Equal(t, addr, c.Get("address"))

	_, err = Customer.New(map[string]any{"name": "a", "address": "Berlin"})
	assert.EqualError(t, err,
		"valueobject: Customer(name:string, address:instanceof Address) called with (name:string, address:string)")
}

func TestNestedValueObjectAcceptsTypedNil(t *testing.T) {
	Address := Define("Address", Named(F("city", String)))
	Customer := Define("Customer", Named(F("name", String), F("address", Of(Address))))

	// a nil *Object is null, and null is valid for every property
	assert.True(t, Of(Address).Matches((*Object)(nil)))

	c, err := Customer.New(map[string]any{"name": "a", "address": (*Object)(nil)})
	assert.NoError(t, err)
	assert.Equal(t, (*Object)(nil), c.Get("address"))
}
