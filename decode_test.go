package valueobject

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeserializeRoundTrip(t *testing.T) {
	Person := Define("Person", Named(F("name", String), F("age", Number)))
	d := BuildDeserialize(Registry{"Person": Person})

	p := Person.MustNew(map[string]any{"name": "alice", "age": 30.0})
	data, err := json.Marshal(p)
	assert.NoError(t, err)

	got, err := d.Deserialize(data)
	assert.NoError(t, err)
	assert.True(t, got.IsEqualTo(p))
	assert.Same(t, Person, got.Type())
}

func TestDeserializePositionalRoundTrip(t *testing.T) {
	Point := Define("Point", Positional("x", "y"))
	d := BuildDeserialize(Registry{"Point": Point})

	p := Point.MustNew(1.0, 2.0)
	data, err := json.Marshal(p)
	assert.NoError(t, err)

	got, err := d.Deserialize(data)
	assert.NoError(t, err)
	assert.True(t, got.IsEqualTo(p))
}

func TestDeserializeDateRevival(t *testing.T) {
	Meeting := Define("Meeting", Named(F("date", InstanceOf(time.Time{}))),
		Rehydrate(func(fields map[string]any) error {
			if s, ok := fields["date"].(string); ok {
				parsed, err := time.Parse(time.RFC3339, s)
				if err != nil {
					return err
				}
				fields["date"] = parsed
			}
			return nil
		}))
	d := BuildDeserialize(Registry{"Meeting": Meeting})

	date := time.Date(2020, 3, 4, 5, 6, 7, 0, time.UTC)
	m := Meeting.MustNew(map[string]any{"date": date})
	data, err := json.Marshal(m)
	assert.NoError(t, err)

	got, err := d.Deserialize(data)
	assert.NoError(t, err)
	assert.True(t, got.Get("date").(time.Time).Equal(date))
	assert.True(t, got.IsEqualTo(m))
}

func TestDeserializeWithoutRevivalFailsTypeCheck(t *testing.T) {
	Meeting := Define("UncheckedMeeting", Named(F("date", InstanceOf(time.Time{}))))
	d := BuildDeserialize(Registry{"UncheckedMeeting": Meeting})

	m := Meeting.MustNew(map[string]any{"date": time.Date(2020, 3, 4, 0, 0, 0, 0, time.UTC)})
	data, err := json.Marshal(m)
	assert.NoError(t, err)

	// deserialized input is untrusted: the serialized date is a string and
	// the type check rejects it without a revival step
	_, err = d.Deserialize(data)
	assert.EqualError(t, err,
		"valueobject: UncheckedMeeting(date:instanceof Time) called with (date:string)")
}

func TestDeserializeUnknownType(t *testing.T) {
	d := BuildDeserialize(Registry{"Person": Define("Person", Positional("name"))})

	_, err := d.Deserialize([]byte(`{"__type__":"Alien","name":"zork"}`))
	assert.EqualError(t, err, "valueobject: cannot deserialize unknown type Alien")

	_, err = d.Deserialize([]byte(`{"name":"zork"}`))
	assert.EqualError(t, err, "valueobject: cannot deserialize value without __type__")

	var voErr Error
	assert.ErrorAs(t, err, &voErr)
	assert.Equal(t, Code(UnknownType), voErr.Code)

	// a present but non-string tag is reported as malformed, not absent
	_, err = d.Deserialize([]byte(`{"__type__":42,"name":"zork"}`))
	assert.EqualError(t, err, "valueobject: cannot deserialize value with non-string __type__ (number)")
}

func TestDeserializeFirstGroupWins(t *testing.T) {
	First := Define("Dup", Positional("v"))
	Second := Define("Dup", Positional("v"))
	d := BuildDeserialize(Registry{"Dup": First}, Registry{"Dup": Second})

	got, err := d.Deserialize([]byte(`{"__type__":"Dup","v":1}`))
	assert.NoError(t, err)
	assert.Same(t, First, got.Type())
}

func TestDeserializeMalformed(t *testing.T) {
	d := BuildDeserialize()
	_, err := d.Deserialize([]byte(`{`))
	assert.Error(t, err)

	var voErr Error
	assert.ErrorAs(t, err, &voErr)
	assert.Equal(t, Code(MalformedJSON), voErr.Code)
	assert.Error(t, voErr.Unwrap())
}

func TestDeserializeShapeMismatch(t *testing.T) {
	Person := Define("Person", Named(F("name", String), F("age", Number)))
	d := BuildDeserialize(Registry{"Person": Person})

	_, err := d.Deserialize([]byte(`{"__type__":"Person","name":"alice"}`))
	assert.EqualError(t, err, "valueobject: Person({name, age}) called with {name}")

	// a missing positional field reads back as undefined
	Point := Define("Point", Positional("x", "y"))
	d = BuildDeserialize(Registry{"Point": Point})
	_, err = d.Deserialize([]byte(`{"__type__":"Point","x":1}`))
	assert.EqualError(t, err, "valueobject: Point(x, y) called with undefined for y")
}
