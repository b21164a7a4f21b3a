package valueobject

// Registry maps registered type names to their value-object types. A
// Deserializer searches its registries in the order supplied; the first one
// containing the tag wins.
type Registry map[string]*Type

// Deserializer reconstructs instances from their serialized structural form.
type Deserializer struct {
	groups []Registry
}

// BuildDeserialize builds a Deserializer over an ordered sequence of
// registry groups.
func BuildDeserialize(groups ...Registry) *Deserializer {
	return &Deserializer{groups: groups}
}

// Deserialize parses serialized text, resolves the __type__ tag across the
// registry groups, runs the resolved type's Rehydrate hook on the remaining
// fields, and re-invokes that type's construction pipeline. Deserialized
// input is untrusted, so construction's shape and type checks apply in full.
func (d *Deserializer) Deserialize(data []byte) (*Object, error) {
	var fields map[string]any
	if err := codec.Unmarshal(data, &fields); err != nil {
		return nil, newMalformedJSONError(err)
	}
	raw, present := fields["__type__"]
	if !present {
		return nil, newUnknownTypeError("")
	}
	tag, ok := raw.(string)
	if !ok {
		return nil, newBadTypeTagError(actualTypeName(raw))
	}
	typ, ok := d.lookup(tag)
	if !ok {
		return nil, newUnknownTypeError(tag)
	}
	delete(fields, "__type__")
	if rehydrate := typ.closestRehydrate(); rehydrate != nil {
		if err := rehydrate(fields); err != nil {
			return nil, err
		}
	}
	if typ.schema.positional {
		// Positional types re-construct in declared order. A missing field
		// becomes Undefined so construction reports it; unknown fields are
		// dropped, as a positional call has no slot for them.
		args := make([]any, 0, len(typ.schema.fields))
		for _, f := range typ.schema.fields {
			value, ok := fields[f.Name]
			if !ok {
				value = Undefined
			}
			args = append(args, value)
		}
		return typ.New(args...)
	}
	return typ.New(fields)
}

func (d *Deserializer) lookup(name string) (*Type, bool) {
	for _, group := range d.groups {
		if typ, ok := group[name]; ok {
			return typ, true
		}
	}
	return nil, false
}
