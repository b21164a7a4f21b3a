package valueobject

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalJSON serializes the instance as a plain structural object: the
// reserved __type__ key first, carrying the registered type name, then every
// declared property, inherited ones included, in effective-schema order.
// Computed properties are not serialized. Nested value objects serialize the
// same way, so the tag is present at every level.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"__type__":`)
	name, err := codec.Marshal(o.typ.name)
	if err != nil {
		return nil, err
	}
	buf.Write(name)
	for _, f := range o.typ.schema.fields {
		buf.WriteByte(',')
		key, err := codec.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := codec.Marshal(o.values[f.Name])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
