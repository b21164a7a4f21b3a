package valueobject

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// ToProtoStruct converts the instance's tagged structural form, __type__
// included, into a structpb.Struct for protobuf interop.
func ToProtoStruct(o *Object) (*structpb.Struct, error) {
	data, err := codec.Marshal(o)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := codec.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return structpb.NewStruct(fields)
}

// FromProtoStruct reconstructs an instance from a structpb.Struct produced
// by ToProtoStruct, going through the same tag lookup, rehydration and
// construction pipeline as Deserialize.
func (d *Deserializer) FromProtoStruct(s *structpb.Struct) (*Object, error) {
	data, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return d.Deserialize(data)
}
