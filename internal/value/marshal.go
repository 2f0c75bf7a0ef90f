package value

import jsoniter "github.com/json-iterator/go"

// MarshalJSON renders v back to JSON text, driving a jsoniter.Stream
// directly instead of marshaling through an intermediate Go map/slice —
// which is what lets Object member order round-trip exactly as decoded,
// something a map[string]any-based marshaler cannot guarantee.
func (v Value) MarshalJSON() ([]byte, error) {
	stream := jsoniter.ConfigDefault.BorrowStream(nil)
	defer jsoniter.ConfigDefault.ReturnStream(stream)

	writeValue(stream, v)
	if stream.Error != nil {
		return nil, stream.Error
	}
	buf := stream.Buffer()
	out := make([]byte, len(buf))
	copy(out, buf)
	return out, nil
}

func writeValue(stream *jsoniter.Stream, v Value) {
	switch v.Kind() {
	case Null:
		stream.WriteNil()
	case Bool:
		stream.WriteBool(v.Bool())
	case Int:
		stream.WriteInt64(v.Int())
	case Float:
		stream.WriteFloat64(v.Float())
	case String:
		stream.WriteString(v.Str())
	case Array:
		stream.WriteArrayStart()
		for i, e := range v.Elems() {
			if i > 0 {
				stream.WriteMore()
			}
			writeValue(stream, e)
		}
		stream.WriteArrayEnd()
	case Object:
		stream.WriteObjectStart()
		first := true
		v.Range(func(k string, val Value) bool {
			if !first {
				stream.WriteMore()
			}
			first = false
			stream.WriteObjectField(k)
			writeValue(stream, val)
			return true
		})
		stream.WriteObjectEnd()
	}
}
