package value

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// DecodeGJSON parses src into an order-preserving Value tree using
// tidwall/gjson instead of the stdlib token decoder in decode.go. gjson
// scans the raw JSON text directly in ForEach, so object member order is
// preserved the same way Decode preserves it, via an independent engine.
func DecodeGJSON(src []byte) (Value, error) {
	if !gjson.ValidBytes(src) {
		return Value{}, fmt.Errorf("value: invalid JSON")
	}
	res := gjson.ParseBytes(src)
	return fromGJSON(res), nil
}

func fromGJSON(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return NullValue()
	case gjson.False:
		return BoolValue(false)
	case gjson.True:
		return BoolValue(true)
	case gjson.String:
		return StringValue(r.Str)
	case gjson.Number:
		return gjsonNumber(r)
	case gjson.JSON:
		if r.IsArray() {
			return fromGJSONArray(r)
		}
		return fromGJSONObject(r)
	default:
		return NullValue()
	}
}

func gjsonNumber(r gjson.Result) Value {
	// gjson.Result.Num is always a float64; recover integer-ness by
	// checking the raw source text for a fraction or exponent, mirroring
	// decode.go's json.Number handling.
	raw := r.Raw
	hasFraction := false
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '.', 'e', 'E':
			hasFraction = true
		}
	}
	if !hasFraction {
		return IntValue(int64(r.Num))
	}
	return FloatValue(r.Num)
}

func fromGJSONArray(r gjson.Result) Value {
	arr := NewArray()
	r.ForEach(func(_, val gjson.Result) bool {
		arr.Append(fromGJSON(val))
		return true
	})
	return arr
}

func fromGJSONObject(r gjson.Result) Value {
	obj := NewObject()
	r.ForEach(func(key, val gjson.Result) bool {
		obj.Set(key.Str, fromGJSON(val))
		return true
	})
	return obj
}
