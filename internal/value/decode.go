package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Decode parses src into an order-preserving Value tree. Unlike
// unmarshaling into `any` (which loses object member order because Go map
// iteration order is unspecified), Decode drives encoding/json.Decoder's
// token stream directly, so Object values retain the member order they
// were written in.
func Decode(src []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(src))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("value: trailing data after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return Value{}, fmt.Errorf("value: unexpected delimiter %q", t)
		}
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(t), nil
	case string:
		return StringValue(t), nil
	case json.Number:
		return numberValue(t), nil
	default:
		return Value{}, fmt.Errorf("value: unexpected token %T", tok)
	}
}

func numberValue(n json.Number) Value {
	if i, err := n.Int64(); err == nil {
		return IntValue(i)
	}
	f, _ := n.Float64()
	return FloatValue(f)
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("value: expected object key, got %T", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		obj.Set(key, val)
	}
	// consume closing '}'
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	arr := NewArray()
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		arr.Append(val)
	}
	// consume closing ']'
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return arr, nil
}
