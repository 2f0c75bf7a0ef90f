// Package value implements the JSON value model shared by every stage of
// the query engine: a tagged union of the seven JSON kinds, with an
// order-preserving Object so wildcard and descendant traversal can expose
// member order deterministically, as RFC 9535 requires.
package value

import "fmt"

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Int
	Float
	String
	Array
	Object
)

var kindNames = [...]string{
	Null: "null", Bool: "bool", Int: "int", Float: "float",
	String: "string", Array: "array", Object: "object",
}

// String returns the human-readable name of k.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Value is a tagged union over the JSON value kinds. The zero Value is
// JSON null. Array and Object are held by pointer so two Values can alias
// the same container — this is what lets callers build a cyclic root
// value (a container that (transitively) contains itself) and is also
// the identity used for cycle detection during traversal.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  *ArrayVal
	obj  *ObjectVal
}

// ArrayVal is the backing store for an Array-kind Value.
type ArrayVal struct {
	elems []Value
}

// ObjectVal is the backing store for an Object-kind Value. Member order is
// authoritative and preserved across Decode, Set, and Range.
type ObjectVal struct {
	keys []string
	idx  map[string]int
	vals []Value
}

// NullValue returns the JSON null value.
func NullValue() Value { return Value{kind: Null} }

// BoolValue returns a JSON boolean value.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// IntValue returns a JSON integer value.
func IntValue(i int64) Value { return Value{kind: Int, i: i} }

// FloatValue returns a JSON floating-point value.
func FloatValue(f float64) Value { return Value{kind: Float, f: f} }

// StringValue returns a JSON string value.
func StringValue(s string) Value { return Value{kind: String, s: s} }

// NewArray returns an Array value containing elems, in order.
func NewArray(elems ...Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: Array, arr: &ArrayVal{elems: cp}}
}

// NewObject returns an empty Object value. Use Set to populate it in
// insertion order.
func NewObject() Value {
	return Value{kind: Object, obj: &ObjectVal{idx: make(map[string]int)}}
}

// Kind returns v's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is JSON null.
func (v Value) IsNull() bool { return v.kind == Null }

// Bool returns v's boolean value. Panics if v is not Bool.
func (v Value) Bool() bool {
	if v.kind != Bool {
		panic("value: Bool() called on " + v.kind.String())
	}
	return v.b
}

// Int returns v's integer value. Panics if v is not Int.
func (v Value) Int() int64 {
	if v.kind != Int {
		panic("value: Int() called on " + v.kind.String())
	}
	return v.i
}

// Float returns v's float value. Panics if v is not Float.
func (v Value) Float() float64 {
	if v.kind != Float {
		panic("value: Float() called on " + v.kind.String())
	}
	return v.f
}

// Str returns v's string value. Panics if v is not String.
func (v Value) Str() string {
	if v.kind != String {
		panic("value: Str() called on " + v.kind.String())
	}
	return v.s
}

// IsNumber reports whether v is Int or Float.
func (v Value) IsNumber() bool { return v.kind == Int || v.kind == Float }

// Number returns v's numeric value as a float64, for comparison purposes
// where the Int/Float distinction does not matter (RFC 9535 §2.3.5.2.2:
// "Numeric Values ... compare by numeric value, regardless of their
// type"). Panics if v is not numeric.
func (v Value) Number() float64 {
	switch v.kind {
	case Int:
		return float64(v.i)
	case Float:
		return v.f
	default:
		panic("value: Number() called on " + v.kind.String())
	}
}

// Len returns the length of an Array, Object, or String value: number of
// elements, number of members, or number of Unicode scalar values,
// respectively. ok is false for any other kind.
func (v Value) Len() (n int, ok bool) {
	switch v.kind {
	case Array:
		return len(v.arr.elems), true
	case Object:
		return len(v.obj.keys), true
	case String:
		return runeCount(v.s), true
	default:
		return 0, false
	}
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// Elem returns the i'th element of an Array value. Panics if v is not
// Array or i is out of range; callers must bounds-check first (selectors
// always do).
func (v Value) Elem(i int) Value {
	if v.kind != Array {
		panic("value: Elem() called on " + v.kind.String())
	}
	return v.arr.elems[i]
}

// Elems returns the backing slice of an Array value's elements. The
// returned slice must not be mutated by callers outside this package.
func (v Value) Elems() []Value {
	if v.kind != Array {
		return nil
	}
	return v.arr.elems
}

// ArrayIdentity returns a stable identity for the Array's backing store,
// for use as a cycle-detection map key. Returns nil for non-Array values.
func (v Value) ArrayIdentity() any {
	if v.kind != Array {
		return nil
	}
	return v.arr
}

// ObjectIdentity returns a stable identity for the Object's backing
// store, for use as a cycle-detection map key. Returns nil for non-Object
// values.
func (v Value) ObjectIdentity() any {
	if v.kind != Object {
		return nil
	}
	return v.obj
}

// IsContainer reports whether v is an Array or Object.
func (v Value) IsContainer() bool { return v.kind == Array || v.kind == Object }

// Get returns the member named name from an Object value.
func (v Value) Get(name string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	i, ok := v.obj.idx[name]
	if !ok {
		return Value{}, false
	}
	return v.obj.vals[i], true
}

// Keys returns the member names of an Object value, in insertion order.
// Returns nil for non-Object values.
func (v Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	return v.obj.keys
}

// Range calls fn for each member of an Object value, in insertion order.
// Iteration stops early if fn returns false. No-op for non-Object values.
func (v Value) Range(fn func(key string, val Value) bool) {
	if v.kind != Object {
		return
	}
	for i, k := range v.obj.keys {
		if !fn(k, v.obj.vals[i]) {
			return
		}
	}
}

// Set adds or updates a member of an Object value. If name already
// exists, its value is updated in place (order is not disturbed);
// otherwise name is appended at the end. Panics if v is not Object.
func (v Value) Set(name string, val Value) {
	if v.kind != Object {
		panic("value: Set() called on " + v.kind.String())
	}
	if i, ok := v.obj.idx[name]; ok {
		v.obj.vals[i] = val
		return
	}
	v.obj.idx[name] = len(v.obj.keys)
	v.obj.keys = append(v.obj.keys, name)
	v.obj.vals = append(v.obj.vals, val)
}

// Append appends val to an Array value. Panics if v is not Array.
func (v Value) Append(val Value) {
	if v.kind != Array {
		panic("value: Append() called on " + v.kind.String())
	}
	v.arr.elems = append(v.arr.elems, val)
}

// FromAny converts a Go value produced by ordinary JSON unmarshaling
// (nil / bool / float64 / string / []any / map[string]any) into a Value.
// Object member order is NOT preserved by this conversion — Go map
// iteration order is unspecified — so callers that need RFC 9535-correct
// wildcard/descendant ordering should use Decode or DecodeGJSON instead,
// which build Value trees directly from JSON text and never pass through
// an unordered Go map.
func FromAny(a any) Value {
	switch x := a.(type) {
	case nil:
		return NullValue()
	case bool:
		return BoolValue(x)
	case float64:
		return FloatValue(x)
	case int64:
		return IntValue(x)
	case int:
		return IntValue(int64(x))
	case string:
		return StringValue(x)
	case []any:
		elems := make([]Value, len(x))
		for i, e := range x {
			elems[i] = FromAny(e)
		}
		return NewArray(elems...)
	case map[string]any:
		obj := NewObject()
		for k, v := range x {
			obj.Set(k, FromAny(v))
		}
		return obj
	default:
		panic(fmt.Sprintf("value: FromAny: unsupported type %T", a))
	}
}
