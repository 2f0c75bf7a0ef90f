package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		k    Kind
		want string
	}{
		{Null, "null"},
		{Bool, "bool"},
		{Int, "int"},
		{Float, "float"},
		{String, "string"},
		{Array, "array"},
		{Object, "object"},
		{Kind(99), "Kind(99)"},
	} {
		assert.Equal(t, tc.want, tc.k.String())
	}
}

func TestScalarConstructorsAndAccessors(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.True(NullValue().IsNull())
	a.Equal(Null, NullValue().Kind())

	a.True(BoolValue(true).Bool())
	a.False(BoolValue(false).Bool())

	a.Equal(int64(42), IntValue(42).Int())
	a.Equal(3.5, FloatValue(3.5).Float())
	a.Equal("hi", StringValue("hi").Str())
}

func TestAccessor_PanicsOnWrongKind(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NullValue().Bool() })
	assert.Panics(t, func() { NullValue().Int() })
	assert.Panics(t, func() { NullValue().Float() })
	assert.Panics(t, func() { NullValue().Str() })
	assert.Panics(t, func() { NullValue().Elem(0) })
	assert.Panics(t, func() { NullValue().Number() })
	assert.Panics(t, func() { NullValue().Set("a", NullValue()) })
	assert.Panics(t, func() { NullValue().Append(NullValue()) })
}

func TestIsNumberAndNumber(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.True(IntValue(1).IsNumber())
	a.True(FloatValue(1).IsNumber())
	a.False(StringValue("1").IsNumber())

	a.Equal(float64(7), IntValue(7).Number())
	a.Equal(2.5, FloatValue(2.5).Number())
}

func TestLen(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	arr := NewArray(IntValue(1), IntValue(2), IntValue(3))
	n, ok := arr.Len()
	a.True(ok)
	a.Equal(3, n)

	obj := NewObject()
	obj.Set("a", IntValue(1))
	obj.Set("b", IntValue(2))
	n, ok = obj.Len()
	a.True(ok)
	a.Equal(2, n)

	n, ok = StringValue("héllo").Len()
	a.True(ok)
	a.Equal(5, n)

	_, ok = IntValue(1).Len()
	a.False(ok)
}

func TestArrayElemsAndElem(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	arr := NewArray(StringValue("x"), StringValue("y"))
	a.Equal("x", arr.Elem(0).Str())
	a.Equal("y", arr.Elem(1).Str())
	a.Len(arr.Elems(), 2)

	a.Nil(StringValue("not array").Elems())
}

func TestArrayIsIndependentOfSourceSlice(t *testing.T) {
	t.Parallel()

	elems := []Value{IntValue(1), IntValue(2)}
	arr := NewArray(elems...)
	elems[0] = IntValue(99)

	assert.Equal(t, int64(1), arr.Elem(0).Int())
}

func TestObjectOrderPreserved(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	obj := NewObject()
	obj.Set("z", IntValue(1))
	obj.Set("a", IntValue(2))
	obj.Set("m", IntValue(3))

	a.Equal([]string{"z", "a", "m"}, obj.Keys())

	var gotKeys []string
	obj.Range(func(k string, v Value) bool {
		gotKeys = append(gotKeys, k)
		return true
	})
	a.Equal([]string{"z", "a", "m"}, gotKeys)
}

func TestObjectSetUpdatesInPlace(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	obj := NewObject()
	obj.Set("a", IntValue(1))
	obj.Set("b", IntValue(2))
	obj.Set("a", IntValue(99))

	a.Equal([]string{"a", "b"}, obj.Keys())
	v, ok := obj.Get("a")
	a.True(ok)
	a.Equal(int64(99), v.Int())
}

func TestObjectRangeStopsEarly(t *testing.T) {
	t.Parallel()

	obj := NewObject()
	obj.Set("a", IntValue(1))
	obj.Set("b", IntValue(2))
	obj.Set("c", IntValue(3))

	var seen []string
	obj.Range(func(k string, v Value) bool {
		seen = append(seen, k)
		return k != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestObjectGetMissing(t *testing.T) {
	t.Parallel()

	obj := NewObject()
	_, ok := obj.Get("missing")
	assert.False(t, ok)

	_, ok = IntValue(1).Get("x")
	assert.False(t, ok)
}

func TestIdentity(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	arr1 := NewArray()
	arr2 := NewArray()
	a.NotNil(arr1.ArrayIdentity())
	a.NotSame(arr1.ArrayIdentity(), arr2.ArrayIdentity())

	obj1 := NewObject()
	a.NotNil(obj1.ObjectIdentity())
	a.Nil(arr1.ObjectIdentity())
	a.Nil(obj1.ArrayIdentity())
}

func TestAppendAliasesBackingArray(t *testing.T) {
	t.Parallel()

	arr := NewArray(IntValue(1))
	alias := arr
	alias.Append(IntValue(2))

	n, _ := arr.Len()
	assert.Equal(t, 2, n, "Array is held by pointer, so Append through an alias is visible to the original")
}

func TestIsContainer(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.True(NewArray().IsContainer())
	a.True(NewObject().IsContainer())
	a.False(IntValue(1).IsContainer())
	a.False(NullValue().IsContainer())
}

func TestFromAny(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.Equal(Null, FromAny(nil).Kind())
	a.True(FromAny(true).Bool())
	a.Equal(float64(1.5), FromAny(1.5).Float())
	a.Equal(int64(3), FromAny(3).Int())
	a.Equal("s", FromAny("s").Str())

	arr := FromAny([]any{1, "two", nil})
	a.Equal(Array, arr.Kind())
	n, _ := arr.Len()
	a.Equal(3, n)

	obj := FromAny(map[string]any{"k": "v"})
	a.Equal(Object, obj.Kind())
	v, ok := obj.Get("k")
	a.True(ok)
	a.Equal("v", v.Str())
}

func TestFromAny_UnsupportedType(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { FromAny(struct{}{}) })
}

func TestDecode_PreservesObjectOrder(t *testing.T) {
	t.Parallel()

	v, err := Decode([]byte(`{"z":1,"a":2,"m":{"y":3,"x":4}}`))
	require.NoError(t, err)
	require.Equal(t, Object, v.Kind())
	assert.Equal(t, []string{"z", "a", "m"}, v.Keys())

	nested, ok := v.Get("m")
	require.True(t, ok)
	assert.Equal(t, []string{"y", "x"}, nested.Keys())
}

func TestDecode_IntVsFloat(t *testing.T) {
	t.Parallel()

	v, err := Decode([]byte(`[1, 1.5, 1e2, -3]`))
	require.NoError(t, err)

	elems := v.Elems()
	assert.Equal(t, Int, elems[0].Kind())
	assert.Equal(t, int64(1), elems[0].Int())

	assert.Equal(t, Float, elems[1].Kind())
	assert.Equal(t, 1.5, elems[1].Float())

	assert.Equal(t, Float, elems[2].Kind())

	assert.Equal(t, Int, elems[3].Kind())
	assert.Equal(t, int64(-3), elems[3].Int())
}

func TestDecode_TrailingData(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`1 2`))
	assert.Error(t, err)
}

func TestDecode_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestDecode_Scalars(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	v, err := Decode([]byte(`null`))
	require.NoError(t, err)
	a.True(v.IsNull())

	v, err = Decode([]byte(`true`))
	require.NoError(t, err)
	a.True(v.Bool())

	v, err = Decode([]byte(`"hi"`))
	require.NoError(t, err)
	a.Equal("hi", v.Str())
}

func TestDecodeGJSON_MatchesDecode(t *testing.T) {
	t.Parallel()

	src := []byte(`{"z":1,"a":[1,2.5,"x",null,true,false],"m":{"y":3}}`)

	want, err := Decode(src)
	require.NoError(t, err)
	got, err := DecodeGJSON(src)
	require.NoError(t, err)

	assert.Equal(t, want.Keys(), got.Keys())
	wantArr, _ := want.Get("a")
	gotArr, _ := got.Get("a")
	assert.Equal(t, wantArr.Elems(), gotArr.Elems())
}

func TestDecodeGJSON_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := DecodeGJSON([]byte(`{not json`))
	assert.Error(t, err)
}

func TestMarshalJSON_RoundTrip(t *testing.T) {
	t.Parallel()

	src := []byte(`{"z":1,"a":[1,2.5,"x",null,true],"m":{"y":3}}`)
	v, err := Decode(src)
	require.NoError(t, err)

	out, err := v.MarshalJSON()
	require.NoError(t, err)

	roundTripped, err := Decode(out)
	require.NoError(t, err)

	assert.Equal(t, v.Keys(), roundTripped.Keys())
	assert.Equal(t, []string{"z", "a", "m"}, roundTripped.Keys())
}
