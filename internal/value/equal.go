package value

// Equal reports whether a and b are equal under RFC 9535 §2.3.5.2.2's
// comparison semantics: numbers compare by numeric value regardless of
// Int/Float representation; arrays compare element-wise in order; objects
// compare member-wise by name, ignoring member order; everything else
// requires identical kinds and identical values.
func Equal(a, b Value) bool {
	switch {
	case a.kind == Null && b.kind == Null:
		return true
	case a.IsNumber() && b.IsNumber():
		return a.Number() == b.Number()
	case a.kind == Bool && b.kind == Bool:
		return a.b == b.b
	case a.kind == String && b.kind == String:
		return a.s == b.s
	case a.kind == Array && b.kind == Array:
		return arrayEqual(a, b)
	case a.kind == Object && b.kind == Object:
		return objectEqual(a, b)
	default:
		return false
	}
}

func arrayEqual(a, b Value) bool {
	ae, be := a.Elems(), b.Elems()
	if len(ae) != len(be) {
		return false
	}
	for i := range ae {
		if !Equal(ae[i], be[i]) {
			return false
		}
	}
	return true
}

func objectEqual(a, b Value) bool {
	ak, bk := a.Keys(), b.Keys()
	if len(ak) != len(bk) {
		return false
	}
	for _, k := range ak {
		av, _ := a.Get(k)
		bv, ok := b.Get(k)
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	return true
}

// SameType reports whether a and b belong to the same comparison family:
// both numeric (Int/Float interchangeably), or the same exact Kind. It
// reports true for two booleans, nulls, arrays or objects as well; whether
// a pair has an ordering at all is decided by LessThan, which orders only
// two numbers or two strings.
func SameType(a, b Value) bool {
	if a.IsNumber() && b.IsNumber() {
		return true
	}
	return a.kind == b.kind
}

// LessThan reports whether a orders strictly before b. Ordering is only
// defined for two numbers (by numeric value) or two strings (by Unicode
// scalar value, the same ordering Go's native string comparison gives
// since Go strings are UTF-8 byte sequences compared byte-wise, which
// agrees with codepoint order for valid UTF-8). Any other pairing has no
// defined ordering and returns false.
func LessThan(a, b Value) bool {
	switch {
	case a.IsNumber() && b.IsNumber():
		return a.Number() < b.Number()
	case a.kind == String && b.kind == String:
		return a.s < b.s
	default:
		return false
	}
}

// LessOrEqual reports whether a orders at or before b, per the same rules
// as LessThan. RFC 9535 defines <= as (a < b) || (a == b), not as a
// separate primitive ordering, so this composes the two rather than
// re-deriving ordering.
func LessOrEqual(a, b Value) bool {
	return LessThan(a, b) || Equal(a, b)
}
