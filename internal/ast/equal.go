package ast

import "github.com/rlross/jsonpath/internal/value"

// deepEqual mirrors value.Equal's array/object recursion but counts
// depth and consults ctx, so a pathological self-referential comparison
// operand (e.g. two branches of a cyclic document reachable from a
// filter) terminates instead of recursing forever. Scalar comparisons
// delegate straight to value.Equal, which has no recursion to bound.
func deepEqual(ctx *EvalContext, a, b value.Value, depth int) bool {
	if depth > ctx.MaxDepth {
		ctx.warn(WarnMaxDepthExceeded, nil, "comparison exceeded max depth")
		return false
	}
	switch {
	case a.Kind() == value.Array && b.Kind() == value.Array:
		ae, be := a.Elems(), b.Elems()
		if len(ae) != len(be) {
			return false
		}
		for i := range ae {
			if !deepEqual(ctx, ae[i], be[i], depth+1) {
				return false
			}
		}
		return true
	case a.Kind() == value.Object && b.Kind() == value.Object:
		ak := a.Keys()
		if len(ak) != len(b.Keys()) {
			return false
		}
		for _, k := range ak {
			av, _ := a.Get(k)
			bv, ok := b.Get(k)
			if !ok || !deepEqual(ctx, av, bv, depth+1) {
				return false
			}
		}
		return true
	default:
		return value.Equal(a, b)
	}
}

// comparable is the result of evaluating one side of a comparison
// expression: present is false when the operand is RFC 9535's "Nothing"
// (a singular query that selected no node), which is distinct from a
// present JSON null and participates in comparisons under its own rules.
type comparable struct {
	val     value.Value
	present bool
}

func nothing() comparable { return comparable{} }

func just(v value.Value) comparable { return comparable{val: v, present: true} }

// compEqual implements RFC 9535 §2.3.5.2.2's == semantics: two Nothing
// operands are equal to each other, Nothing is never equal to a present
// value (including null), and two present values compare with deepEqual.
func compEqual(ctx *EvalContext, a, b comparable) bool {
	if !a.present && !b.present {
		return true
	}
	if a.present != b.present {
		return false
	}
	return deepEqual(ctx, a.val, b.val, 0)
}

// compSameType reports whether a and b may be ordered: both must be
// present, and both numeric or the same Kind.
func compSameType(a, b comparable) bool {
	if !a.present || !b.present {
		return false
	}
	return value.SameType(a.val, b.val)
}

func compLessThan(a, b comparable) bool {
	if !a.present || !b.present {
		return false
	}
	return value.LessThan(a.val, b.val)
}
