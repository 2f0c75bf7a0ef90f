package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rlross/jsonpath/internal/value"
)

func lit(v value.Value) CompValue { return &LiteralValue{Val: v} }

func TestCompExpr_Eval(t *testing.T) {
	t.Parallel()
	ctx := NewEvalContext(value.NullValue(), 0, nil)

	for _, tc := range []struct {
		name  string
		left  CompValue
		op    CompOp
		right CompValue
		want  bool
	}{
		{"eq_ints", lit(value.IntValue(1)), OpEqual, lit(value.IntValue(1)), true},
		{"eq_int_float", lit(value.IntValue(1)), OpEqual, lit(value.FloatValue(1.0)), true},
		{"neq", lit(value.IntValue(1)), OpNotEqual, lit(value.IntValue(2)), true},
		{"lt", lit(value.IntValue(1)), OpLess, lit(value.IntValue(2)), true},
		{"lt_false_equal", lit(value.IntValue(2)), OpLess, lit(value.IntValue(2)), false},
		{"le_equal", lit(value.IntValue(2)), OpLessEqual, lit(value.IntValue(2)), true},
		{"gt", lit(value.IntValue(3)), OpGreater, lit(value.IntValue(2)), true},
		{"ge_equal", lit(value.IntValue(2)), OpGreaterEqual, lit(value.IntValue(2)), true},
		{"different_types_not_orderable", lit(value.StringValue("a")), OpLess, lit(value.IntValue(1)), false},
		{"string_equality", lit(value.StringValue("a")), OpEqual, lit(value.StringValue("a")), true},
		{"arrays_deep_equal", lit(value.NewArray(value.IntValue(1))), OpEqual, lit(value.NewArray(value.IntValue(1))), true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ce := &CompExpr{Left: tc.left, Op: tc.op, Right: tc.right}
			assert.Equal(t, tc.want, ce.Eval(ctx, value.NullValue()))
		})
	}
}

func TestCompExpr_Eval_GreaterHasNoOrderForUnorderableKinds(t *testing.T) {
	t.Parallel()
	ctx := NewEvalContext(value.NullValue(), 0, nil)

	for _, tc := range []struct {
		name        string
		left, right CompValue
	}{
		{"bools", lit(value.BoolValue(true)), lit(value.BoolValue(false))},
		{"arrays", lit(value.NewArray(value.IntValue(1))), lit(value.NewArray(value.IntValue(2)))},
		{"objects", lit(objWith("x", value.IntValue(1))), lit(objWith("x", value.IntValue(2)))},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gt := &CompExpr{Left: tc.left, Op: OpGreater, Right: tc.right}
			gtRev := &CompExpr{Left: tc.right, Op: OpGreater, Right: tc.left}
			assert.False(t, gt.Eval(ctx, value.NullValue()), "a > b must be false for an unorderable kind")
			assert.False(t, gtRev.Eval(ctx, value.NullValue()), "b > a must also be false, not simultaneously true with a > b")

			ge := &CompExpr{Left: tc.left, Op: OpGreaterEqual, Right: tc.right}
			geRev := &CompExpr{Left: tc.right, Op: OpGreaterEqual, Right: tc.left}
			assert.False(t, ge.Eval(ctx, value.NullValue()), "a >= b must be false for unequal operands of an unorderable kind")
			assert.False(t, geRev.Eval(ctx, value.NullValue()))
		})
	}
}

func TestCompExpr_Eval_GreaterMatchesLessThanIdentity(t *testing.T) {
	t.Parallel()
	ctx := NewEvalContext(value.NullValue(), 0, nil)

	// (a > b) <=> (b < a)
	a, b := lit(value.IntValue(3)), lit(value.IntValue(2))
	gt := &CompExpr{Left: a, Op: OpGreater, Right: b}
	ltRev := &CompExpr{Left: b, Op: OpLess, Right: a}
	assert.Equal(t, ltRev.Eval(ctx, value.NullValue()), gt.Eval(ctx, value.NullValue()))

	// (a >= b) <=> (b <= a)
	ge := &CompExpr{Left: a, Op: OpGreaterEqual, Right: b}
	leRev := &CompExpr{Left: b, Op: OpLessEqual, Right: a}
	assert.Equal(t, leRev.Eval(ctx, value.NullValue()), ge.Eval(ctx, value.NullValue()))
}

func objWith(key string, v value.Value) value.Value {
	o := value.NewObject()
	o.Set(key, v)
	return o
}

func TestCompExpr_Eval_NothingSemantics(t *testing.T) {
	t.Parallel()
	ctx := NewEvalContext(value.NewObject(), 0, nil)

	nothingQuery := &QueryValue{Query: NewSingularQuery(true, NameSelector("missing"))}

	// Nothing == Nothing is true.
	ce := &CompExpr{Left: nothingQuery, Op: OpEqual, Right: nothingQuery}
	assert.True(t, ce.Eval(ctx, value.NullValue()))

	// Nothing == a present null is false (never equal, even to null).
	ce = &CompExpr{Left: nothingQuery, Op: OpEqual, Right: lit(value.NullValue())}
	assert.False(t, ce.Eval(ctx, value.NullValue()))

	// Nothing is never orderable.
	ce = &CompExpr{Left: nothingQuery, Op: OpLess, Right: lit(value.IntValue(1))}
	assert.False(t, ce.Eval(ctx, value.NullValue()))
}

func TestLogicalAnd_ShortCircuits(t *testing.T) {
	t.Parallel()
	ctx := NewEvalContext(value.NullValue(), 0, nil)

	calls := 0
	countingFalse := basicExprFunc(func(ctx *EvalContext, current value.Value) bool {
		calls++
		return false
	})
	countingTrue := basicExprFunc(func(ctx *EvalContext, current value.Value) bool {
		calls++
		return true
	})

	la := LogicalAnd{countingFalse, countingTrue}
	assert.False(t, la.Eval(ctx, value.NullValue()))
	assert.Equal(t, 1, calls, "LogicalAnd must short-circuit on first false")
}

func TestLogicalOr_ShortCircuits(t *testing.T) {
	t.Parallel()
	ctx := NewEvalContext(value.NullValue(), 0, nil)

	calls := 0
	countingTrue := basicExprFunc(func(ctx *EvalContext, current value.Value) bool {
		calls++
		return true
	})
	countingFalse := basicExprFunc(func(ctx *EvalContext, current value.Value) bool {
		calls++
		return false
	})

	lo := LogicalOr{LogicalAnd{countingTrue}, LogicalAnd{countingFalse}}
	assert.True(t, lo.Eval(ctx, value.NullValue()))
	assert.Equal(t, 1, calls, "LogicalOr must short-circuit on first true")
}

type basicExprFunc func(ctx *EvalContext, current value.Value) bool

func (f basicExprFunc) Eval(ctx *EvalContext, current value.Value) bool { return f(ctx, current) }

func TestExistExpr(t *testing.T) {
	t.Parallel()

	obj := value.NewObject()
	obj.Set("a", value.IntValue(1))
	ctx := NewEvalContext(obj, 0, nil)

	e := &ExistExpr{Query: NewPathQuery(false, Child(NameSelector("a")))}
	assert.True(t, e.Eval(ctx, obj))

	e = &ExistExpr{Query: NewPathQuery(false, Child(NameSelector("missing")))}
	assert.False(t, e.Eval(ctx, obj))
}

func TestNonExistExpr(t *testing.T) {
	t.Parallel()

	obj := value.NewObject()
	obj.Set("a", value.IntValue(1))
	ctx := NewEvalContext(obj, 0, nil)

	n := &NonExistExpr{Query: NewPathQuery(false, Child(NameSelector("missing")))}
	assert.True(t, n.Eval(ctx, obj))

	n = &NonExistExpr{Query: NewPathQuery(false, Child(NameSelector("a")))}
	assert.False(t, n.Eval(ctx, obj))
}

func TestParenExpr_And_NotParenExpr(t *testing.T) {
	t.Parallel()
	ctx := NewEvalContext(value.NullValue(), 0, nil)

	or := &LogicalOr{LogicalAnd{basicExprFunc(func(*EvalContext, value.Value) bool { return true })}}

	p := &ParenExpr{Expr: or}
	assert.True(t, p.Eval(ctx, value.NullValue()))

	np := &NotParenExpr{Expr: or}
	assert.False(t, np.Eval(ctx, value.NullValue()))
}

func TestNegFuncExpr(t *testing.T) {
	t.Parallel()

	fn := &builtinFunc{name: "truthy", resultType: Logical, validate: validateNArgs(0)}
	fe := NewFuncExpr(logicalStubFunc{fn}, nil)
	ctx := NewEvalContext(value.NullValue(), 0, nil)

	n := &NegFuncExpr{Func: fe}
	assert.False(t, n.Eval(ctx, value.NullValue()), "negating an always-true logical function must be false")
}

// logicalStubFunc wraps a Function and always returns a true LogicalResult,
// for exercising NegFuncExpr without depending on the functions package.
type logicalStubFunc struct{ Function }

func (logicalStubFunc) Call([]Result) Result { return LogicalResult(true) }

func TestFuncValue_NonValueResultIsNothing(t *testing.T) {
	t.Parallel()

	fn := logicalStubFunc{&builtinFunc{name: "x", resultType: Logical, validate: validateNArgs(0)}}
	fe := NewFuncExpr(fn, nil)
	fv := &FuncValue{Func: fe}

	ctx := NewEvalContext(value.NullValue(), 0, nil)
	c := fv.Value(ctx, value.NullValue())
	assert.False(t, c.present)
}
