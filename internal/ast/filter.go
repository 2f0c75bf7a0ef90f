package ast

import "github.com/rlross/jsonpath/internal/value"

// FilterExpr represents a filter expression tree (?logical-expr) per RFC 9535 §2.3.5.
type FilterExpr struct {
	Or LogicalOr
}

// Eval evaluates the filter expression against the current node.
func (f *FilterExpr) Eval(ctx *EvalContext, current value.Value) bool {
	return f.Or.Eval(ctx, current)
}

// LogicalOr is a sequence of LogicalAnd expressions joined by ||.
// Short-circuits on first true.
type LogicalOr []LogicalAnd

// Eval returns true if any LogicalAnd expression is true.
func (lo LogicalOr) Eval(ctx *EvalContext, current value.Value) bool {
	for i := range lo {
		if lo[i].Eval(ctx, current) {
			return true
		}
	}
	return false
}

// LogicalAnd is a sequence of BasicExpr joined by &&.
// Short-circuits on first false.
type LogicalAnd []BasicExpr

// Eval returns true if all BasicExpr are true.
func (la LogicalAnd) Eval(ctx *EvalContext, current value.Value) bool {
	for i := range la {
		if !la[i].Eval(ctx, current) {
			return false
		}
	}
	return true
}

// BasicExpr is a filter expression that evaluates to a boolean.
type BasicExpr interface {
	Eval(ctx *EvalContext, current value.Value) bool
}

// ExistExpr tests if a query selects at least one node.
type ExistExpr struct {
	Query *PathQuery
}

// Eval returns true if the query selects at least one node.
func (e *ExistExpr) Eval(ctx *EvalContext, current value.Value) bool {
	if len(e.Query.Segments()) == 0 {
		return true
	}
	nodes := e.Query.Select(ctx, current)
	return len(nodes) > 0
}

// NonExistExpr tests if a query selects no nodes.
type NonExistExpr struct {
	Query *PathQuery
}

// Eval returns true if the query selects no nodes.
func (e *NonExistExpr) Eval(ctx *EvalContext, current value.Value) bool {
	if len(e.Query.Segments()) == 0 {
		return false
	}
	nodes := e.Query.Select(ctx, current)
	return len(nodes) == 0
}

// ParenExpr is a parenthesized logical expression.
type ParenExpr struct {
	Expr *LogicalOr
}

// Eval evaluates the parenthesized expression.
func (p *ParenExpr) Eval(ctx *EvalContext, current value.Value) bool {
	return p.Expr.Eval(ctx, current)
}

// NotParenExpr is a negated parenthesized logical expression.
type NotParenExpr struct {
	Expr *LogicalOr
}

// Eval evaluates the negated parenthesized expression.
func (n *NotParenExpr) Eval(ctx *EvalContext, current value.Value) bool {
	return !n.Expr.Eval(ctx, current)
}

// NegFuncExpr is a negated logical function call expression (!match(), !search()).
type NegFuncExpr struct {
	Func *FuncExpr
}

// Eval evaluates the negated function call.
func (n *NegFuncExpr) Eval(ctx *EvalContext, current value.Value) bool {
	return !n.Func.Eval(ctx, current)
}

// CompOp is a comparison operator.
type CompOp uint8

const (
	OpEqual        CompOp = iota // ==
	OpNotEqual                   // !=
	OpLess                       // <
	OpLessEqual                  // <=
	OpGreater                    // >
	OpGreaterEqual               // >=
)

// CompExpr is a comparison expression.
type CompExpr struct {
	Left  CompValue
	Op    CompOp
	Right CompValue
}

// Eval evaluates the comparison expression.
func (c *CompExpr) Eval(ctx *EvalContext, current value.Value) bool {
	left := c.Left.Value(ctx, current)
	right := c.Right.Value(ctx, current)

	switch c.Op {
	case OpEqual:
		return compEqual(ctx, left, right)
	case OpNotEqual:
		return !compEqual(ctx, left, right)
	case OpLess:
		return compSameType(left, right) && compLessThan(left, right)
	case OpLessEqual:
		return compLessThan(left, right) || compEqual(ctx, left, right)
	case OpGreater:
		return compSameType(left, right) && compLessThan(right, left)
	case OpGreaterEqual:
		return compLessThan(right, left) || compEqual(ctx, right, left)
	}
	return false
}

// CompValue represents a comparable value in a comparison expression.
type CompValue interface {
	Value(ctx *EvalContext, current value.Value) comparable
}

// LiteralValue is a literal value (string, number, bool, null); always present.
type LiteralValue struct {
	Val value.Value
}

// Value returns the literal value.
func (l *LiteralValue) Value(ctx *EvalContext, current value.Value) comparable {
	return just(l.Val)
}

// QueryValue is a singular query that produces a single value, or
// Nothing if the query selects zero or more-than-one node.
type QueryValue struct {
	Query *SingularQuery
}

// Value returns the value the singular query resolves to, or Nothing.
func (q *QueryValue) Value(ctx *EvalContext, current value.Value) comparable {
	return q.Query.Eval(ctx, current)
}

// FuncValue is a function call that produces a ValueType result.
type FuncValue struct {
	Func *FuncExpr
}

// Value returns the result of the function call.
func (f *FuncValue) Value(ctx *EvalContext, current value.Value) comparable {
	res := f.Func.Call(ctx, current)
	if res.Kind != Value {
		return nothing()
	}
	if !res.Present {
		return nothing()
	}
	return just(res.Val)
}
