package ast

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rlross/jsonpath/internal/value"
)

// FuncType describes the return type of a function expression per RFC 9535 §2.4.1.
type FuncType uint8

const (
	// Logical indicates the function returns a logical (bool) value.
	Logical FuncType = iota
	// Value indicates the function returns a single JSON value.
	Value
	// Nodes indicates the function returns a node list.
	Nodes
)

// String returns the string representation of ft.
func (ft FuncType) String() string {
	switch ft {
	case Logical:
		return "LogicalType"
	case Value:
		return "ValueType"
	case Nodes:
		return "NodesType"
	default:
		return fmt.Sprintf("FuncType(%d)", ft)
	}
}

// ArgType describes the type of a function argument expression for
// parse-time validation per RFC 9535 §2.4.
type ArgType uint8

const (
	// Literal is a literal JSON value argument.
	Literal ArgType = iota
	// QueryArg is a singular query argument (e.g. @.name or $.name).
	QueryArg
	// FilterArg is a filter query argument producing a node list.
	FilterArg
	// LogicalArg is a logical expression argument.
	LogicalArg
	// FunctionArg is a nested function call argument.
	FunctionArg
)

// ArgConvertsTo reports whether an argument of type arg can be used where a
// parameter of type target is expected per RFC 9535 §2.4.1 type conversion rules.
func ArgConvertsTo(arg ArgType, target FuncType) bool {
	switch arg {
	case Literal:
		return target == Value
	case QueryArg:
		return target == Value || target == Nodes
	case FilterArg:
		return target == Nodes
	case LogicalArg:
		return target == Logical
	case FunctionArg:
		// Accepted for every parameter type: the nested function's
		// ResultType is not checked against the parameter, here or in
		// the parser.
		return true
	default:
		return false
	}
}

// Result is the value produced by calling a Function or evaluating a
// function-call expression, tagged by which of the three RFC 9535 §2.4.1
// type families it belongs to:
//   - Logical: Bool holds the result.
//   - Value: Val/Present hold the result; Present is false for Nothing.
//   - Nodes: NodeList holds the result (possibly empty, never "nothing").
type Result struct {
	Kind     FuncType
	Bool     bool
	Val      value.Value
	Present  bool
	NodeList []value.Value
}

// LogicalResult wraps b as a LogicalType Result.
func LogicalResult(b bool) Result { return Result{Kind: Logical, Bool: b} }

// ValueResult wraps v as a present ValueType Result.
func ValueResult(v value.Value) Result { return Result{Kind: Value, Val: v, Present: true} }

// NothingResult is the absent ValueType Result ("Nothing").
func NothingResult() Result { return Result{Kind: Value} }

// NodesResult wraps nodes as a NodesType Result.
func NodesResult(nodes []value.Value) Result { return Result{Kind: Nodes, NodeList: nodes} }

// Function defines a function that can be called in filter expressions.
// Implementations must be safe for concurrent use.
type Function interface {
	// Name returns the function name as used in JSONPath expressions.
	Name() string
	// ResultType returns the FuncType of the function's return value.
	ResultType() FuncType
	// Validate checks argument types at parse time. It returns an error
	// if the argument types are incompatible with this function.
	Validate(args []ArgType) error
	// Call evaluates the function at query time and returns the result.
	Call(args []Result) Result
}

// FuncExpr represents a function call in a filter expression per RFC 9535 §2.4.
type FuncExpr struct {
	name     string    // function name
	fn       Function  // resolved function definition
	args     []any     // argument expressions: *PathQuery, *FuncExpr, or CompValue
	argTypes []ArgType // argument types determined at parse time
}

// NewFuncExpr creates a [FuncExpr] for the given function and arguments.
func NewFuncExpr(fn Function, argTypes []ArgType, args ...any) *FuncExpr {
	return &FuncExpr{name: fn.Name(), fn: fn, args: args, argTypes: argTypes}
}

// Name returns the function name.
func (fe *FuncExpr) Name() string { return fe.name }

// Func returns the resolved [Function].
func (fe *FuncExpr) Func() Function { return fe.fn }

// Args returns the argument expressions.
func (fe *FuncExpr) Args() []any { return fe.args }

// ResultType returns the return type of the underlying function.
func (fe *FuncExpr) ResultType() FuncType { return fe.fn.ResultType() }

// Call evaluates the function with the given current node, using ctx.Root
// for any nested $ queries in its arguments.
func (fe *FuncExpr) Call(ctx *EvalContext, current value.Value) Result {
	evalArgs := make([]Result, len(fe.args))
	for i, arg := range fe.args {
		switch a := arg.(type) {
		case *PathQuery:
			nodes := a.Select(ctx, current)
			switch {
			case i < len(fe.argTypes) && fe.argTypes[i] == FilterArg:
				evalArgs[i] = NodesResult(nodes)
			case a.IsSingular():
				if len(nodes) == 1 {
					evalArgs[i] = ValueResult(nodes[0])
				} else {
					evalArgs[i] = NothingResult()
				}
			default:
				evalArgs[i] = NodesResult(nodes)
			}
		case *FuncExpr:
			evalArgs[i] = a.Call(ctx, current)
		case CompValue:
			c := a.Value(ctx, current)
			if c.present {
				evalArgs[i] = ValueResult(c.val)
			} else {
				evalArgs[i] = NothingResult()
			}
		default:
			evalArgs[i] = NothingResult()
		}
	}
	return fe.fn.Call(evalArgs)
}

// Eval implements BasicExpr for logical functions.
// Returns false if the function is not a logical function.
func (fe *FuncExpr) Eval(ctx *EvalContext, current value.Value) bool {
	if fe.fn.ResultType() != Logical {
		return false
	}
	return fe.Call(ctx, current).Bool
}

// writeTo writes fe's name followed by "()" to buf; the arguments are not
// written.
func (fe *FuncExpr) writeTo(buf *strings.Builder) {
	buf.WriteString(fe.name)
	buf.WriteByte('(')
	buf.WriteByte(')')
}

// String returns fe's name followed by "()"; the arguments are not
// included.
func (fe *FuncExpr) String() string {
	var buf strings.Builder
	fe.writeTo(&buf)
	return buf.String()
}

// Registry holds named [Function] definitions for use during parsing and
// evaluation. A Registry is safe for concurrent reads after construction.
type Registry struct {
	funcs map[string]Function
}

// NewRegistry creates a [Registry] pre-populated with the RFC 9535 §2.4
// built-in function signatures.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Function, 8)}
	r.registerBuiltins()
	return r
}

// Register adds fn to the registry. If a function with the same name
// already exists, it is replaced.
func (r *Registry) Register(fn Function) {
	r.funcs[fn.Name()] = fn
}

// Lookup returns the [Function] with the given name and true, or nil and
// false if not found.
func (r *Registry) Lookup(name string) (Function, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Len returns the number of registered functions.
func (r *Registry) Len() int { return len(r.funcs) }

// builtinFunc is a [Function] implementation for RFC 9535 built-in function
// signatures. It provides parse-time validation; actual evaluation logic is
// provided by the functions package and overwrites these stubs via Register.
type builtinFunc struct {
	name       string
	resultType FuncType
	validate   func([]ArgType) error
}

func (f *builtinFunc) Name() string                 { return f.name }
func (f *builtinFunc) ResultType() FuncType          { return f.resultType }
func (f *builtinFunc) Validate(args []ArgType) error { return f.validate(args) }

// Call is a placeholder that returns Nothing. Actual built-in evaluation
// logic is provided by the functions package.
func (f *builtinFunc) Call([]Result) Result { return NothingResult() }

// registerBuiltins registers the five RFC 9535 §2.4 built-in function
// signatures: length, count, match, search, value.
func (r *Registry) registerBuiltins() {
	r.Register(&builtinFunc{name: "length", resultType: Value, validate: validateNArgs(1)})
	r.Register(&builtinFunc{name: "count", resultType: Value, validate: validateNArgs(1)})
	r.Register(&builtinFunc{name: "match", resultType: Logical, validate: validateNArgs(2)})
	r.Register(&builtinFunc{name: "search", resultType: Logical, validate: validateNArgs(2)})
	r.Register(&builtinFunc{name: "value", resultType: Value, validate: validateNArgs(1)})
}

// ErrArgCount indicates a function received the wrong number of arguments.
var ErrArgCount = errors.New("wrong number of arguments")

// validateNArgs returns a validation function that checks for exactly n arguments.
func validateNArgs(n int) func([]ArgType) error {
	return func(args []ArgType) error {
		if len(args) != n {
			return fmt.Errorf("%w: expected %d, got %d", ErrArgCount, n, len(args))
		}
		return nil
	}
}
