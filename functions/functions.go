// Package functions provides the RFC 9535 §2.4 built-in function
// implementations for JSONPath filter expressions.
package functions

import (
	"fmt"

	"github.com/rlross/jsonpath/internal/ast"
	"github.com/rlross/jsonpath/internal/iregexp"
	"github.com/rlross/jsonpath/internal/value"
)

// Builtins returns the five RFC 9535 §2.4 built-in function implementations.
func Builtins() []ast.Function {
	return []ast.Function{
		&LengthFunc{},
		&CountFunc{},
		&MatchFunc{},
		&SearchFunc{},
		&ValueFunc{},
	}
}

// RegisterBuiltins registers the RFC 9535 built-in functions into r,
// replacing any existing stub registrations.
func RegisterBuiltins(r *ast.Registry) {
	for _, fn := range Builtins() {
		r.Register(fn)
	}
}

// LengthFunc implements the RFC 9535 §2.4.4 length() function.
//
// Parameters: 1 ValueType
// Result: ValueType (int for string/array/object, Nothing otherwise)
type LengthFunc struct{}

func (LengthFunc) Name() string             { return "length" }
func (LengthFunc) ResultType() ast.FuncType { return ast.Value }

func (LengthFunc) Validate(args []ast.ArgType) error {
	if len(args) != 1 {
		return fmt.Errorf("length: expected 1 argument, got %d: %w", len(args), ast.ErrArgCount)
	}
	if !ast.ArgConvertsTo(args[0], ast.Value) {
		return fmt.Errorf("length: cannot convert argument to ValueType")
	}
	return nil
}

// Call returns the length of the argument: number of Unicode scalar
// values for a string, number of elements for an array, number of
// members for an object. Any other kind, or an absent (Nothing)
// argument, yields Nothing.
func (LengthFunc) Call(args []ast.Result) ast.Result {
	if len(args) == 0 || !args[0].Present {
		return ast.NothingResult()
	}
	v := args[0].Val
	n, ok := v.Len()
	if !ok {
		return ast.NothingResult()
	}
	return ast.ValueResult(value.IntValue(int64(n)))
}

// CountFunc implements the RFC 9535 §2.4.6 count() function.
//
// Parameters: 1 NodesType
// Result: ValueType (int)
type CountFunc struct{}

func (CountFunc) Name() string             { return "count" }
func (CountFunc) ResultType() ast.FuncType { return ast.Value }

func (CountFunc) Validate(args []ast.ArgType) error {
	if len(args) != 1 {
		return fmt.Errorf("count: expected 1 argument, got %d: %w", len(args), ast.ErrArgCount)
	}
	if !ast.ArgConvertsTo(args[0], ast.Nodes) {
		return fmt.Errorf("count: cannot convert argument to NodesType")
	}
	return nil
}

// Call returns the number of nodes in the node list argument.
func (CountFunc) Call(args []ast.Result) ast.Result {
	if len(args) == 0 {
		return ast.ValueResult(value.IntValue(0))
	}
	return ast.ValueResult(value.IntValue(int64(len(args[0].NodeList))))
}

// MatchFunc implements the RFC 9535 §2.4.7 match() function.
//
// match() tests whether the string argument fully matches the regex
// pattern (implicitly anchored with \A and \z).
//
// Parameters: 2 ValueType (string, regex pattern)
// Result: LogicalType (bool)
type MatchFunc struct{}

func (MatchFunc) Name() string             { return "match" }
func (MatchFunc) ResultType() ast.FuncType { return ast.Logical }

func (MatchFunc) Validate(args []ast.ArgType) error {
	return validateTwoValueArgs("match", args)
}

// Call returns true if the string argument fully matches the regex
// pattern. Returns false if either argument is not a string or the
// regex is invalid.
func (MatchFunc) Call(args []ast.Result) ast.Result {
	str, pattern, ok := twoStrings(args)
	if !ok {
		return ast.LogicalResult(false)
	}
	m := iregexp.Compile(`\A(?:` + pattern + `)\z`)
	if m == nil {
		return ast.LogicalResult(false)
	}
	return ast.LogicalResult(m.MatchString(str))
}

// SearchFunc implements the RFC 9535 §2.4.7 search() function.
//
// search() tests whether the string argument contains a substring
// matching the regex pattern (not anchored).
//
// Parameters: 2 ValueType (string, regex pattern)
// Result: LogicalType (bool)
type SearchFunc struct{}

func (SearchFunc) Name() string             { return "search" }
func (SearchFunc) ResultType() ast.FuncType { return ast.Logical }

func (SearchFunc) Validate(args []ast.ArgType) error {
	return validateTwoValueArgs("search", args)
}

// Call returns true if the string argument contains a match for the
// regex pattern. Returns false if either argument is not a string or
// the regex is invalid.
func (SearchFunc) Call(args []ast.Result) ast.Result {
	str, pattern, ok := twoStrings(args)
	if !ok {
		return ast.LogicalResult(false)
	}
	m := iregexp.Compile(pattern)
	if m == nil {
		return ast.LogicalResult(false)
	}
	return ast.LogicalResult(m.MatchString(str))
}

// ValueFunc implements the RFC 9535 §2.4.8 value() function.
//
// If the node list contains exactly one node, value() returns that
// node's value. Otherwise it returns Nothing.
//
// Parameters: 1 NodesType
// Result: ValueType
type ValueFunc struct{}

func (ValueFunc) Name() string             { return "value" }
func (ValueFunc) ResultType() ast.FuncType { return ast.Value }

func (ValueFunc) Validate(args []ast.ArgType) error {
	if len(args) != 1 {
		return fmt.Errorf("value: expected 1 argument, got %d: %w", len(args), ast.ErrArgCount)
	}
	if !ast.ArgConvertsTo(args[0], ast.Nodes) {
		return fmt.Errorf("value: cannot convert argument to NodesType")
	}
	return nil
}

// Call returns the value of the single node in the node list, or
// Nothing if the list is empty or contains more than one node.
func (ValueFunc) Call(args []ast.Result) ast.Result {
	if len(args) == 0 || len(args[0].NodeList) != 1 {
		return ast.NothingResult()
	}
	return ast.ValueResult(args[0].NodeList[0])
}

func twoStrings(args []ast.Result) (str, pattern string, ok bool) {
	if len(args) < 2 || !args[0].Present || !args[1].Present {
		return "", "", false
	}
	if args[0].Val.Kind() != value.String || args[1].Val.Kind() != value.String {
		return "", "", false
	}
	return args[0].Val.Str(), args[1].Val.Str(), true
}

func validateTwoValueArgs(name string, args []ast.ArgType) error {
	if len(args) != 2 {
		return fmt.Errorf("%s: expected 2 arguments, got %d: %w", name, len(args), ast.ErrArgCount)
	}
	for i, arg := range args {
		if !ast.ArgConvertsTo(arg, ast.Value) {
			return fmt.Errorf("%s: cannot convert argument %d to ValueType", name, i+1)
		}
	}
	return nil
}
