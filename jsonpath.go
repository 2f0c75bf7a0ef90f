// Package jsonpath implements RFC 9535 JSONPath query expressions:
// compiling a query string into a reusable [Path], then evaluating it
// against an in-memory JSON value or raw JSON bytes.
package jsonpath

import (
	"errors"

	jsonexp "github.com/go-json-experiment/json"

	"github.com/rlross/jsonpath/internal/ast"
	"github.com/rlross/jsonpath/internal/value"
)

// Path is a compiled RFC 9535 JSONPath query. Safe for concurrent use.
type Path struct {
	query    *ast.PathQuery
	maxDepth int
	warnSink WarnSink
}

// Select returns all nodes matched by p in root.
func (p *Path) Select(root value.Value) NodeList {
	if p.query == nil {
		return nil
	}
	ctx := ast.NewEvalContext(root, p.maxDepth, newSinkAdapter(p.warnSink))
	return NodeList(p.query.Select(ctx, root))
}

// SelectLocated returns matched nodes paired with their normalized paths.
func (p *Path) SelectLocated(root value.Value) LocatedNodeList {
	if p.query == nil {
		return nil
	}
	ctx := ast.NewEvalContext(root, p.maxDepth, newSinkAdapter(p.warnSink))
	return LocatedNodeList(p.query.SelectLocated(ctx, root, nil))
}

// String returns the canonical string representation of p.
func (p *Path) String() string {
	if p.query == nil {
		return ""
	}
	return p.query.String()
}

// MarshalText implements encoding.TextMarshaler.
func (p *Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Path) UnmarshalText(text []byte) error {
	path, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = *path
	return nil
}

// Parse compiles a JSONPath expression using a default [Parser] (RFC 9535
// built-ins only, default max depth, warnings discarded). Returns
// [ErrPathParse] on failure.
func Parse(expr string) (*Path, error) {
	return NewParser().Parse(expr)
}

// MustParse compiles a JSONPath expression. Panics on failure.
func MustParse(expr string) *Path {
	path, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return path
}

// Valid reports whether expr is a syntactically valid JSONPath expression.
func Valid(expr string) bool {
	_, err := Parse(expr)
	return err == nil
}

// QueryJSON parses src into an order-preserving value.Value tree via
// [DecodeOrdered] and evaluates path against it.
func QueryJSON(src []byte, path *Path) (NodeList, error) {
	root, err := DecodeOrdered(src)
	if err != nil {
		return nil, errors.Join(ErrUnmarshal, err)
	}
	return path.Select(root), nil
}

// QueryJSONLocated is the located variant of QueryJSON.
func QueryJSONLocated(src []byte, path *Path) (LocatedNodeList, error) {
	root, err := DecodeOrdered(src)
	if err != nil {
		return nil, errors.Join(ErrUnmarshal, err)
	}
	return path.SelectLocated(root), nil
}

// DecodeOrdered parses src into an order-preserving value.Value tree,
// driving encoding/json.Decoder's token stream directly (see
// internal/value.Decode) so object member order survives for
// wildcard/descendant traversal (RFC 9535 §2.5.1/§2.5.2). This is the
// default decode path for QueryJSON and QueryJSONLocated.
func DecodeOrdered(src []byte) (value.Value, error) {
	return value.Decode(src)
}

// DecodeGJSON parses src into an order-preserving value.Value tree using
// github.com/tidwall/gjson instead of DecodeOrdered's stdlib decoder — a
// second, independent JSON engine exercising the same order-preservation
// contract, useful when a caller already depends on gjson elsewhere.
func DecodeGJSON(src []byte) (value.Value, error) {
	return value.DecodeGJSON(src)
}

// QueryJSONFast parses src with github.com/go-json-experiment/json into a
// plain any (bool/float64/string/[]any/map[string]any) and evaluates path
// against it. Faster than QueryJSON when the input is large and the
// caller's queries never depend on object member order (no wildcard or
// descendant-segment selector over an object whose output order matters) —
// Go's map iteration order is unspecified, so a query that does depend on
// order should use QueryJSON instead.
func QueryJSONFast(src []byte, path *Path) (NodeList, error) {
	var v any
	if err := jsonexp.Unmarshal(src, &v, jsonexp.DefaultOptionsV2()); err != nil {
		return nil, errors.Join(ErrUnmarshal, err)
	}
	return path.Select(value.FromAny(v)), nil
}
