package jsonpath

import (
	"fmt"

	"github.com/rlross/jsonpath/internal/value"
)

// WellFormedQuery is a JSONPath expression that has already been parsed
// and type-checked once, for callers that assemble a query string
// dynamically (e.g. from user-supplied path fragments) and want to
// validate it eagerly — failing fast with the same error taxonomy as
// [Parse] — before evaluating it, possibly many times, without re-parsing
// on every call.
//
// Grounded on killerbunny/evaluating/well_formed_query.py's
// WellFormedValidQuery: a from_str factory that parses once and an eval
// method that re-evaluates the already-built AST against different roots.
type WellFormedQuery struct {
	path *Path
}

// NewWellFormedQuery parses and type-checks expr using a default [Parser],
// returning [ErrPathParse] if expr is not a well-formed, valid JSONPath
// expression.
func NewWellFormedQuery(expr string) (*WellFormedQuery, error) {
	return NewWellFormedQueryWithParser(NewParser(), expr)
}

// NewWellFormedQueryWithParser is [NewWellFormedQuery], using p instead of
// a default [Parser] — for validating a query against a custom function
// registry or max-depth setting.
func NewWellFormedQueryWithParser(p *Parser, expr string) (*WellFormedQuery, error) {
	if expr == "" {
		return nil, fmt.Errorf("%w: query string is empty", ErrPathParse)
	}
	path, err := p.Parse(expr)
	if err != nil {
		return nil, err
	}
	return &WellFormedQuery{path: path}, nil
}

// Eval evaluates the query against root, returning all matched nodes.
func (q *WellFormedQuery) Eval(root value.Value) NodeList {
	return q.path.Select(root)
}

// EvalLocated evaluates the query against root, returning matched nodes
// paired with their normalized paths.
func (q *WellFormedQuery) EvalLocated(root value.Value) LocatedNodeList {
	return q.path.SelectLocated(root)
}

// String returns the canonical string representation of the query.
func (q *WellFormedQuery) String() string {
	return q.path.String()
}
