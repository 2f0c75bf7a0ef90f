package jsonpath

import "errors"

// Sentinel errors. Internally every failure is an *internal/errs.QueryError
// (or, for QueryJSON's decode step, a plain decode error); the root package
// wraps it behind one of these so callers can errors.Is/errors.As without
// reaching into internal packages.
var (
	// ErrPathParse is returned when a JSONPath expression cannot be parsed.
	ErrPathParse = errors.New("jsonpath: parse error")
	// ErrFunction classifies JSONPath function-call failures. No code path
	// in this package returns it: an unknown or badly typed function call
	// is reported by Parse as ErrPathParse, and Function.Call has no error
	// result.
	ErrFunction = errors.New("jsonpath: function error")
	// ErrUnmarshal is returned when JSON unmarshaling fails in QueryJSON functions.
	ErrUnmarshal = errors.New("jsonpath: unmarshal error")
	// ErrEval is returned when query evaluation fails outside of parsing
	// (reserved for future evaluation-time failures; the current evaluator
	// never returns an error from Select/SelectLocated, only warnings).
	ErrEval = errors.New("jsonpath: evaluation error")
)
