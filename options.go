package jsonpath

import (
	"fmt"
	"maps"

	"github.com/rlross/jsonpath/functions"
	"github.com/rlross/jsonpath/internal/ast"
	"github.com/rlross/jsonpath/internal/parser"
	"github.com/rlross/jsonpath/internal/value"
)

// FuncType, ArgType, Result, and Function are aliased directly to their
// internal/ast counterparts rather than re-declared: a caller implementing
// Function against these aliases automatically satisfies internal/ast's
// interface, so registering a custom function needs no adapter layer.
type (
	// FuncType describes the return type of a function extension, per
	// RFC 9535 §2.4.1.
	FuncType = ast.FuncType
	// ArgType describes the type of a function argument expression for
	// parse-time validation.
	ArgType = ast.ArgType
	// Result is the value produced by calling a Function.
	Result = ast.Result
	// Function defines an extension function that can be registered with
	// a [Parser] via [WithFunctions], or process-wide via [RegisterFunction].
	Function = ast.Function
)

const (
	FuncLogical FuncType = ast.Logical
	FuncValue   FuncType = ast.Value
	FuncNodes   FuncType = ast.Nodes

	ArgLiteral      ArgType = ast.Literal
	ArgQuery        ArgType = ast.QueryArg
	ArgFilterQuery  ArgType = ast.FilterArg
	ArgLogical      ArgType = ast.LogicalArg
	ArgFunctionExpr ArgType = ast.FunctionArg
)

// LogicalResult, ValueResult, NothingResult, and NodesResult construct a
// [Result] of the matching [FuncType], for use inside a custom [Function]'s
// Call method.
func LogicalResult(b bool) Result        { return ast.LogicalResult(b) }
func ValueResult(v value.Value) Result   { return ast.ValueResult(v) }
func NothingResult() Result              { return ast.NothingResult() }
func NodesResult(nodes []value.Value) Result { return ast.NodesResult(nodes) }

// Option configures a [Parser].
type Option func(*parserOptions)

type parserOptions struct {
	functions map[string]ast.Function
	maxDepth  int
	warnSink  WarnSink
}

// WithFunctions registers additional filter functions beyond the RFC 9535
// built-ins. If multiple functions share the same name, the last one wins,
// and a function registered here overrides a same-named built-in or a
// process-wide function registered via [RegisterFunction].
func WithFunctions(fns ...Function) Option {
	return func(o *parserOptions) {
		for _, fn := range fns {
			o.functions[fn.Name()] = fn
		}
	}
}

// WithMaxDepth bounds descendant-segment recursion and deep-equality
// recursion for queries compiled by this [Parser]. depth <= 0 restores
// the default ([ast.DefaultMaxDepth]).
func WithMaxDepth(depth int) Option {
	return func(o *parserOptions) { o.maxDepth = depth }
}

// WithWarnSink configures the [WarnSink] that receives non-fatal
// cycle/max-depth warnings raised while evaluating queries compiled by
// this [Parser]. The default is [NopSink], which discards warnings.
func WithWarnSink(sink WarnSink) Option {
	return func(o *parserOptions) { o.warnSink = sink }
}

// Parser parses JSONPath expressions into [Path] values, optionally
// configured with extension functions, a max evaluation depth, and a
// warning sink. Safe for concurrent use after construction.
type Parser struct {
	opts parserOptions
}

// NewParser creates a new [Parser] configured by opts.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		opts: parserOptions{
			functions: make(map[string]ast.Function),
			warnSink:  NopSink{},
		},
	}
	for _, o := range opts {
		o(&p.opts)
	}
	return p
}

// Parse compiles a JSONPath expression. Returns [ErrPathParse] on failure.
func (p *Parser) Parse(expr string) (*Path, error) {
	funcs := make(map[string]ast.Function, 5+len(p.opts.functions))
	maps.Copy(funcs, builtinRegistry())

	globalRegistryMu.RLock()
	maps.Copy(funcs, globalRegistry)
	globalRegistryMu.RUnlock()

	maps.Copy(funcs, p.opts.functions)

	internalParser, err := parser.New(expr, funcs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPathParse, err)
	}

	query, err := internalParser.Parse()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPathParse, err)
	}

	return &Path{query: query, maxDepth: p.opts.maxDepth, warnSink: p.opts.warnSink}, nil
}

// MustParse compiles a JSONPath expression. Panics on failure.
func (p *Parser) MustParse(expr string) *Path {
	path, err := p.Parse(expr)
	if err != nil {
		panic(err)
	}
	return path
}

func builtinRegistry() map[string]ast.Function {
	reg := make(map[string]ast.Function, 8)
	for _, fn := range functions.Builtins() {
		reg[fn.Name()] = fn
	}
	return reg
}
