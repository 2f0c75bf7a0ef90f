package ast

import (
	"github.com/rlross/jsonpath/internal/path"
	"github.com/rlross/jsonpath/internal/value"
)

// WarnKind classifies a non-fatal condition raised during evaluation.
type WarnKind int

const (
	// WarnCycleDetected is raised when descendant traversal would re-enter
	// a container it is already inside of. Deep equality does not track
	// visited containers; it is bounded by MaxDepth alone.
	WarnCycleDetected WarnKind = iota
	// WarnMaxDepthExceeded is raised when traversal or comparison would
	// exceed EvalContext.MaxDepth.
	WarnMaxDepthExceeded
)

// String returns the human-readable name of k.
func (k WarnKind) String() string {
	switch k {
	case WarnCycleDetected:
		return "CycleDetected"
	case WarnMaxDepthExceeded:
		return "MaxDepthExceeded"
	default:
		return "UnknownWarning"
	}
}

// Warner receives non-fatal warnings raised while evaluating a query. The
// root package's WarnSink is adapted to this interface so internal/ast
// does not need to import the root package.
type Warner interface {
	Warn(kind WarnKind, at path.NormalizedPath, detail string)
}

// DefaultMaxDepth bounds descendant-segment recursion and deep-equality
// recursion when a caller does not specify one explicitly. 32 is deep
// enough for any realistic document while still terminating promptly on
// a pathological self-referential input.
const DefaultMaxDepth = 32

// EvalContext carries per-query evaluation state: the document root (for
// $ queries issued from inside a filter), a depth cap, a warning sink,
// and the set of containers currently being visited by the active
// descendant-segment recursion, keyed by container identity
// (value.Value.ArrayIdentity/ObjectIdentity).
//
// visited is used with an "unmark on return" discipline: a container's
// identity is added when recursion enters it and removed when recursion
// leaves it. This lets the same container be visited twice via two
// different paths (legitimate when a document is a DAG, i.e. two
// properties reference the same sub-object) while still detecting a
// true cycle, where a container would be reentered while still on the
// current recursion stack.
type EvalContext struct {
	Root     value.Value
	MaxDepth int
	Sink     Warner

	visited map[any]struct{}
}

// NewEvalContext creates an EvalContext for evaluating a query against
// root. maxDepth <= 0 selects DefaultMaxDepth. sink may be nil, in which
// case warnings are silently dropped.
func NewEvalContext(root value.Value, maxDepth int, sink Warner) *EvalContext {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &EvalContext{
		Root:     root,
		MaxDepth: maxDepth,
		Sink:     sink,
		visited:  make(map[any]struct{}),
	}
}

func (c *EvalContext) warn(kind WarnKind, at path.NormalizedPath, detail string) {
	if c.Sink != nil {
		c.Sink.Warn(kind, at, detail)
	}
}

// enter records that id (a container identity) is now on the active
// recursion stack. It returns false, without recording anything, if id
// is already on the stack — the caller's recursion must stop there.
func (c *EvalContext) enter(id any) bool {
	if _, cycle := c.visited[id]; cycle {
		return false
	}
	c.visited[id] = struct{}{}
	return true
}

// leave removes id from the active recursion stack. Must be paired with
// a successful enter.
func (c *EvalContext) leave(id any) {
	delete(c.visited, id)
}
