package ast

import (
	"strings"

	"github.com/rlross/jsonpath/internal/path"
	"github.com/rlross/jsonpath/internal/value"
)

// Segment represents a child or descendant segment as defined in
// RFC 9535 §1.4.2. A segment holds one or more selectors.
type Segment struct {
	selectors  []Selector
	descendant bool
}

// Child creates a child [Segment] that applies selectors to direct children.
func Child(sel ...Selector) Segment {
	return Segment{selectors: sel}
}

// Descendant creates a descendant [Segment] that applies selectors recursively
// to all descendants.
func Descendant(sel ...Selector) Segment {
	return Segment{selectors: sel, descendant: true}
}

// Selectors returns the segment's selectors.
func (s *Segment) Selectors() []Selector { return s.selectors }

// IsDescendant reports whether the segment is a descendant segment.
func (s *Segment) IsDescendant() bool { return s.descendant }

// IsSingular reports whether the segment selects at most one node.
// A segment is singular only if it is a child segment with exactly one
// singular selector.
func (s *Segment) IsSingular() bool {
	if s.descendant || len(s.selectors) != 1 {
		return false
	}
	return s.selectors[0].IsSingular()
}

// writeTo writes the canonical string representation of the segment to buf.
// Child segments format as [<selectors>]; descendant segments as ..[<selectors>].
func (s *Segment) writeTo(buf *strings.Builder) {
	if s.descendant {
		buf.WriteString("..")
	}
	buf.WriteByte('[')
	for i := range s.selectors {
		if i > 0 {
			buf.WriteByte(',')
		}
		s.selectors[i].writeTo(buf)
	}
	buf.WriteByte(']')
}

// String returns the canonical string representation of the segment.
func (s *Segment) String() string {
	var buf strings.Builder
	s.writeTo(&buf)
	return buf.String()
}

// Apply applies the segment to a list of nodes and returns the result.
func (s *Segment) Apply(ctx *EvalContext, nodes []value.Value) []value.Value {
	if len(nodes) == 0 {
		return nodes
	}

	result := make([]value.Value, 0, len(nodes))
	if s.descendant {
		for _, node := range nodes {
			result = appendDescendant(ctx, result, s.selectors, node, 0, path.Root())
		}
	} else {
		for _, node := range nodes {
			result = appendSelectors(ctx, result, s.selectors, node, path.Root())
		}
	}
	return result
}

// ApplyLocated is Apply's path-tracking counterpart, used by
// SelectLocated: every result carries the normalized path it was found
// at, relative to each input LocatedNode's own path.
func (s *Segment) ApplyLocated(ctx *EvalContext, nodes []path.LocatedNode) []path.LocatedNode {
	if len(nodes) == 0 {
		return nodes
	}

	result := make([]path.LocatedNode, 0, len(nodes))
	if s.descendant {
		for _, n := range nodes {
			result = appendDescendantLocated(ctx, result, s.selectors, n.Value, 0, n.Path)
		}
	} else {
		for _, n := range nodes {
			result = appendSelectorsLocated(ctx, result, s.selectors, n.Value, n.Path)
		}
	}
	return result
}

// appendSelectors applies selectors to a single node and appends results.
func appendSelectors(ctx *EvalContext, out []value.Value, selectors []Selector, node value.Value, at path.NormalizedPath) []value.Value {
	for i := range selectors {
		out = selectors[i].Apply(ctx, out, node, at)
	}
	return out
}

func appendSelectorsLocated(ctx *EvalContext, out []path.LocatedNode, selectors []Selector, node value.Value, at path.NormalizedPath) []path.LocatedNode {
	for i := range selectors {
		out = selectors[i].ApplyLocated(ctx, out, node, at)
	}
	return out
}

// appendDescendant recursively applies selectors to node and all
// descendants, in the RFC 9535 §2.5.2.2 order (the node itself before its
// descendants; array elements in index order; object members in
// insertion order). depth counts container nestings below the segment's
// starting node; at is node's normalized path, used both to key
// warnings and to build descendants' paths for ApplyLocated.
//
// Cycle detection and the depth cap are enforced here rather than in
// value.Value itself: a cycle is only a traversal concern (a plain
// Array/Object tree is a perfectly valid acyclic JSON document; only
// self-referential construction, impossible via Decode/DecodeGJSON but
// reachable via direct Value construction, creates one).
func appendDescendant(ctx *EvalContext, out []value.Value, selectors []Selector, node value.Value, depth int, at path.NormalizedPath) []value.Value {
	out = appendSelectors(ctx, out, selectors, node, at)
	if !node.IsContainer() {
		return out
	}
	if depth >= ctx.MaxDepth {
		ctx.warn(WarnMaxDepthExceeded, at, "descendant traversal exceeded max depth")
		return out
	}
	id := containerIdentity(node)
	if !ctx.enter(id) {
		ctx.warn(WarnCycleDetected, at, "descendant traversal found a cyclic container reference")
		return out
	}
	switch node.Kind() {
	case value.Array:
		for i, e := range node.Elems() {
			out = appendDescendant(ctx, out, selectors, e, depth+1, at.Append(path.IndexElement{Index: i}))
		}
	case value.Object:
		node.Range(func(k string, v value.Value) bool {
			out = appendDescendant(ctx, out, selectors, v, depth+1, at.Append(path.NameElement{Name: k}))
			return true
		})
	}
	ctx.leave(id)
	return out
}

func appendDescendantLocated(ctx *EvalContext, out []path.LocatedNode, selectors []Selector, node value.Value, depth int, at path.NormalizedPath) []path.LocatedNode {
	out = appendSelectorsLocated(ctx, out, selectors, node, at)
	if !node.IsContainer() {
		return out
	}
	if depth >= ctx.MaxDepth {
		ctx.warn(WarnMaxDepthExceeded, at, "descendant traversal exceeded max depth")
		return out
	}
	id := containerIdentity(node)
	if !ctx.enter(id) {
		ctx.warn(WarnCycleDetected, at, "descendant traversal found a cyclic container reference")
		return out
	}
	switch node.Kind() {
	case value.Array:
		for i, e := range node.Elems() {
			out = appendDescendantLocated(ctx, out, selectors, e, depth+1, at.Append(path.IndexElement{Index: i}))
		}
	case value.Object:
		node.Range(func(k string, v value.Value) bool {
			out = appendDescendantLocated(ctx, out, selectors, v, depth+1, at.Append(path.NameElement{Name: k}))
			return true
		})
	}
	ctx.leave(id)
	return out
}

func containerIdentity(v value.Value) any {
	if v.Kind() == value.Array {
		return v.ArrayIdentity()
	}
	return v.ObjectIdentity()
}
