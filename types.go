package jsonpath

import (
	"iter"
	"slices"

	"github.com/rlross/jsonpath/internal/path"
	"github.com/rlross/jsonpath/internal/value"
)

// Re-exported so callers working with normalized paths never need to
// import internal/path directly.
type (
	// PathElement is one step of a normalized path.
	PathElement = path.PathElement
	// NameElement is a normalized-path step selecting an object member.
	NameElement = path.NameElement
	// IndexElement is a normalized-path step selecting an array element.
	IndexElement = path.IndexElement
	// NormalizedPath is a sequence of PathElement steps from the query root.
	NormalizedPath = path.NormalizedPath
)

// NodeList is a list of nodes selected by a JSONPath query.
type NodeList []value.Value

// All returns an iterator over the nodes in l.
func (l NodeList) All() iter.Seq[value.Value] {
	return slices.Values(l)
}

// LocatedNode pairs a value with the [NormalizedPath] it was found at.
type LocatedNode = path.LocatedNode

// LocatedNodeList is a list of nodes selected by a JSONPath query, paired
// with the [NormalizedPath] each was found at.
type LocatedNodeList []LocatedNode

// All returns an iterator over the located nodes in l.
func (l LocatedNodeList) All() iter.Seq[LocatedNode] {
	return slices.Values(l)
}

// Values returns an iterator over the node values in l.
func (l LocatedNodeList) Values() iter.Seq[value.Value] {
	return func(yield func(value.Value) bool) {
		for _, n := range l {
			if !yield(n.Value) {
				return
			}
		}
	}
}

// Paths returns an iterator over the normalized paths in l.
func (l LocatedNodeList) Paths() iter.Seq[NormalizedPath] {
	return func(yield func(NormalizedPath) bool) {
		for _, n := range l {
			if !yield(n.Path) {
				return
			}
		}
	}
}

// Deduplicate removes nodes sharing a normalized path with an earlier
// node in l, preserving the first occurrence's position. It modifies and
// returns l, which may come back shorter; elements past the new length
// are zeroed.
func (l LocatedNodeList) Deduplicate() LocatedNodeList {
	if len(l) <= 1 {
		return l
	}

	seen := make(map[string]struct{}, len(l))
	uniq := l[:0]
	for _, n := range l {
		p := n.Path.String()
		if _, exists := seen[p]; !exists {
			seen[p] = struct{}{}
			uniq = append(uniq, n)
		}
	}
	clear(l[len(uniq):])
	return slices.Clip(uniq)
}

// Sort orders l by the normalized path of each node.
func (l LocatedNodeList) Sort() {
	slices.SortFunc(l, func(a, b LocatedNode) int {
		return a.Path.Compare(b.Path)
	})
}
