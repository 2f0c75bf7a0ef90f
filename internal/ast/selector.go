package ast

import (
	"strconv"
	"strings"

	"github.com/rlross/jsonpath/internal/path"
	"github.com/rlross/jsonpath/internal/value"
)

// SelectorKind identifies the variant stored in a [Selector].
type SelectorKind uint8

const (
	Name     SelectorKind = iota // member name selector
	Index                        // array index selector
	Slice                        // array slice selector
	Wildcard                     // wildcard selector
	Filter                       // filter selector
)

// Selector is a tagged union representing one of the five RFC 9535 selector
// types. Using a concrete struct (instead of an interface) keeps selector
// slices contiguous in memory for cache efficiency.
type Selector struct {
	Kind   SelectorKind
	Name   string      // Kind Name: the member name
	Index  int64       // Kind Index: the array index (may be negative)
	Slice  SliceArgs   // Kind Slice
	Filter *FilterExpr // Kind Filter
}

// SliceArgs holds the optional start, end, step for a slice selector.
type SliceArgs struct {
	Start    int64
	End      int64
	Step     int64
	HasStart bool
	HasEnd   bool
	HasStep  bool
}

// NameSelector returns a Selector for a member name.
func NameSelector(name string) Selector {
	return Selector{Kind: Name, Name: name}
}

// IndexSelector returns a Selector for an array index.
func IndexSelector(idx int64) Selector {
	return Selector{Kind: Index, Index: idx}
}

// SliceSelector returns a Selector for an array slice.
func SliceSelector(args SliceArgs) Selector {
	return Selector{Kind: Slice, Slice: args}
}

// WildcardSelector returns a wildcard Selector.
func WildcardSelector() Selector {
	return Selector{Kind: Wildcard}
}

// FilterSelector returns a filter Selector.
func FilterSelector(expr *FilterExpr) Selector {
	return Selector{Kind: Filter, Filter: expr}
}

// IsSingular reports whether the selector can select at most one node.
// Only name and index selectors are singular.
func (s *Selector) IsSingular() bool {
	return s.Kind == Name || s.Kind == Index
}

// writeTo writes the canonical string representation of s to buf.
func (s *Selector) writeTo(buf *strings.Builder) {
	switch s.Kind {
	case Name:
		buf.WriteString(strconv.Quote(s.Name))
	case Index:
		buf.WriteString(strconv.FormatInt(s.Index, 10))
	case Slice:
		s.Slice.writeTo(buf)
	case Wildcard:
		buf.WriteByte('*')
	case Filter:
		buf.WriteByte('?')
		// Normalized paths (RFC 9535 §2.7) never contain a filter
		// selector — only name and index steps do — so round-tripping
		// the filter expression's own source text isn't needed here.
	}
}

// String returns the canonical string representation of s.
func (s *Selector) String() string {
	var buf strings.Builder
	s.writeTo(&buf)
	return buf.String()
}

// Apply applies the selector to a node and appends matching results to out.
func (s *Selector) Apply(ctx *EvalContext, out []value.Value, node value.Value, at path.NormalizedPath) []value.Value {
	switch s.Kind {
	case Name:
		if node.Kind() == value.Object {
			if v, ok := node.Get(s.Name); ok {
				out = append(out, v)
			}
		}
	case Index:
		if node.Kind() == value.Array {
			if v, ok := indexElem(node, s.Index); ok {
				out = append(out, v)
			}
		}
	case Slice:
		if node.Kind() == value.Array {
			out = s.applySlice(out, node)
		}
	case Wildcard:
		switch node.Kind() {
		case value.Object:
			node.Range(func(_ string, v value.Value) bool {
				out = append(out, v)
				return true
			})
		case value.Array:
			out = append(out, node.Elems()...)
		}
	case Filter:
		switch node.Kind() {
		case value.Object:
			node.Range(func(_ string, v value.Value) bool {
				if s.Filter.Eval(ctx, v) {
					out = append(out, v)
				}
				return true
			})
		case value.Array:
			for _, v := range node.Elems() {
				if s.Filter.Eval(ctx, v) {
					out = append(out, v)
				}
			}
		}
	}
	return out
}

// ApplyLocated is Apply's path-tracking counterpart.
func (s *Selector) ApplyLocated(ctx *EvalContext, out []path.LocatedNode, node value.Value, at path.NormalizedPath) []path.LocatedNode {
	switch s.Kind {
	case Name:
		if node.Kind() == value.Object {
			if v, ok := node.Get(s.Name); ok {
				out = append(out, path.LocatedNode{Path: at.Append(path.NameElement{Name: s.Name}), Value: v})
			}
		}
	case Index:
		if node.Kind() == value.Array {
			if v, norm, ok := indexElemNormalized(node, s.Index); ok {
				out = append(out, path.LocatedNode{Path: at.Append(path.IndexElement{Index: norm}), Value: v})
			}
		}
	case Slice:
		if node.Kind() == value.Array {
			out = s.applySliceLocated(out, node, at)
		}
	case Wildcard:
		switch node.Kind() {
		case value.Object:
			node.Range(func(k string, v value.Value) bool {
				out = append(out, path.LocatedNode{Path: at.Append(path.NameElement{Name: k}), Value: v})
				return true
			})
		case value.Array:
			for i, v := range node.Elems() {
				out = append(out, path.LocatedNode{Path: at.Append(path.IndexElement{Index: i}), Value: v})
			}
		}
	case Filter:
		switch node.Kind() {
		case value.Object:
			node.Range(func(k string, v value.Value) bool {
				if s.Filter.Eval(ctx, v) {
					out = append(out, path.LocatedNode{Path: at.Append(path.NameElement{Name: k}), Value: v})
				}
				return true
			})
		case value.Array:
			for i, v := range node.Elems() {
				if s.Filter.Eval(ctx, v) {
					out = append(out, path.LocatedNode{Path: at.Append(path.IndexElement{Index: i}), Value: v})
				}
			}
		}
	}
	return out
}

func indexElem(node value.Value, idx int64) (value.Value, bool) {
	v, _, ok := indexElemNormalized(node, idx)
	return v, ok
}

func indexElemNormalized(node value.Value, idx int64) (value.Value, int, bool) {
	length := int64(len(node.Elems()))
	norm := idx
	if norm < 0 {
		norm += length
	}
	if norm < 0 || norm >= length {
		return value.Value{}, 0, false
	}
	return node.Elem(int(norm)), int(norm), true
}

// applySingular resolves this selector against node as one step of a
// SingularQuery, returning ok=false if it selects nothing.
func (s *Selector) applySingular(node value.Value) (value.Value, bool) {
	switch s.Kind {
	case Name:
		if node.Kind() != value.Object {
			return value.Value{}, false
		}
		return node.Get(s.Name)
	case Index:
		if node.Kind() != value.Array {
			return value.Value{}, false
		}
		return indexElem(node, s.Index)
	default:
		return value.Value{}, false
	}
}

// applySlice applies a slice selector to an array.
func (s *Selector) applySlice(out []value.Value, node value.Value) []value.Value {
	start, end, step, ok := normalizeSliceBounds(s.Slice, int64(len(node.Elems())))
	if !ok {
		return out
	}
	elems := node.Elems()
	if step > 0 {
		for i := start; i < end; i += step {
			out = append(out, elems[i])
		}
	} else {
		for i := start; i > end; i += step {
			out = append(out, elems[i])
		}
	}
	return out
}

func (s *Selector) applySliceLocated(out []path.LocatedNode, node value.Value, at path.NormalizedPath) []path.LocatedNode {
	start, end, step, ok := normalizeSliceBounds(s.Slice, int64(len(node.Elems())))
	if !ok {
		return out
	}
	elems := node.Elems()
	if step > 0 {
		for i := start; i < end; i += step {
			out = append(out, path.LocatedNode{Path: at.Append(path.IndexElement{Index: int(i)}), Value: elems[i]})
		}
	} else {
		for i := start; i > end; i += step {
			out = append(out, path.LocatedNode{Path: at.Append(path.IndexElement{Index: int(i)}), Value: elems[i]})
		}
	}
	return out
}

// normalizeSliceBounds implements RFC 9535 §2.3.4.2.2's slice bounds
// normalization. ok is false when the array is empty or step is zero,
// either of which selects nothing.
func normalizeSliceBounds(a SliceArgs, length int64) (start, end, step int64, ok bool) {
	if length == 0 {
		return 0, 0, 0, false
	}

	start, end, step = a.Start, a.End, a.Step
	if !a.HasStep {
		step = 1
	}

	switch {
	case step > 0:
		if !a.HasStart {
			start = 0
		}
		if !a.HasEnd {
			end = length
		}
	case step < 0:
		if !a.HasStart {
			start = length - 1
		}
		if !a.HasEnd {
			end = -length - 1
		}
	default:
		return 0, 0, 0, false
	}

	if start < 0 {
		start += length
	}
	if end < 0 {
		end += length
	}

	if step > 0 {
		if start < 0 {
			start = 0
		}
		if start > length {
			start = length
		}
		if end < 0 {
			end = 0
		}
		if end > length {
			end = length
		}
	} else {
		if start < -1 {
			start = -1
		}
		if start >= length {
			start = length - 1
		}
		if end < -1 {
			end = -1
		}
		if end >= length {
			end = length - 1
		}
	}

	return start, end, step, true
}

// writeTo writes the canonical slice notation (e.g. "1:5:2") to buf.
func (a *SliceArgs) writeTo(buf *strings.Builder) {
	if a.HasStart {
		buf.WriteString(strconv.FormatInt(a.Start, 10))
	}
	buf.WriteByte(':')
	if a.HasEnd {
		buf.WriteString(strconv.FormatInt(a.End, 10))
	}
	if a.HasStep {
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatInt(a.Step, 10))
	}
}
