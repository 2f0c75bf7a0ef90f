// Package path implements RFC 9535 §2.7 normalized paths: the canonical,
// re-parseable location string JSONPath produces for every node a query
// selects. It is split out of the root package (rather than living
// alongside the AST, as the teacher's types.go does) so both internal/ast
// and the root package can depend on it without an import cycle: the
// evaluator needs to build normalized paths while it walks segments, and
// the root package needs the same type to expose results to callers.
package path

import (
	"strconv"
	"strings"

	"github.com/rlross/jsonpath/internal/value"
)

// PathElement is one step of a normalized path: either a member name
// (object access) or an array index.
type PathElement interface {
	writeNormalizedTo(sb *strings.Builder)
	writePointerTo(sb *strings.Builder)
}

// NameElement is a normalized-path step selecting an object member.
type NameElement struct{ Name string }

// IndexElement is a normalized-path step selecting an array element.
type IndexElement struct{ Index int }

func (e NameElement) writeNormalizedTo(sb *strings.Builder) {
	sb.WriteByte('[')
	sb.WriteByte('\'')
	writeNormalizedEscaped(sb, e.Name)
	sb.WriteByte('\'')
	sb.WriteByte(']')
}

func (e IndexElement) writeNormalizedTo(sb *strings.Builder) {
	sb.WriteByte('[')
	sb.WriteString(strconv.Itoa(e.Index))
	sb.WriteByte(']')
}

// writeNormalizedEscaped writes s as the body of an RFC 9535 §2.7
// single-quoted normalized-path string: backslash and single-quote are
// escaped, double-quote is left bare (single-quoted strings don't need
// it), and control characters use the same \b \f \n \r \t \uXXXX forms as
// JSON string literals.
func writeNormalizedEscaped(sb *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\'':
			sb.WriteString(`\'`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				sb.WriteString(`\u`)
				hex := strconv.FormatInt(int64(r), 16)
				for i := len(hex); i < 4; i++ {
					sb.WriteByte('0')
				}
				sb.WriteString(hex)
			} else {
				sb.WriteRune(r)
			}
		}
	}
}

func (e NameElement) writePointerTo(sb *strings.Builder) {
	sb.WriteByte('/')
	writePointerEscaped(sb, e.Name)
}

func (e IndexElement) writePointerTo(sb *strings.Builder) {
	sb.WriteByte('/')
	sb.WriteString(strconv.Itoa(e.Index))
}

// writePointerEscaped applies RFC 6901's two-character escaping: '~'
// becomes "~0" and '/' becomes "~1", in that order (so a literal "~1" in
// a member name round-trips correctly).
func writePointerEscaped(sb *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '~':
			sb.WriteString("~0")
		case '/':
			sb.WriteString("~1")
		default:
			sb.WriteRune(r)
		}
	}
}

// NormalizedPath is a sequence of PathElement steps from the query root.
// The empty NormalizedPath denotes the root itself ("$").
type NormalizedPath []PathElement

// Root returns the normalized path of the query root.
func Root() NormalizedPath { return nil }

// Append returns a new NormalizedPath with e appended. The receiver is
// never mutated, so the same prefix can be safely reused across sibling
// branches of a traversal.
func (p NormalizedPath) Append(e PathElement) NormalizedPath {
	out := make(NormalizedPath, len(p)+1)
	copy(out, p)
	out[len(p)] = e
	return out
}

// String renders p in RFC 9535 §2.7 normalized-path form, e.g.
// "$['a'][0]['b c']".
func (p NormalizedPath) String() string {
	var sb strings.Builder
	sb.WriteByte('$')
	for _, e := range p {
		e.writeNormalizedTo(&sb)
	}
	return sb.String()
}

// Pointer renders p as an RFC 6901 JSON Pointer, e.g. "/a/0/b c".
func (p NormalizedPath) Pointer() string {
	var sb strings.Builder
	for _, e := range p {
		e.writePointerTo(&sb)
	}
	return sb.String()
}

// MarshalText implements encoding.TextMarshaler by rendering the
// normalized-path form.
func (p NormalizedPath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Compare orders two normalized paths lexicographically by element: a
// shorter path that is a prefix of a longer one sorts first; otherwise
// the first differing element decides, with NameElement and IndexElement
// compared as their own kind before falling back to name/index value
// comparison when both sides are the same kind. Used by
// LocatedNodeList.Sort to produce a deterministic output order when
// callers want one.
func (p NormalizedPath) Compare(other NormalizedPath) int {
	n := len(p)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if c := compareElement(p[i], other[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(p) < len(other):
		return -1
	case len(p) > len(other):
		return 1
	default:
		return 0
	}
}

func compareElement(a, b PathElement) int {
	an, aIsName := a.(NameElement)
	bn, bIsName := b.(NameElement)
	ai, aIsIndex := a.(IndexElement)
	bi, bIsIndex := b.(IndexElement)
	switch {
	case aIsName && bIsName:
		return strings.Compare(an.Name, bn.Name)
	case aIsIndex && bIsIndex:
		switch {
		case ai.Index < bi.Index:
			return -1
		case ai.Index > bi.Index:
			return 1
		default:
			return 0
		}
	case aIsName && bIsIndex:
		return -1
	default:
		return 1
	}
}

// LocatedNode pairs a selected value with the normalized path it was
// found at, the unit SelectLocated returns.
type LocatedNode struct {
	Path  NormalizedPath
	Value value.Value
}
