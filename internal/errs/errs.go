// Package errs implements the error taxonomy and source-indicator
// formatting used across lexing, parsing, and evaluation: every error
// carries a Kind, a message, and a Span into the original query text, and
// can render itself as a caret-annotated indicator line the way a
// compiler diagnostic does.
package errs

import "strings"

// Kind classifies a QueryError.
type Kind int

const (
	IllegalCharacter Kind = iota
	UnterminatedStringLiteral
	InvalidSyntax
	ValidationError
	IllegalFunction
	RuntimeError
)

var kindNames = [...]string{
	IllegalCharacter:          "IllegalCharacter",
	UnterminatedStringLiteral: "UnterminatedStringLiteral",
	InvalidSyntax:             "InvalidSyntax",
	ValidationError:           "ValidationError",
	IllegalFunction:           "IllegalFunction",
	RuntimeError:              "RuntimeError",
}

// String returns the taxonomy name of k.
func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UnknownError"
}

// Span is a half-open byte-offset range [Start, End) into a query's
// source text. A zero-width span (Start == End) marks a single point,
// used when an error has no meaningful extent (e.g. "unexpected end of
// input").
type Span struct {
	Start int
	End   int
}

// PointSpan returns a zero-width Span at offset pos.
func PointSpan(pos int) Span { return Span{Start: pos, End: pos} }

// QueryError is the error type produced by every stage of query
// compilation and evaluation. It implements error via Error(), which
// renders the same indicator format as Format(false) (no ANSI color),
// suitable for logs; callers that want a colored terminal rendering call
// Format(true) directly.
type QueryError struct {
	Kind    Kind
	Message string
	Source  string
	Span    Span
}

// New constructs a QueryError.
func New(kind Kind, message, source string, span Span) *QueryError {
	return &QueryError{Kind: kind, Message: message, Source: source, Span: span}
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return e.Format(false)
}

// Format renders the error as a kind/message header followed by the
// offending query text with a caret (or a run of carets, for a
// multi-byte span) indicating the error's location, the same shape as
// indicator_string in the implementation this design is ported from.
// When color is true, the caret line is wrapped in ANSI bright-red
// (\033[91m...\033[0m) escapes.
func (e *QueryError) Format(color bool) string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Source != "" {
		sb.WriteByte('\n')
		sb.WriteString(e.Source)
		sb.WriteByte('\n')
		sb.WriteString(indicatorLine(e.Source, e.Span, color))
	}
	return sb.String()
}

// indicatorLine builds the caret line under source for span, copying each
// tab before the span as a tab (every other byte becomes a space) so caret
// columns still line up visually, and
// requiring at least one caret even for a zero-width span.
func indicatorLine(source string, span Span, color bool) string {
	start, end := span.Start, span.End
	if start < 0 {
		start = 0
	}
	if end > len(source) {
		end = len(source)
	}
	if end < start {
		end = start
	}
	width := end - start
	if width == 0 {
		width = 1
	}

	var sb strings.Builder
	for i := 0; i < start && i < len(source); i++ {
		if source[i] == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	carets := strings.Repeat("^", width)
	if color {
		sb.WriteString("\033[91m")
		sb.WriteString(carets)
		sb.WriteString("\033[0m")
	} else {
		sb.WriteString(carets)
	}
	return sb.String()
}

// ConsoleSupportsANSI is a narrow, dependency-free stand-in for the
// terminal-capability check the original source performs before
// defaulting Format's color argument: callers that want that behavior
// can gate on an explicit flag or on os.Getenv("TERM") themselves, since
// detecting terminal capabilities is an application-level policy choice
// this library does not make on a caller's behalf.
func ConsoleSupportsANSI(term string) bool {
	return term != "" && term != "dumb"
}
