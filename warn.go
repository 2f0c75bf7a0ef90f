package jsonpath

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/rlross/jsonpath/internal/ast"
	"github.com/rlross/jsonpath/internal/path"
)

// WarnKind classifies a non-fatal condition raised during evaluation.
type WarnKind = ast.WarnKind

const (
	// WarnCycleDetected is raised when descendant traversal would re-enter
	// a container it is already inside of. Deep equality does not track
	// visited containers; it is bounded by the max depth alone.
	WarnCycleDetected = ast.WarnCycleDetected
	// WarnMaxDepthExceeded is raised when traversal or comparison would
	// exceed a Path's configured max depth.
	WarnMaxDepthExceeded = ast.WarnMaxDepthExceeded
)

// Warning is a non-fatal condition raised while evaluating a query: a
// detected reference cycle, or traversal/comparison hitting the
// configured max depth. The CORE never logs on its own (spec.md §6);
// instead it emits Warning values to the Parser's configured WarnSink.
type Warning struct {
	Kind    WarnKind
	Path    string // normalized path string at which the warning was raised
	Detail  string
	TraceID string // uuid.NewString(), unique per Select/SelectLocated call
}

// WarnSink receives warnings raised while evaluating a query. Implementations
// must be safe for concurrent use if the owning Parser/Path is used concurrently.
type WarnSink interface {
	Warn(w Warning)
}

// NopSink discards all warnings. It is the zero value used when a Parser
// is not configured with WithWarnSink.
type NopSink struct{}

// Warn implements WarnSink by doing nothing.
func (NopSink) Warn(Warning) {}

// sinkAdapter adapts a root-level WarnSink to the ast.Warner interface
// internal/ast evaluates against, attaching a single TraceID to every
// warning raised during one Select/SelectLocated call so a consumer can
// correlate multiple warnings (e.g. cycle then depth) from the same call.
type sinkAdapter struct {
	sink    WarnSink
	traceID string
}

func newSinkAdapter(sink WarnSink) *sinkAdapter {
	if sink == nil {
		sink = NopSink{}
	}
	return &sinkAdapter{sink: sink, traceID: uuid.NewString()}
}

func (a *sinkAdapter) Warn(kind ast.WarnKind, at path.NormalizedPath, detail string) {
	a.sink.Warn(Warning{
		Kind:    kind,
		Path:    at.String(),
		Detail:  detail,
		TraceID: a.traceID,
	})
}

// SlogSink adapts a *slog.Logger into a WarnSink, logging each warning at
// Warn level. This is a convenience bridge only — the CORE itself never
// depends on log/slog or any other logging transport (spec.md §6); a
// caller who wants warnings on a real logger wires this in explicitly.
type SlogSink struct {
	Logger *slog.Logger
}

// Warn implements WarnSink by logging w via s.Logger, or the default
// logger if s.Logger is nil.
func (s SlogSink) Warn(w Warning) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("jsonpath: evaluation warning",
		slog.String("kind", w.Kind.String()),
		slog.String("path", w.Path),
		slog.String("detail", w.Detail),
		slog.String("trace_id", w.TraceID),
	)
}
