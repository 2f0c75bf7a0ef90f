package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlross/jsonpath/internal/path"
	"github.com/rlross/jsonpath/internal/value"
)

func TestSegment_IsSingular(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.True(Child(NameSelector("x")).IsSingular())
	a.True(Child(IndexSelector(0)).IsSingular())
	a.False(Child(NameSelector("x"), NameSelector("y")).IsSingular())
	a.False(Child(WildcardSelector()).IsSingular())
	a.False(Descendant(NameSelector("x")).IsSingular())
}

func TestSegment_String(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.Equal(`["a"]`, Child(NameSelector("a")).String())
	a.Equal(`..["a"]`, Descendant(NameSelector("a")).String())
	a.Equal(`["a",0]`, Child(NameSelector("a"), IndexSelector(0)).String())
}

func TestSegment_Apply_Child(t *testing.T) {
	t.Parallel()

	obj := value.NewObject()
	obj.Set("a", value.IntValue(1))
	obj.Set("b", value.IntValue(2))

	seg := Child(NameSelector("a"))
	ctx := NewEvalContext(obj, 0, nil)
	out := seg.Apply(ctx, []value.Value{obj})
	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].Int())
}

func TestSegment_Apply_EmptyInput(t *testing.T) {
	t.Parallel()

	seg := Child(WildcardSelector())
	ctx := NewEvalContext(value.NullValue(), 0, nil)
	out := seg.Apply(ctx, nil)
	assert.Empty(t, out)
}

func TestSegment_Apply_Descendant_VisitsSelfThenDescendantsInOrder(t *testing.T) {
	t.Parallel()

	inner := value.NewObject()
	inner.Set("x", value.IntValue(1))
	root := value.NewArray(inner, value.IntValue(2))

	seg := Descendant(WildcardSelector())
	ctx := NewEvalContext(root, 0, nil)
	out := seg.Apply(ctx, []value.Value{root})

	// root's elements, then inner's member, in document order.
	require.Len(t, out, 3)
	assert.Equal(t, inner, out[0])
	assert.Equal(t, int64(2), out[1].Int())
	assert.Equal(t, int64(1), out[2].Int())
}

func TestSegment_Apply_Descendant_CycleDetection(t *testing.T) {
	t.Parallel()

	cyclic := value.NewArray()
	cyclic.Append(cyclic)

	var warned []WarnKind
	sink := warnFunc(func(kind WarnKind, at path.NormalizedPath, detail string) {
		warned = append(warned, kind)
	})

	seg := Descendant(WildcardSelector())
	ctx := NewEvalContext(cyclic, 0, sink)

	require.NotPanics(t, func() {
		seg.Apply(ctx, []value.Value{cyclic})
	})
	assert.Contains(t, warned, WarnCycleDetected)
}

func TestSegment_Apply_Descendant_MaxDepth(t *testing.T) {
	t.Parallel()

	// Build a deeply nested chain longer than maxDepth.
	leaf := value.IntValue(1)
	nested := value.NewArray(leaf)
	for i := 0; i < 5; i++ {
		nested = value.NewArray(nested)
	}

	var warned []WarnKind
	sink := warnFunc(func(kind WarnKind, at path.NormalizedPath, detail string) {
		warned = append(warned, kind)
	})

	seg := Descendant(WildcardSelector())
	ctx := NewEvalContext(nested, 2, sink)
	seg.Apply(ctx, []value.Value{nested})

	assert.Contains(t, warned, WarnMaxDepthExceeded)
}

func TestSegment_ApplyLocated_TracksPaths(t *testing.T) {
	t.Parallel()

	obj := value.NewObject()
	obj.Set("a", value.IntValue(1))
	root := value.NewArray(obj)

	seg := Descendant(WildcardSelector())
	ctx := NewEvalContext(root, 0, nil)
	out := seg.ApplyLocated(ctx, []path.LocatedNode{{Path: path.Root(), Value: root}})

	require.Len(t, out, 2)
	assert.Equal(t, "$[0]", out[0].Path.String())
	assert.Equal(t, "$[0]['a']", out[1].Path.String())
}

// warnFunc adapts a plain function to the Warner interface for tests.
type warnFunc func(kind WarnKind, at path.NormalizedPath, detail string)

func (f warnFunc) Warn(kind WarnKind, at path.NormalizedPath, detail string) { f(kind, at, detail) }
