package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weibaohui/pagecraft/internal/component"
)

func kinds(res ValidationResult) []ViolationKind {
	out := make([]ViolationKind, 0, len(res.Violations))
	for _, v := range res.Violations {
		out = append(out, v.Kind)
	}
	return out
}

func TestValidateUnknownType(t *testing.T) {
	doc := New()
	require.NoError(t, doc.AddRoot(Node{ID: "root", Type: "container"}))
	require.NoError(t, doc.AddChild("root", Node{ID: "c", Type: "carousel"}))

	res := Validate(doc, component.Default())
	require.False(t, res.Valid())
	assert.Equal(t, []ViolationKind{KindUnknownType}, kinds(res))
	assert.Equal(t, "c", res.Violations[0].NodeID)

	err := res.Err()
	assert.True(t, errors.Is(err, ErrInvalidTemplate))
	assert.True(t, errors.Is(err, component.ErrUnknownComponentType))
	assert.False(t, errors.Is(err, component.ErrPropertyConstraint))
}

func TestValidateCollectsAllViolations(t *testing.T) {
	doc := New()
	require.NoError(t, doc.AddRoot(Node{ID: "root", Type: "container", Properties: map[string]Value{
		"colour": Literal("red"),
	}}))
	require.NoError(t, doc.AddChild("root", Node{ID: "h", Type: "heading", Properties: map[string]Value{
		"content": Bind("a..b"),
	}}))
	require.NoError(t, doc.AddChild("root", Node{ID: "qr", Type: "qrcode", Properties: map[string]Value{
		"error_level": Literal("Z"),
	}}))
	require.NoError(t, doc.AddChild("h", Node{ID: "inner", Type: "divider"}))
	doc.Nodes["loose"] = &Node{ID: "loose", Type: "image"}
	doc.Nodes["root"].Children = append(doc.Nodes["root"].Children, "ghost")

	res := Validate(doc, component.Default())
	assert.Equal(t, []ViolationKind{
		KindUndeclaredProperty,
		KindInvalidBinding,
		KindChildrenNotAllowed,
		KindConstraint,
		KindMissingNode,
		KindUnreachable,
	}, kinds(res))
	assert.True(t, errors.Is(res.Err(), component.ErrPropertyConstraint))
}

func TestValidateDetectsCycleAndSharing(t *testing.T) {
	doc := New()
	require.NoError(t, doc.AddRoot(Node{ID: "a", Type: "container"}))
	require.NoError(t, doc.AddChild("a", Node{ID: "b", Type: "container"}))
	require.NoError(t, doc.AddChild("b", Node{ID: "c", Type: "heading"}))
	doc.Nodes["b"].Children = append(doc.Nodes["b"].Children, "a")
	doc.Nodes["a"].Children = append(doc.Nodes["a"].Children, "c")
	doc.Roots = append(doc.Roots, "c")

	res := Validate(doc, component.Default())
	assert.Equal(t, []ViolationKind{KindCycle, KindSharedNode, KindSharedNode}, kinds(res))
}

func TestValidateEmptyDocument(t *testing.T) {
	res := Validate(New(), component.Default())
	assert.Equal(t, []ViolationKind{KindEmptyDocument}, kinds(res))
}

func TestValidateMissingRoot(t *testing.T) {
	doc := New()
	doc.Roots = []string{"nope"}
	res := Validate(doc, component.Default())
	assert.Equal(t, []ViolationKind{KindMissingNode}, kinds(res))
}
