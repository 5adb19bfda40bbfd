package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weibaohui/pagecraft/internal/component"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
}

func sampleDocument(t *testing.T) *Document {
	t.Helper()
	doc := New()
	require.NoError(t, doc.AddRoot(Node{ID: "root", Type: "container"}))
	require.NoError(t, doc.AddChild("root", Node{ID: "title", Type: "heading", Properties: map[string]Value{
		"content": Bind("title"),
		"level":   Literal(2.0),
	}}))
	require.NoError(t, doc.AddChild("root", Node{ID: "body", Type: "container"}))
	require.NoError(t, doc.AddChild("body", Node{ID: "logo", Type: "image"}))
	require.NoError(t, doc.AddChild("root", Node{ID: "line", Type: "divider"}))
	return doc
}

func TestValueJSONRoundTrip(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`{"$bind":"user.name"}`), &v))
	assert.True(t, v.IsBinding())
	assert.Equal(t, "user.name", v.Path())

	require.NoError(t, json.Unmarshal([]byte(`{"$bind":"a","other":1}`), &v))
	assert.False(t, v.IsBinding())

	require.NoError(t, json.Unmarshal([]byte(`12`), &v))
	assert.Equal(t, 12.0, v.Literal())

	out, err := json.Marshal(Bind("x[0]"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"$bind":"x[0]"}`, string(out))
}

func TestWalkIsPreOrder(t *testing.T) {
	doc := sampleDocument(t)
	var ids []string
	var depths []int
	require.NoError(t, doc.Walk(func(n *Node, depth int) error {
		ids = append(ids, n.ID)
		depths = append(depths, depth)
		return nil
	}))
	assert.Equal(t, []string{"root", "title", "body", "logo", "line"}, ids)
	assert.Equal(t, []int{0, 1, 1, 2, 1}, depths)
}

func TestWalkStopsOnCycle(t *testing.T) {
	doc := sampleDocument(t)
	doc.Nodes["body"].Children = append(doc.Nodes["body"].Children, "root")
	err := doc.Walk(func(*Node, int) error { return nil })
	assert.True(t, errors.Is(err, ErrCycle))
}

func TestAddRejectsDuplicates(t *testing.T) {
	doc := sampleDocument(t)
	err := doc.AddChild("root", Node{ID: "logo", Type: "image"})
	assert.True(t, errors.Is(err, ErrDuplicateNode))
	err = doc.AddChild("nope", Node{ID: "x", Type: "image"})
	assert.True(t, errors.Is(err, ErrNodeNotFound))
}

func TestParseArenaForm(t *testing.T) {
	raw := []byte(`{"roots":["r"],"nodes":{"r":{"type":"container","children":["h"]},"h":{"type":"heading","properties":{"content":{"$bind":"title"}}}}}`)
	doc, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"r"}, doc.Roots)
	assert.Equal(t, "h", doc.Nodes["h"].ID)
	assert.True(t, doc.Nodes["h"].Properties["content"].IsBinding())
}

func TestParseTreeFormAssignsIDs(t *testing.T) {
	raw := []byte(`{"tree":[{"type":"container","children":[{"id":"h","type":"heading"},{"type":"divider"}]}]}`)
	doc, err := ParseWithIDs(raw, sequentialIDs())
	require.NoError(t, err)
	assert.Equal(t, []string{"gen-1"}, doc.Roots)
	assert.Equal(t, []string{"h", "gen-2"}, doc.Nodes["gen-1"].Children)
}

func TestParseMalformed(t *testing.T) {
	for _, raw := range []string{`not json`, `{"nodes":{"a":null}}`, `{"tree":[{"id":"a"},{"id":"a"}]}`} {
		_, err := Parse([]byte(raw))
		assert.True(t, errors.Is(err, ErrMalformedDocument), raw)
	}
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	doc := sampleDocument(t)
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	back, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, doc.Roots, back.Roots)
	assert.Equal(t, doc.Len(), back.Len())

	again, err := json.Marshal(back)
	require.NoError(t, err)
	assert.Equal(t, string(raw), string(again))
}

func TestTreeRoundTrip(t *testing.T) {
	doc := sampleDocument(t)
	tree, err := doc.Tree()
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 3)
	assert.Equal(t, "logo", tree[0].Children[1].Children[0].ID)

	back, err := FromTree(tree, nil)
	require.NoError(t, err)
	assert.Equal(t, doc.Nodes["root"].Children, back.Nodes["root"].Children)
}

func TestCloneIsIndependent(t *testing.T) {
	doc := sampleDocument(t)
	c := doc.Clone()
	c.Nodes["root"].Children[0] = "changed"
	c.Nodes["title"].Properties["level"] = Literal(6.0)
	assert.Equal(t, "title", doc.Nodes["root"].Children[0])
	assert.Equal(t, 2.0, doc.Nodes["title"].Properties["level"].Literal())
}

func TestValidateAcceptsValidDocument(t *testing.T) {
	res := Validate(sampleDocument(t), component.Default())
	assert.True(t, res.Valid(), "%v", res.Violations)
	assert.NoError(t, res.Err())
	assert.Equal(t, 5, res.NodeCount)
}
