package document

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrMalformedDocument = errors.New("malformed template document")

// TreeNode 嵌套形式的节点，便于客户端提交
type TreeNode struct {
	ID         string           `json:"id,omitempty"`
	Type       string           `json:"type"`
	Properties map[string]Value `json:"properties,omitempty"`
	Children   []TreeNode       `json:"children,omitempty"`
}

// UnmarshalJSON 解码 arena 形式，并用 map 键回填节点 id
func (d *Document) UnmarshalJSON(data []byte) error {
	var wire struct {
		Roots []string         `json:"roots"`
		Nodes map[string]*Node `json:"nodes"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Nodes == nil {
		wire.Nodes = make(map[string]*Node)
	}
	for id, n := range wire.Nodes {
		if n == nil {
			return fmt.Errorf("%w: node %q is null", ErrMalformedDocument, id)
		}
		n.ID = id
	}
	d.Roots = wire.Roots
	d.Nodes = wire.Nodes
	return nil
}

// Parse 解码模板文档，接受两种形式：
//
//	{"roots": [...], "nodes": {id: {...}}}
//	{"tree": [{"id": ..., "type": ..., "children": [...]}]}
//
// 嵌套形式中缺省的 id 会自动生成。
func Parse(raw []byte) (*Document, error) {
	return ParseWithIDs(raw, uuid.NewString)
}

// ParseWithIDs 同 Parse，使用指定的 id 生成函数
func ParseWithIDs(raw []byte, newID func() string) (*Document, error) {
	var envelope struct {
		Tree []TreeNode `json:"tree"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if envelope.Tree != nil {
		return FromTree(envelope.Tree, newID)
	}

	doc := New()
	if err := json.Unmarshal(raw, doc); err != nil {
		if errors.Is(err, ErrMalformedDocument) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return doc, nil
}

// FromTree 将嵌套节点转换为 arena 文档
func FromTree(roots []TreeNode, newID func() string) (*Document, error) {
	if newID == nil {
		newID = uuid.NewString
	}
	type item struct {
		node   *TreeNode
		parent string
	}
	doc := New()
	stack := make([]item, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, item{node: &roots[i]})
	}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id := it.node.ID
		if id == "" {
			id = newID()
		}
		n := Node{ID: id, Type: it.node.Type, Properties: it.node.Properties}
		var err error
		if it.parent == "" {
			err = doc.AddRoot(n)
		} else {
			err = doc.AddChild(it.parent, n)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		}
		for i := len(it.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{node: &it.node.Children[i], parent: id})
		}
	}
	return doc, nil
}

// Tree 返回嵌套形式，文档存在环或缺失节点时返回错误
func (d *Document) Tree() ([]TreeNode, error) {
	var order []*Node
	if err := d.Walk(func(n *Node, _ int) error {
		order = append(order, n)
		return nil
	}); err != nil {
		return nil, err
	}
	// 逆前序处理，保证子节点先于父节点构建
	built := make(map[string]TreeNode, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		t := TreeNode{ID: n.ID, Type: n.Type, Properties: n.Properties}
		for _, c := range n.Children {
			t.Children = append(t.Children, built[c])
			delete(built, c)
		}
		built[n.ID] = t
	}
	out := make([]TreeNode, 0, len(d.Roots))
	for _, r := range d.Roots {
		out = append(out, built[r])
	}
	return out, nil
}
