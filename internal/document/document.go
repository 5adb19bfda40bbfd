// Package document 模板文档模型。
//
// 节点以扁平的 arena 存储（按 id 索引），子节点通过 id 引用；
// 遍历始终是深度优先前序，子节点按声明顺序访问。
package document

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrNodeNotFound  = errors.New("node not found")
	ErrCycle         = errors.New("node graph contains a cycle")
)

// Node 模板中的一个组件节点
type Node struct {
	ID         string           `json:"-"`
	Type       string           `json:"type"`
	Properties map[string]Value `json:"properties,omitempty"`
	Children   []string         `json:"children,omitempty"`
}

// Document 模板文档：根节点序列 + 节点 arena
type Document struct {
	Roots []string         `json:"roots"`
	Nodes map[string]*Node `json:"nodes"`
}

// New 创建空文档
func New() *Document {
	return &Document{Nodes: make(map[string]*Node)}
}

// AddRoot 追加根节点
func (d *Document) AddRoot(node Node) error {
	if err := d.put(node); err != nil {
		return err
	}
	d.Roots = append(d.Roots, node.ID)
	return nil
}

// AddChild 在父节点下追加子节点
func (d *Document) AddChild(parentID string, node Node) error {
	parent, ok := d.Nodes[parentID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, parentID)
	}
	if err := d.put(node); err != nil {
		return err
	}
	parent.Children = append(parent.Children, node.ID)
	return nil
}

func (d *Document) put(node Node) error {
	if node.ID == "" {
		return fmt.Errorf("node id is required")
	}
	if _, exists := d.Nodes[node.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, node.ID)
	}
	if d.Nodes == nil {
		d.Nodes = make(map[string]*Node)
	}
	n := node
	d.Nodes[n.ID] = &n
	return nil
}

// Node 按 id 获取节点
func (d *Document) Node(id string) (*Node, bool) {
	n, ok := d.Nodes[id]
	return n, ok
}

// Len 节点数量
func (d *Document) Len() int {
	return len(d.Nodes)
}

// Walk 深度优先前序遍历，fn 返回错误时中止。
// 遇到缺失的子节点返回 ErrNodeNotFound，遇到重复访问返回 ErrCycle，
// 因此对未校验的文档遍历也一定会终止。
func (d *Document) Walk(fn func(node *Node, depth int) error) error {
	type frame struct {
		id    string
		depth int
	}
	visited := make(map[string]bool, len(d.Nodes))
	stack := make([]frame, 0, len(d.Roots))
	for i := len(d.Roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{id: d.Roots[i]})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node, ok := d.Nodes[f.id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrNodeNotFound, f.id)
		}
		if visited[f.id] {
			return fmt.Errorf("%w: node %s reached twice", ErrCycle, f.id)
		}
		visited[f.id] = true

		if err := fn(node, f.depth); err != nil {
			return err
		}
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: node.Children[i], depth: f.depth + 1})
		}
	}
	return nil
}

// Clone 深拷贝文档
func (d *Document) Clone() *Document {
	out := &Document{
		Roots: append([]string(nil), d.Roots...),
		Nodes: make(map[string]*Node, len(d.Nodes)),
	}
	for id, n := range d.Nodes {
		c := *n
		c.Children = append([]string(nil), n.Children...)
		if n.Properties != nil {
			c.Properties = make(map[string]Value, len(n.Properties))
			for k, v := range n.Properties {
				c.Properties[k] = v
			}
		}
		out.Nodes[id] = &c
	}
	return out
}
