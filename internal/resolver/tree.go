package resolver

import "github.com/weibaohui/pagecraft/internal/component"

// VisualNode 解析后的节点，与模板节点一一对应
type VisualNode struct {
	ID       string                 `json:"id"`
	Type     string                 `json:"type"`
	Output   component.VisualOutput `json:"output"`
	Children []*VisualNode          `json:"children,omitempty"`
}

// VisualTree 解析结果
type VisualTree struct {
	Roots []*VisualNode `json:"roots"`
}

// Count 节点总数
func (t *VisualTree) Count() int {
	n := 0
	t.Walk(func(*VisualNode, int) {
		n++
	})
	return n
}

// Find 按 id 查找节点
func (t *VisualTree) Find(id string) *VisualNode {
	var found *VisualNode
	t.Walk(func(n *VisualNode, _ int) {
		if found == nil && n.ID == id {
			found = n
		}
	})
	return found
}

// Walk 前序遍历
func (t *VisualTree) Walk(fn func(n *VisualNode, depth int)) {
	type frame struct {
		node  *VisualNode
		depth int
	}
	stack := make([]frame, 0, len(t.Roots))
	for i := len(t.Roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: t.Roots[i]})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(f.node, f.depth)
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.Children[i], depth: f.depth + 1})
		}
	}
}
