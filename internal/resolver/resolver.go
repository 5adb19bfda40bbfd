// Package resolver 将模板文档与数据合并，生成可展示的视觉树。
//
// 解析分三步：校验文档结构；按前序一次性解析全部数据绑定；
// 数据就绪后再逐节点调用渲染器。任一步失败都不产生部分结果。
package resolver

import (
	"errors"
	"sort"

	"github.com/weibaohui/pagecraft/internal/component"
	"github.com/weibaohui/pagecraft/internal/datapath"
	"github.com/weibaohui/pagecraft/internal/document"
)

// Registry 解析所需的组件能力
type Registry interface {
	document.SchemaSource
	Render(componentType string, raw map[string]any) (component.VisualOutput, error)
}

// Resolver 无状态，可被多个 goroutine 同时使用
type Resolver struct {
	registry Registry
}

func New(registry Registry) *Resolver {
	return &Resolver{registry: registry}
}

type boundNode struct {
	node  *document.Node
	props map[string]any
}

// Resolve 解析模板，不修改输入文档和数据
func (r *Resolver) Resolve(doc *document.Document, data any) (*VisualTree, error) {
	if err := document.Validate(doc, r.registry).Err(); err != nil {
		return nil, &ResolutionError{Kind: KindInvalidTemplate, Err: err}
	}

	bound, err := r.bind(doc, data)
	if err != nil {
		return nil, err
	}

	outputs := make(map[string]*VisualNode, len(bound))
	for _, b := range bound {
		out, err := r.registry.Render(b.node.Type, b.props)
		if err != nil {
			var cv *component.ConstraintViolationError
			if errors.As(err, &cv) {
				return nil, &ResolutionError{Kind: KindConstraintViolation, NodeID: b.node.ID, Property: cv.Property, Err: err}
			}
			return nil, &ResolutionError{Kind: KindRenderFailed, NodeID: b.node.ID, Err: err}
		}
		outputs[b.node.ID] = &VisualNode{ID: b.node.ID, Type: b.node.Type, Output: out}
	}

	for _, b := range bound {
		vn := outputs[b.node.ID]
		if len(b.node.Children) == 0 {
			continue
		}
		vn.Children = make([]*VisualNode, 0, len(b.node.Children))
		for _, c := range b.node.Children {
			vn.Children = append(vn.Children, outputs[c])
		}
	}

	tree := &VisualTree{Roots: make([]*VisualNode, 0, len(doc.Roots))}
	for _, id := range doc.Roots {
		tree.Roots = append(tree.Roots, outputs[id])
	}
	return tree, nil
}

// bind 前序遍历并替换全部绑定引用，遇到第一个未绑定的引用即中止
func (r *Resolver) bind(doc *document.Document, data any) ([]boundNode, error) {
	bound := make([]boundNode, 0, doc.Len())
	err := doc.Walk(func(n *document.Node, _ int) error {
		props := make(map[string]any, len(n.Properties))
		keys := make([]string, 0, len(n.Properties))
		for k := range n.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := n.Properties[k]
			if !v.IsBinding() {
				props[k] = v.Literal()
				continue
			}
			value, ok, err := datapath.Get(data, v.Path())
			if err != nil {
				return &ResolutionError{Kind: KindInvalidTemplate, NodeID: n.ID, Property: k, Path: v.Path(), Err: err}
			}
			if !ok {
				return &ResolutionError{Kind: KindUnboundReference, NodeID: n.ID, Property: k, Path: v.Path(), Err: ErrUnboundReference}
			}
			props[k] = value
		}
		bound = append(bound, boundNode{node: n, props: props})
		return nil
	})
	if err != nil {
		var re *ResolutionError
		if errors.As(err, &re) {
			return nil, re
		}
		return nil, &ResolutionError{Kind: KindInvalidTemplate, Err: err}
	}
	return bound, nil
}
