package document

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/weibaohui/pagecraft/internal/component"
	"github.com/weibaohui/pagecraft/internal/datapath"
)

var ErrInvalidTemplate = errors.New("invalid template")

// ViolationKind 结构性违规类型
type ViolationKind string

const (
	KindEmptyDocument      ViolationKind = "empty_document"
	KindEmptyID            ViolationKind = "empty_id"
	KindMissingNode        ViolationKind = "missing_node"
	KindCycle              ViolationKind = "cycle"
	KindSharedNode         ViolationKind = "shared_node"
	KindUnreachable        ViolationKind = "unreachable"
	KindUnknownType        ViolationKind = "unknown_type"
	KindUndeclaredProperty ViolationKind = "undeclared_property"
	KindChildrenNotAllowed ViolationKind = "children_not_allowed"
	KindInvalidBinding     ViolationKind = "invalid_binding"
	KindConstraint         ViolationKind = "constraint_violation"
)

// Violation 一条校验违规
type Violation struct {
	Kind     ViolationKind `json:"kind"`
	NodeID   string        `json:"node_id,omitempty"`
	Property string        `json:"property,omitempty"`
	Message  string        `json:"message"`
}

// SchemaSource 校验所需的 schema 查询能力
type SchemaSource interface {
	Get(componentType string) (component.Schema, error)
}

// ValidationResult 校验结果，包含找到的全部违规
type ValidationResult struct {
	Violations []Violation `json:"violations"`
	NodeCount  int         `json:"node_count"`
}

func (r ValidationResult) Valid() bool {
	return len(r.Violations) == 0
}

// HasKind 是否包含指定类型的违规
func (r ValidationResult) HasKind(kind ViolationKind) bool {
	for _, v := range r.Violations {
		if v.Kind == kind {
			return true
		}
	}
	return false
}

// Err 校验通过返回 nil，否则返回 *InvalidTemplateError
func (r ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return &InvalidTemplateError{Violations: append([]Violation(nil), r.Violations...)}
}

// InvalidTemplateError 携带全部违规的结构错误。
// 含未知组件类型时同时匹配 component.ErrUnknownComponentType。
type InvalidTemplateError struct {
	Violations []Violation
}

func (e *InvalidTemplateError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return fmt.Sprintf("invalid template: %d violation(s): %s", len(e.Violations), strings.Join(msgs, "; "))
}

func (e *InvalidTemplateError) Is(target error) bool {
	switch target {
	case ErrInvalidTemplate:
		return true
	case component.ErrUnknownComponentType:
		return e.has(KindUnknownType)
	case component.ErrPropertyConstraint:
		return e.has(KindConstraint)
	}
	return false
}

func (e *InvalidTemplateError) has(kind ViolationKind) bool {
	return ValidationResult{Violations: e.Violations}.HasKind(kind)
}

// Validate 按前序遍历校验文档，收集所有违规而不是在第一条处停止
func Validate(doc *Document, schemas SchemaSource) ValidationResult {
	v := &validator{doc: doc, schemas: schemas, state: make(map[string]visitState, len(doc.Nodes))}
	v.run()
	return ValidationResult{Violations: v.violations, NodeCount: len(doc.Nodes)}
}

type visitState int

const (
	unseen visitState = iota
	active
	done
)

type validator struct {
	doc        *Document
	schemas    SchemaSource
	state      map[string]visitState
	violations []Violation
}

func (v *validator) add(kind ViolationKind, nodeID, property, format string, args ...any) {
	v.violations = append(v.violations, Violation{
		Kind:     kind,
		NodeID:   nodeID,
		Property: property,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (v *validator) run() {
	if len(v.doc.Roots) == 0 {
		v.add(KindEmptyDocument, "", "", "template has no root nodes")
	}

	type frame struct {
		id   string
		next int
	}
	for _, root := range v.doc.Roots {
		if _, ok := v.doc.Nodes[root]; !ok {
			v.add(KindMissingNode, root, "", "root node %q does not exist", root)
			continue
		}
		if v.state[root] != unseen {
			v.add(KindSharedNode, root, "", "node %q is referenced more than once", root)
			continue
		}
		v.enter(root)
		stack := []frame{{id: root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			node := v.doc.Nodes[top.id]
			if top.next >= len(node.Children) {
				v.state[top.id] = done
				stack = stack[:len(stack)-1]
				continue
			}
			childID := node.Children[top.next]
			top.next++

			if _, ok := v.doc.Nodes[childID]; !ok {
				v.add(KindMissingNode, top.id, "", "node %q references missing child %q", top.id, childID)
				continue
			}
			switch v.state[childID] {
			case active:
				v.add(KindCycle, top.id, "", "node %q creates a cycle through child %q", top.id, childID)
				continue
			case done:
				v.add(KindSharedNode, childID, "", "node %q is referenced more than once", childID)
				continue
			}
			v.enter(childID)
			stack = append(stack, frame{id: childID})
		}
	}

	var orphans []string
	for id := range v.doc.Nodes {
		if v.state[id] == unseen {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		v.add(KindUnreachable, id, "", "node %q is not reachable from any root", id)
	}
}

func (v *validator) enter(id string) {
	v.state[id] = active
	v.checkNode(v.doc.Nodes[id])
}

func (v *validator) checkNode(node *Node) {
	if node.ID == "" {
		v.add(KindEmptyID, "", "", "node of type %q has an empty id", node.Type)
	}
	schema, err := v.schemas.Get(node.Type)
	if err != nil {
		v.add(KindUnknownType, node.ID, "", "node %q has unknown component type %q", node.ID, node.Type)
		return
	}

	keys := make([]string, 0, len(node.Properties))
	for k := range node.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, declared := schema.Property(k); !declared {
			v.add(KindUndeclaredProperty, node.ID, k, "node %q: property %q is not declared on %q", node.ID, k, node.Type)
			continue
		}
		value := node.Properties[k]
		if value.IsBinding() {
			if _, err := datapath.Parse(value.Path()); err != nil {
				v.add(KindInvalidBinding, node.ID, k, "node %q: property %q: %v", node.ID, k, err)
			}
			continue
		}
		if err := component.CheckLiteral(schema, k, value.Literal()); err != nil {
			v.add(KindConstraint, node.ID, k, "node %q: %v", node.ID, err)
		}
	}

	if len(node.Children) > 0 && !schema.IsContainer() {
		v.add(KindChildrenNotAllowed, node.ID, "", "node %q: %q components cannot have children", node.ID, node.Type)
	}
}
