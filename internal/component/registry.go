package component

import (
	"fmt"
	"sync"
)

// Registry 组件 schema 目录，构造完成后只读，可被并发访问
type Registry struct {
	schemas    []Schema
	index      map[string]int
	renderers  map[string]Renderer
	categories []string
}

// NewRegistry 按声明顺序构建注册表，类型重复或渲染器缺失时返回错误
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		schemas:   make([]Schema, 0, len(defs)),
		index:     make(map[string]int, len(defs)),
		renderers: make(map[string]Renderer, len(defs)),
	}
	seenCategory := make(map[string]bool)
	for _, def := range defs {
		t := def.Schema.Type
		if t == "" {
			return nil, fmt.Errorf("component type is required")
		}
		if _, exists := r.index[t]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateType, t)
		}
		if def.Renderer == nil {
			return nil, fmt.Errorf("renderer for %q is nil", t)
		}
		r.index[t] = len(r.schemas)
		r.schemas = append(r.schemas, def.Schema.clone())
		r.renderers[t] = def.Renderer
		if !seenCategory[def.Schema.Category] {
			seenCategory[def.Schema.Category] = true
			r.categories = append(r.categories, def.Schema.Category)
		}
	}
	return r, nil
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default 返回内置组件注册表（进程级单例）
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := NewRegistry(Builtins()...)
		if err != nil {
			panic(fmt.Sprintf("component: invalid builtin registry: %v", err))
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

// List 按声明顺序返回全部 schema
func (r *Registry) List() []Schema {
	out := make([]Schema, len(r.schemas))
	for i, s := range r.schemas {
		out[i] = s.clone()
	}
	return out
}

// ListByCategory 返回指定分类下的 schema，未知分类返回空切片
func (r *Registry) ListByCategory(category string) []Schema {
	out := make([]Schema, 0)
	for _, s := range r.schemas {
		if s.Category == category {
			out = append(out, s.clone())
		}
	}
	return out
}

// ListCategories 按首次出现顺序返回去重后的分类
func (r *Registry) ListCategories() []string {
	return append([]string(nil), r.categories...)
}

// Get 获取组件 schema
func (r *Registry) Get(componentType string) (Schema, error) {
	i, ok := r.index[componentType]
	if !ok {
		return Schema{}, &UnknownTypeError{Type: componentType}
	}
	return r.schemas[i].clone(), nil
}

// Has 判断类型是否已注册
func (r *Registry) Has(componentType string) bool {
	_, ok := r.index[componentType]
	return ok
}

// Render 补齐默认值、执行约束后调用对应渲染器
func (r *Registry) Render(componentType string, raw map[string]any) (VisualOutput, error) {
	i, ok := r.index[componentType]
	if !ok {
		return VisualOutput{}, &UnknownTypeError{Type: componentType}
	}
	props, err := Normalize(r.schemas[i], raw)
	if err != nil {
		return VisualOutput{}, err
	}
	return r.renderers[componentType].Render(props)
}
