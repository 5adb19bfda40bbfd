package service

import (
	"context"

	"github.com/weibaohui/pagecraft/internal/component"
)

// ComponentService 组件目录查询，直接透传注册表
type ComponentService interface {
	List(ctx context.Context) []component.Schema
	ListByCategory(ctx context.Context, category string) []component.Schema
	ListCategories(ctx context.Context) []string
	Get(ctx context.Context, componentType string) (component.Schema, error)
}

type componentService struct {
	registry *component.Registry
}

func NewComponentService(registry *component.Registry) ComponentService {
	return &componentService{registry: registry}
}

func (s *componentService) List(ctx context.Context) []component.Schema {
	return s.registry.List()
}

func (s *componentService) ListByCategory(ctx context.Context, category string) []component.Schema {
	return s.registry.ListByCategory(category)
}

func (s *componentService) ListCategories(ctx context.Context) []string {
	return s.registry.ListCategories()
}

func (s *componentService) Get(ctx context.Context, componentType string) (component.Schema, error) {
	return s.registry.Get(componentType)
}
