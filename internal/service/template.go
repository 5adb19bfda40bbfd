package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/weibaohui/pagecraft/internal/document"
	"github.com/weibaohui/pagecraft/internal/model"
	"github.com/weibaohui/pagecraft/internal/repository"
	"k8s.io/klog/v2"
)

// TemplateDTO 模板列表项
type TemplateDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	NodeCount   int    `json:"node_count"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// TemplateDetailDTO 模板详情（含 arena 形式的文档）
type TemplateDetailDTO struct {
	TemplateDTO
	Document json.RawMessage `json:"document"`
}

// CreateTemplateRequest 创建模板请求
type CreateTemplateRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=100"`
	Description string          `json:"description" binding:"max=500"`
	Document    json.RawMessage `json:"document" binding:"required"`
}

// UpdateTemplateRequest 更新模板请求
type UpdateTemplateRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=100"`
	Description string          `json:"description" binding:"max=500"`
	Document    json.RawMessage `json:"document" binding:"required"`
}

// ValidateTemplateRequest 仅校验不保存
type ValidateTemplateRequest struct {
	Document json.RawMessage `json:"document" binding:"required"`
}

// ValidationDTO 校验结果
type ValidationDTO struct {
	Valid      bool                 `json:"valid"`
	NodeCount  int                  `json:"node_count"`
	Violations []document.Violation `json:"violations"`
}

// TemplateService 模板服务接口
type TemplateService interface {
	List(ctx context.Context) ([]*TemplateDTO, error)
	GetByID(ctx context.Context, id uint) (*TemplateDetailDTO, error)
	Create(ctx context.Context, req CreateTemplateRequest) (*TemplateDetailDTO, error)
	Update(ctx context.Context, id uint, req UpdateTemplateRequest) (*TemplateDetailDTO, error)
	Delete(ctx context.Context, id uint) error
	Validate(ctx context.Context, raw json.RawMessage) (*ValidationDTO, error)
}

type templateService struct {
	templateRepo repository.TemplateRepository
	schemas      document.SchemaSource
}

// NewTemplateService 创建服务实例
func NewTemplateService(templateRepo repository.TemplateRepository, schemas document.SchemaSource) TemplateService {
	return &templateService{templateRepo: templateRepo, schemas: schemas}
}

// List 获取模板列表
func (s *templateService) List(ctx context.Context) ([]*TemplateDTO, error) {
	templates, err := s.templateRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	result := make([]*TemplateDTO, len(templates))
	for i := range templates {
		result[i] = toTemplateDTO(&templates[i])
	}
	return result, nil
}

// GetByID 获取模板详情
func (s *templateService) GetByID(ctx context.Context, id uint) (*TemplateDetailDTO, error) {
	template, err := s.templateRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return toTemplateDetailDTO(template), nil
}

// Create 校验通过后保存模板
func (s *templateService) Create(ctx context.Context, req CreateTemplateRequest) (*TemplateDetailDTO, error) {
	canonical, nodeCount, err := s.prepare(req.Document)
	if err != nil {
		return nil, err
	}

	template := &model.Template{
		Name:        req.Name,
		Description: req.Description,
		Document:    canonical,
		NodeCount:   nodeCount,
	}
	if err := s.templateRepo.Create(template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	klog.V(6).Infof("模板创建成功: templateID=%d, nodes=%d", template.ID, nodeCount)
	return toTemplateDetailDTO(template), nil
}

// Update 更新模板；已有实例保留各自的渲染结果
func (s *templateService) Update(ctx context.Context, id uint, req UpdateTemplateRequest) (*TemplateDetailDTO, error) {
	template, err := s.templateRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	canonical, nodeCount, err := s.prepare(req.Document)
	if err != nil {
		return nil, err
	}

	template.Name = req.Name
	template.Description = req.Description
	template.Document = canonical
	template.NodeCount = nodeCount

	if err := s.templateRepo.Update(template); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	klog.V(6).Infof("模板更新成功: templateID=%d, nodes=%d", template.ID, nodeCount)
	return toTemplateDetailDTO(template), nil
}

// Delete 删除模板及其实例
func (s *templateService) Delete(ctx context.Context, id uint) error {
	if err := s.templateRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("failed to delete template: %w", err)
	}
	klog.V(6).Infof("模板已删除: templateID=%d", id)
	return nil
}

// Validate 校验文档但不保存。文档无法解码时返回 ErrInvalidDocument，结构违规体现在结果中
func (s *templateService) Validate(ctx context.Context, raw json.RawMessage) (*ValidationDTO, error) {
	doc, err := parseDocument(raw)
	if err != nil {
		return nil, err
	}
	result := document.Validate(doc, s.schemas)
	violations := result.Violations
	if violations == nil {
		violations = []document.Violation{}
	}
	return &ValidationDTO{
		Valid:      result.Valid(),
		NodeCount:  result.NodeCount,
		Violations: violations,
	}, nil
}

// prepare 解码并校验文档，返回规范化的 arena JSON
func (s *templateService) prepare(raw json.RawMessage) (string, int, error) {
	doc, err := parseDocument(raw)
	if err != nil {
		return "", 0, err
	}
	if err := document.Validate(doc, s.schemas).Err(); err != nil {
		return "", 0, err
	}
	canonical, err := json.Marshal(doc)
	if err != nil {
		return "", 0, fmt.Errorf("failed to encode document: %w", err)
	}
	return string(canonical), doc.Len(), nil
}

func parseDocument(raw json.RawMessage) (*document.Document, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: document is required", ErrInvalidDocument)
	}
	doc, err := document.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}

// toTemplateDTO 转换为 DTO
func toTemplateDTO(t *model.Template) *TemplateDTO {
	return &TemplateDTO{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		NodeCount:   t.NodeCount,
		CreatedAt:   t.CreatedAt.Format(timeLayout),
		UpdatedAt:   t.UpdatedAt.Format(timeLayout),
	}
}

func toTemplateDetailDTO(t *model.Template) *TemplateDetailDTO {
	return &TemplateDetailDTO{
		TemplateDTO: *toTemplateDTO(t),
		Document:    json.RawMessage(t.Document),
	}
}
