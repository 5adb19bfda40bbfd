package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/weibaohui/pagecraft/config"
	"github.com/weibaohui/pagecraft/internal/document"
	"github.com/weibaohui/pagecraft/internal/eventbus"
	"github.com/weibaohui/pagecraft/internal/model"
	"github.com/weibaohui/pagecraft/internal/pkg/cachemanager"
	"github.com/weibaohui/pagecraft/internal/repository"
	"github.com/weibaohui/pagecraft/internal/resolver"
	"github.com/weibaohui/pagecraft/internal/service/statemachine"
	"github.com/weibaohui/pagecraft/internal/subscriber"
	"k8s.io/klog/v2"
)

const maxErrorMsgLen = 2000

// InstanceErrorDTO 失败实例的诊断信息
type InstanceErrorDTO struct {
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	NodeID   string `json:"node_id,omitempty"`
	Property string `json:"property,omitempty"`
}

// InstanceDTO 模板实例
type InstanceDTO struct {
	ID             uint              `json:"id"`
	RenderID       string            `json:"render_id"`
	TemplateID     uint              `json:"template_id"`
	Status         string            `json:"status"`
	Data           json.RawMessage   `json:"data"`
	RenderedOutput json.RawMessage   `json:"rendered_output,omitempty"`
	Error          *InstanceErrorDTO `json:"error,omitempty"`
	CreatedAt      string            `json:"created_at"`
	UpdatedAt      string            `json:"updated_at"`
}

// RenderRequest 渲染请求
type RenderRequest struct {
	Data json.RawMessage `json:"data"`
}

// InstanceStatsDTO 实例统计
type InstanceStatsDTO struct {
	ByStatus map[string]int64         `json:"by_status"`
	Events   *subscriber.InstanceStats `json:"events,omitempty"`
}

// StatsSource 进程内渲染事件统计
type StatsSource interface {
	Stats() subscriber.InstanceStats
}

// InstanceService 实例服务接口
type InstanceService interface {
	// Render 创建新实例并解析。解析失败时同时返回已落库的 error 实例和 *resolver.ResolutionError
	Render(ctx context.Context, templateID uint, data json.RawMessage) (*InstanceDTO, error)
	Get(ctx context.Context, id uint) (*InstanceDTO, error)
	ListByTemplate(ctx context.Context, templateID uint) ([]*InstanceDTO, error)
	Stats(ctx context.Context) (*InstanceStatsDTO, error)
}

type instanceService struct {
	cfg          config.RenderConfig
	templateRepo repository.TemplateRepository
	instanceRepo repository.InstanceRepository
	resolver     *resolver.Resolver
	stateMachine *statemachine.InstanceStateMachine
	cache        cachemanager.CacheManager[[]byte]
	bus          *eventbus.InstanceEventBus
	stats        StatsSource
}

// NewInstanceService 创建实例服务，cache/bus/stats 可为 nil
func NewInstanceService(
	cfg config.RenderConfig,
	templateRepo repository.TemplateRepository,
	instanceRepo repository.InstanceRepository,
	registry resolver.Registry,
	cache cachemanager.CacheManager[[]byte],
	bus *eventbus.InstanceEventBus,
	stats StatsSource,
) InstanceService {
	if !cfg.CacheEnabled {
		cache = nil
	}
	return &instanceService{
		cfg:          cfg,
		templateRepo: templateRepo,
		instanceRepo: instanceRepo,
		resolver:     resolver.New(registry),
		stateMachine: statemachine.NewInstanceStateMachine(),
		cache:        cache,
		bus:          bus,
		stats:        stats,
	}
}

// Render 每次调用都生成新实例，终态实例不会被重新解析
func (s *instanceService) Render(ctx context.Context, templateID uint, data json.RawMessage) (*InstanceDTO, error) {
	template, err := s.templateRepo.GetByID(templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	payload, canonicalData, err := decodeData(data)
	if err != nil {
		return nil, err
	}

	instance := &model.TemplateInstance{
		RenderID:   uuid.NewString(),
		TemplateID: template.ID,
		Data:       canonicalData,
		Status:     string(statemachine.InstanceStatusPending),
	}
	if err := s.instanceRepo.Create(instance); err != nil {
		return nil, fmt.Errorf("failed to create instance: %w", err)
	}

	start := time.Now()
	output, cacheHit, resErr := s.resolve(ctx, template, payload, canonicalData)

	to := statemachine.InstanceStatusRendered
	if resErr != nil {
		to = statemachine.InstanceStatusError
	}
	if err := s.stateMachine.Transition(statemachine.InstanceStatus(instance.Status), to, instance.ID); err != nil {
		return nil, err
	}

	instance.Status = string(to)
	if resErr != nil {
		applyResolutionError(instance, resErr)
	} else {
		instance.RenderedOutput = string(output)
	}
	if err := s.instanceRepo.Save(instance); err != nil {
		return nil, fmt.Errorf("failed to save instance: %w", err)
	}

	klog.V(6).Infof("实例解析结束: instanceID=%d, templateID=%d, status=%s, cacheHit=%t, cost=%v",
		instance.ID, template.ID, instance.Status, cacheHit, time.Since(start))
	s.publish(ctx, instance, cacheHit)

	dto := toInstanceDTO(instance)
	if resErr != nil {
		return dto, resErr
	}
	return dto, nil
}

// resolve 返回序列化后的视觉树；成功结果按模板文档与数据的摘要缓存
func (s *instanceService) resolve(ctx context.Context, template *model.Template, payload any, canonicalData string) ([]byte, bool, *resolver.ResolutionError) {
	key := cacheKey(template.Document, canonicalData)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			return cached, true, nil
		}
	}

	doc, err := document.Parse([]byte(template.Document))
	if err != nil {
		return nil, false, &resolver.ResolutionError{Kind: resolver.KindInvalidTemplate, Err: err}
	}
	tree, err := s.resolver.Resolve(doc, payload)
	if err != nil {
		var re *resolver.ResolutionError
		if errors.As(err, &re) {
			return nil, false, re
		}
		return nil, false, &resolver.ResolutionError{Kind: resolver.KindRenderFailed, Err: err}
	}

	output, err := json.Marshal(tree)
	if err != nil {
		return nil, false, &resolver.ResolutionError{Kind: resolver.KindRenderFailed, Err: err}
	}
	if s.cache != nil {
		s.cache.Set(ctx, key, output, s.cfg.CacheTTL)
	}
	return output, false, nil
}

func (s *instanceService) publish(ctx context.Context, instance *model.TemplateInstance, cacheHit bool) {
	if s.bus == nil {
		return
	}
	event := eventbus.InstanceEvent{
		Type:       eventbus.InstanceEventRendered,
		InstanceID: instance.ID,
		TemplateID: instance.TemplateID,
		RenderID:   instance.RenderID,
		CacheHit:   cacheHit,
	}
	if instance.Status == string(statemachine.InstanceStatusError) {
		event.Type = eventbus.InstanceEventFailed
		event.ErrorKind = instance.ErrorKind
		event.Error = instance.ErrorMsg
	}
	if err := s.bus.Publish(ctx, event.Type, event); err != nil {
		klog.Errorf("实例事件处理失败: instanceID=%d, type=%s, error=%v", instance.ID, event.Type, err)
	}
}

// Get 获取实例
func (s *instanceService) Get(ctx context.Context, id uint) (*InstanceDTO, error) {
	instance, err := s.instanceRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInstanceNotFound
		}
		return nil, fmt.Errorf("failed to get instance: %w", err)
	}
	return toInstanceDTO(instance), nil
}

// ListByTemplate 获取模板最近的实例
func (s *instanceService) ListByTemplate(ctx context.Context, templateID uint) ([]*InstanceDTO, error) {
	if _, err := s.templateRepo.GetByID(templateID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	instances, err := s.instanceRepo.ListByTemplate(templateID, s.cfg.InstanceListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	result := make([]*InstanceDTO, len(instances))
	for i := range instances {
		result[i] = toInstanceDTO(&instances[i])
	}
	return result, nil
}

// Stats 按状态统计实例，附带进程内事件计数
func (s *instanceService) Stats(ctx context.Context) (*InstanceStatsDTO, error) {
	byStatus, err := s.instanceRepo.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to count instances: %w", err)
	}
	result := &InstanceStatsDTO{ByStatus: byStatus}
	if s.stats != nil {
		events := s.stats.Stats()
		result.Events = &events
	}
	return result, nil
}

// decodeData 解码渲染数据，空数据视为空对象；返回键有序的规范化 JSON
func decodeData(raw json.RawMessage) (any, string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return map[string]any{}, "{}", nil
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	canonical, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return payload, string(canonical), nil
}

func cacheKey(doc, data string) string {
	h := sha256.New()
	h.Write([]byte(doc))
	h.Write([]byte{0})
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// truncateMessage 按字节上限截断，并回退到字符边界
func truncateMessage(msg string, limit int) string {
	if len(msg) <= limit {
		return msg
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut]
}

func applyResolutionError(instance *model.TemplateInstance, err *resolver.ResolutionError) {
	msg := truncateMessage(err.Error(), maxErrorMsgLen)
	instance.ErrorKind = string(err.Kind)
	instance.ErrorMsg = msg
	instance.ErrorNodeID = err.NodeID
	instance.ErrorProperty = err.Property
	instance.RenderedOutput = ""
}

func toInstanceDTO(i *model.TemplateInstance) *InstanceDTO {
	dto := &InstanceDTO{
		ID:         i.ID,
		RenderID:   i.RenderID,
		TemplateID: i.TemplateID,
		Status:     i.Status,
		CreatedAt:  i.CreatedAt.Format(timeLayout),
		UpdatedAt:  i.UpdatedAt.Format(timeLayout),
	}
	if i.Data != "" {
		dto.Data = json.RawMessage(i.Data)
	}
	if i.RenderedOutput != "" {
		dto.RenderedOutput = json.RawMessage(i.RenderedOutput)
	}
	if i.Status == string(statemachine.InstanceStatusError) {
		dto.Error = &InstanceErrorDTO{
			Kind:     i.ErrorKind,
			Message:  i.ErrorMsg,
			NodeID:   i.ErrorNodeID,
			Property: i.ErrorProperty,
		}
	}
	return dto
}
