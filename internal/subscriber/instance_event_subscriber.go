package subscriber

import (
	"context"
	"sync"

	"github.com/weibaohui/pagecraft/internal/eventbus"
	"k8s.io/klog/v2"
)

// InstanceStats 进程启动以来的渲染结果统计
type InstanceStats struct {
	Rendered  int64            `json:"rendered"`
	Failed    int64            `json:"failed"`
	CacheHits int64            `json:"cache_hits"`
	ByKind    map[string]int64 `json:"failed_by_kind"`
}

type InstanceEventSubscriber struct {
	mu    sync.Mutex
	stats InstanceStats
}

func NewInstanceEventSubscriber() *InstanceEventSubscriber {
	return &InstanceEventSubscriber{stats: InstanceStats{ByKind: make(map[string]int64)}}
}

func (s *InstanceEventSubscriber) Register(bus *eventbus.InstanceEventBus) {
	if bus == nil {
		return
	}
	bus.Subscribe(eventbus.InstanceEventRendered, s.handleRendered)
	bus.Subscribe(eventbus.InstanceEventFailed, s.handleFailed)
}

// Stats 返回统计快照
func (s *InstanceEventSubscriber) Stats() InstanceStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.stats
	out.ByKind = make(map[string]int64, len(s.stats.ByKind))
	for k, v := range s.stats.ByKind {
		out.ByKind[k] = v
	}
	return out
}

func (s *InstanceEventSubscriber) handleRendered(ctx context.Context, event eventbus.InstanceEvent) error {
	s.mu.Lock()
	s.stats.Rendered++
	if event.CacheHit {
		s.stats.CacheHits++
	}
	s.mu.Unlock()

	klog.V(6).Infof("实例渲染完成: instanceID=%d, templateID=%d, renderID=%s, cacheHit=%t",
		event.InstanceID, event.TemplateID, event.RenderID, event.CacheHit)
	return nil
}

// handleFailed 记录失败原因，失败实例保留在库中供排查
func (s *InstanceEventSubscriber) handleFailed(ctx context.Context, event eventbus.InstanceEvent) error {
	s.mu.Lock()
	s.stats.Failed++
	s.stats.ByKind[event.ErrorKind]++
	s.mu.Unlock()

	klog.Errorf("实例渲染失败: instanceID=%d, templateID=%d, kind=%s, error=%s",
		event.InstanceID, event.TemplateID, event.ErrorKind, event.Error)
	return nil
}
