package cachemanager

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"k8s.io/klog/v2"
)

const DefaultExpiration = 10 * time.Minute
const DefaultCleanupInterval = 30 * time.Minute

// CacheManager 带过期时间的键值缓存
type CacheManager[V any] interface {
	Get(ctx context.Context, key string) (V, bool)
	Set(ctx context.Context, key string, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...string) error
	Flush(ctx context.Context) error
	Count() int
}

// InMemoryCacheManager go-cache 实现
type InMemoryCacheManager[V any] struct {
	useCase string
	cache   *gocache.Cache
}

// NewInMemoryCacheManager 创建内存缓存，expiration/cleanup 为 0 时使用默认值
func NewInMemoryCacheManager[V any](useCase string, defaultExpiration, cleanupInterval time.Duration) *InMemoryCacheManager[V] {
	if defaultExpiration == 0 {
		defaultExpiration = DefaultExpiration
	}
	if cleanupInterval == 0 {
		cleanupInterval = DefaultCleanupInterval
	}
	return &InMemoryCacheManager[V]{
		useCase: useCase,
		cache:   gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get 读取缓存
func (c *InMemoryCacheManager[V]) Get(ctx context.Context, key string) (V, bool) {
	var zeroValue V

	value, found := c.cache.Get(key)
	if !found {
		return zeroValue, false
	}

	v, ok := value.(V)
	if !ok {
		klog.Errorf("缓存类型断言失败: useCase=%s, key=%s", c.useCase, key)
		return zeroValue, false
	}

	klog.V(6).Infof("缓存命中: useCase=%s, key=%s", c.useCase, key)
	return v, true
}

// Set 写入缓存，ttl 为 0 时使用默认过期时间
func (c *InMemoryCacheManager[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, value, ttl)
}

// Delete 删除缓存
func (c *InMemoryCacheManager[V]) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		c.cache.Delete(key)
	}
	return nil
}

// Flush 清空缓存
func (c *InMemoryCacheManager[V]) Flush(ctx context.Context) error {
	c.cache.Flush()
	return nil
}

// Count 当前条目数（含未清理的过期项）
func (c *InMemoryCacheManager[V]) Count() int {
	return c.cache.ItemCount()
}
