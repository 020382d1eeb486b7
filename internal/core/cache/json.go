package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const defaultTTL = 30 * time.Second

// Entity 按数字 id 缓存单个实体的 JSON，key 形如 "<prefix>:<id>"
type Entity[T any] struct {
	c      *Cache
	prefix string
	ttl    time.Duration
}

// NewEntity c 为 nil 时 Get 直接回源，Invalidate 为空操作
func NewEntity[T any](c *Cache, prefix string, ttl time.Duration) *Entity[T] {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Entity[T]{c: c, prefix: prefix, ttl: ttl}
}

func (e *Entity[T]) Key(id uint) string { return fmt.Sprintf("%s:%d", e.prefix, id) }

// Get 命中直接解码；回源出错不写缓存（NotFound 每次都回源）
func (e *Entity[T]) Get(ctx context.Context, id uint, load func(context.Context) (*T, error)) (*T, error) {
	if !e.c.Enabled() {
		return load(ctx)
	}
	key := e.Key(id)
	b, err := e.c.GetOrLoad(ctx, key, e.ttl, func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	})
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		// 结构变更后的旧数据：丢掉重新加载
		e.c.Delete(ctx, key)
		return load(ctx)
	}
	return &out, nil
}

func (e *Entity[T]) Invalidate(ctx context.Context, ids ...uint) {
	if !e.c.Enabled() || len(ids) == 0 {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = e.Key(id)
	}
	e.c.Delete(ctx, keys...)
}
