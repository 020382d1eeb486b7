package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache 是可选的读缓存；nil *Cache 等价于关闭缓存，所有读直接回源
type Cache struct {
	RDB *redis.Client
	sf  singleflight.Group
}

// setIfVersion 只有版本号与回源前读到的一致才回填；
// 回源期间发生过 Delete（版本 +1）就放弃写入，避免旧数据覆盖失效
var setIfVersion = redis.NewScript(`
if (redis.call('GET', KEYS[2]) or '0') == ARGV[2] then
  return redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
end
return false
`)

func versionKey(key string) string { return key + ":ver" }

// New addr 为空时返回 nil（关闭缓存）
func New(addr, pass string, db int) *Cache {
	if addr == "" {
		return nil
	}
	return &Cache{
		RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
	}
}

func (c *Cache) Enabled() bool { return c != nil && c.RDB != nil }

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if !c.Enabled() {
		return load(ctx)
	}
	// 先读缓存；redis 不可用时按未命中处理
	if b, err := c.RDB.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}
	// 版本号必须在回源之前读
	ver, verErr := c.RDB.Get(ctx, versionKey(key)).Result()
	if errors.Is(verErr, redis.Nil) {
		ver, verErr = "0", nil
	}
	// single flight 按 key+版本合并回源，失效之后到达的请求不复用旧的回源结果
	v, err, _ := c.sf.Do(key+"@"+ver, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		if verErr == nil {
			_ = setIfVersion.Run(ctx, c.RDB, []string{key, versionKey(key)}, b, ver, ttl.Milliseconds()).Err()
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Delete 失效若干 key：先递增版本再删数据，忽略 redis 错误
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	_, _ = c.RDB.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, k := range keys {
			p.Incr(ctx, versionKey(k))
		}
		p.Del(ctx, keys...)
		return nil
	})
}

func (c *Cache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.RDB.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.RDB.Close()
}
