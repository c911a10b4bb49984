package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"skilldex/internal/storage"
)

// Cache 提供按 ID 读取实体的 Redis 读穿缓存。
// 缓存仅是加速层：任何读写错误都静默降级为未命中，不影响主流程。
// 允许 nil 接收者，未启用缓存时服务层无需判空。
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) enabled() bool { return c != nil && c.rdb != nil }

func (c *Cache) get(ctx context.Context, key string, out interface{}) bool {
	if !c.enabled() {
		return false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(b, out) == nil
}

func (c *Cache) put(ctx context.Context, key string, v interface{}) {
	if !c.enabled() {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
}

func (c *Cache) drop(ctx context.Context, key string) {
	if !c.enabled() {
		return
	}
	_ = c.rdb.Del(ctx, key).Err()
}

func topicKey(id string) string { return "cache:topic:" + id }
func skillKey(id string) string { return "cache:skill:" + id }

func (c *Cache) GetTopic(ctx context.Context, id string) *storage.Topic {
	var t storage.Topic
	if c.get(ctx, topicKey(id), &t) {
		return &t
	}
	return nil
}

func (c *Cache) PutTopic(ctx context.Context, t *storage.Topic) { c.put(ctx, topicKey(t.ID), t) }
func (c *Cache) DropTopic(ctx context.Context, id string)       { c.drop(ctx, topicKey(id)) }

func (c *Cache) GetSkill(ctx context.Context, id string) *storage.Skill {
	var s storage.Skill
	if c.get(ctx, skillKey(id), &s) {
		return &s
	}
	return nil
}

func (c *Cache) PutSkill(ctx context.Context, s *storage.Skill) { c.put(ctx, skillKey(s.ID), s) }
func (c *Cache) DropSkill(ctx context.Context, id string)       { c.drop(ctx, skillKey(id)) }
