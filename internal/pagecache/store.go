// Package pagecache 整页缓存，缓存内容原样回放
package pagecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Entry 一次完整响应
type Entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Store 缓存后端
type Store interface {
	// Get 未命中时返回 (nil, nil)
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, e *Entry, ttl time.Duration) error
	// Clear 删除全部缓存页
	Clear(ctx context.Context) error
}

// Stats 命中统计
type Stats struct {
	Hits   int64
	Misses int64
	Writes int64
}

// RedisStore 以 prefix 为命名空间的 Redis 缓存
type RedisStore struct {
	client *redis.Client
	prefix string

	hits   atomic.Int64
	misses atomic.Int64
	writes atomic.Int64
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(k string) string { return s.prefix + k }

func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		s.misses.Add(1)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached page: %w", err)
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		// 损坏的缓存按未命中处理
		s.misses.Add(1)
		return nil, nil
	}
	s.hits.Add(1)
	return &e, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, e *Entry, ttl time.Duration) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(key), payload, ttl).Err(); err != nil {
		return fmt.Errorf("set cached page: %w", err)
	}
	s.writes.Add(1)
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 200).Iterator()
	batch := make([]string, 0, 200)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return s.client.Del(ctx, batch...).Err()
	}
	return nil
}

func (s *RedisStore) Stats() Stats {
	return Stats{Hits: s.hits.Load(), Misses: s.misses.Load(), Writes: s.writes.Load()}
}
