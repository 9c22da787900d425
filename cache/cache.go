package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/60cod/ygna-chat/api"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	articlesKey = "articles"
	projectsKey = "projects"
)

// RedisSource is a read-through cache in front of another api.ContentSource.
// Redis failures are logged and fall through to the upstream source.
type RedisSource struct {
	upstream api.ContentSource
	client   *redis.Client
	prefix   string
	ttl      time.Duration
}

// NewRedisSource caches upstream results under prefix for ttl
func NewRedisSource(upstream api.ContentSource, client *redis.Client, prefix string, ttl time.Duration) *RedisSource {
	return &RedisSource{upstream: upstream, client: client, prefix: prefix, ttl: ttl}
}

// Articles returns cached articles, fetching them from upstream on a miss
func (s *RedisSource) Articles(ctx context.Context) ([]*api.Article, error) {
	return cached(ctx, s, articlesKey, s.upstream.Articles)
}

// Projects returns cached projects, fetching them from upstream on a miss
func (s *RedisSource) Projects(ctx context.Context) ([]*api.Project, error) {
	return cached(ctx, s, projectsKey, s.upstream.Projects)
}

// Invalidate drops every cached listing
func (s *RedisSource) Invalidate(ctx context.Context) error {
	return s.client.Del(ctx, s.key(articlesKey), s.key(projectsKey)).Err()
}

func (s *RedisSource) key(name string) string {
	return s.prefix + ":" + name
}

func cached[T any](ctx context.Context, s *RedisSource, name string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	key := s.key(name)

	data, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var items []T
		if err := json.Unmarshal(data, &items); err == nil {
			return items, nil
		}
		log.Warn().Str("key", key).Msg("Discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
	}

	items, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(items)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Could not encode cache entry")
		return items, nil
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
	return items, nil
}
