package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/60cod/ygna-chat/api"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	articles int
	projects int
	err      error
}

func (s *countingSource) Articles(ctx context.Context) ([]*api.Article, error) {
	s.articles++
	if s.err != nil {
		return nil, s.err
	}
	return []*api.Article{{ID: "a1", Title: "Hello", Category: api.CategoryDesign, Tags: []string{"x"}}}, nil
}

func (s *countingSource) Projects(ctx context.Context) ([]*api.Project, error) {
	s.projects++
	if s.err != nil {
		return nil, s.err
	}
	return []*api.Project{{ID: "p1", Title: "Chat", Status: api.StatusActive, TechStack: []string{"Go"}}}, nil
}

func newTestSource(t *testing.T, upstream api.ContentSource) (*RedisSource, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisSource(upstream, client, "portfolio", 15*time.Minute), mr
}

func TestRedisSourceReadThrough(t *testing.T) {
	upstream := &countingSource{}
	src, mr := newTestSource(t, upstream)
	ctx := context.Background()

	first, err := src.Articles(ctx)
	require.NoError(t, err)
	second, err := src.Articles(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, upstream.articles)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("portfolio:articles"))
	assert.Equal(t, 15*time.Minute, mr.TTL("portfolio:articles"))

	projects, err := src.Projects(ctx)
	require.NoError(t, err)
	_, err = src.Projects(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, upstream.projects)
	assert.Equal(t, "Chat", projects[0].Title)

	mr.FastForward(16 * time.Minute)
	_, err = src.Articles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.articles)
}

func TestRedisSourceInvalidate(t *testing.T) {
	upstream := &countingSource{}
	src, mr := newTestSource(t, upstream)
	ctx := context.Background()

	_, _ = src.Articles(ctx)
	_, _ = src.Projects(ctx)
	require.NoError(t, src.Invalidate(ctx))
	assert.False(t, mr.Exists("portfolio:articles"))
	assert.False(t, mr.Exists("portfolio:projects"))

	_, _ = src.Articles(ctx)
	assert.Equal(t, 2, upstream.articles)
}

func TestRedisSourceCorruptEntry(t *testing.T) {
	upstream := &countingSource{}
	src, mr := newTestSource(t, upstream)
	require.NoError(t, mr.Set("portfolio:articles", "{not json"))

	articles, err := src.Articles(context.Background())
	require.NoError(t, err)
	assert.Len(t, articles, 1)
	assert.Equal(t, 1, upstream.articles)
}

func TestRedisSourceUpstreamError(t *testing.T) {
	upstream := &countingSource{err: errors.New("notion down")}
	src, mr := newTestSource(t, upstream)

	_, err := src.Articles(context.Background())
	assert.EqualError(t, err, "notion down")
	assert.False(t, mr.Exists("portfolio:articles"))
}

func TestRedisSourceRedisDown(t *testing.T) {
	upstream := &countingSource{}
	src, mr := newTestSource(t, upstream)
	mr.Close()

	articles, err := src.Articles(context.Background())
	require.NoError(t, err)
	assert.Len(t, articles, 1)
}
